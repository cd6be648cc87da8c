// Package cfparse is the facade over grammar, lex, earley and tree: a
// single entry point that constructs a grammar from rule strings,
// tokenizes an input, and parses it into a concrete tree.
package cfparse

import (
	"fmt"

	"github.com/dhamidi/cfparse/earley"
	"github.com/dhamidi/cfparse/grammar"
	"github.com/dhamidi/cfparse/lex"
	"github.com/dhamidi/cfparse/tree"
)

// Grammar re-exports grammar.Grammar so callers need only import this
// package for the common path.
type Grammar = grammar.Grammar

// Token re-exports lex.Token.
type Token = lex.Token

// Pattern re-exports lex.Pattern.
type Pattern = lex.Pattern

// Node re-exports tree.Node.
type Node = tree.Node

// NewGrammar constructs a Grammar from rule strings.
func NewGrammar(rules []string) (*Grammar, error) {
	return grammar.Construct(rules)
}

// NewLexer builds a Lexer whose literal terminals are every terminal
// of g not already named by a pattern in patterns.
func NewLexer(g *Grammar, patterns []Pattern) *lex.Lexer {
	return lex.New(g.Terms(), patterns)
}

// Lex tokenizes input against g's terminal alphabet and the given
// regex patterns.
func Lex(g *Grammar, patterns []Pattern, input string) ([]Token, error) {
	return NewLexer(g, patterns).Lex(input)
}

// ParseTokens parses an already-tokenized input against g, returning
// the single concrete parse tree rooted at g's start symbol.
func ParseTokens(g *Grammar, tokens []Token) (*Node, error) {
	return earley.New(g).Parse(tokens)
}

// Parse is the end-to-end convenience path: build a grammar from
// rules, lex input with patterns, and parse the result.
func Parse(rules []string, patterns []Pattern, input string) (*Node, error) {
	g, err := NewGrammar(rules)
	if err != nil {
		return nil, fmt.Errorf("construct grammar: %w", err)
	}
	tokens, err := Lex(g, patterns, input)
	if err != nil {
		return nil, fmt.Errorf("lex input: %w", err)
	}
	root, err := ParseTokens(g, tokens)
	if err != nil {
		return nil, fmt.Errorf("parse tokens: %w", err)
	}
	return root, nil
}

// Recognize reports only whether input belongs to the grammar's
// language, without building a tree — cheaper than Parse when the
// tree is not needed.
func Recognize(rules []string, patterns []Pattern, input string) error {
	g, err := NewGrammar(rules)
	if err != nil {
		return fmt.Errorf("construct grammar: %w", err)
	}
	tokens, err := Lex(g, patterns, input)
	if err != nil {
		return fmt.Errorf("lex input: %w", err)
	}
	return earley.New(g).Recognize(tokens)
}
