// Package lex implements a longest-match tokeniser: literal grammar
// terminals plus an ordered list of regex patterns, split across
// whitespace-delimited words. On a failed match it records the
// position and keeps scanning rather than aborting, so a caller sees
// every lexical problem in the input, not just the first.
package lex

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dhamidi/cfparse/internal/orderedset"
)

// Token is one lexed unit: name identifies a grammar terminal (or is
// empty for a synthetic failure token), raw is the surface text.
type Token struct {
	Name string
	Raw  string
}

// Pattern pairs a token name with the regex that recognises it. Pattern
// order matters: earlier patterns are preferred on an equal-length tie
// against later patterns.
type Pattern struct {
	Name   string
	Regexp *regexp.Regexp
}

// Position locates a lexer failure: which whitespace-delimited word,
// and the rune offset within that word.
type Position struct {
	Word   int
	Offset int
}

func (p Position) String() string {
	return fmt.Sprintf("word %d, offset %d", p.Word, p.Offset)
}

// LexFailure reports that no terminal or pattern matched at some
// position. It carries the partial token list produced up to and
// including the synthetic failure tokens.
type LexFailure struct {
	Position Position
	Tokens   []Token
}

func (e *LexFailure) Error() string {
	return fmt.Sprintf("lex failure at %s", e.Position)
}

// Lexer tokenises input against a fixed set of literal terminals and
// patterns. Construct once with New; Lex is safe to call repeatedly and
// does not mutate the Lexer.
type Lexer struct {
	literals []string // terminals not produced by any pattern, in grammar order
	patterns []Pattern
}

// New builds a Lexer. terms is every terminal symbol of the grammar
// being lexed for, in the grammar's own order; patterns is the ordered
// list of (name, regexp) pairs supplied by the caller. Any terminal
// whose name matches a pattern's name is matched only via that
// pattern, never literally.
func New(terms []string, patterns []Pattern) *Lexer {
	patternNames := orderedset.New[string]()
	for _, p := range patterns {
		patternNames.Add(p.Name)
	}

	l := &Lexer{patterns: patterns}
	for _, t := range terms {
		if !patternNames.Contains(t) {
			l.literals = append(l.literals, t)
		}
	}
	return l
}

// Lex tokenises input. On success it returns every token with a nil
// error. On failure it returns every token produced so far (including
// synthetic failure tokens for each unmatched position) together with
// a *LexFailure naming the first position that failed to match.
func (l *Lexer) Lex(input string) ([]Token, error) {
	var tokens []Token
	var failure *LexFailure

	for wi, word := range splitWords(input) {
		offset := 0
		runeIndex := 0
		for offset < len(word) {
			name, raw, matched := l.longestMatch(word[offset:])
			if !matched {
				_, size := utf8.DecodeRuneInString(word[offset:])
				raw = word[offset : offset+size]
				tok := Token{Name: "", Raw: raw}
				tokens = append(tokens, tok)
				if failure == nil {
					failure = &LexFailure{Position: Position{Word: wi, Offset: runeIndex}}
				}
				offset += size
				runeIndex++
				continue
			}
			tokens = append(tokens, Token{Name: name, Raw: raw})
			offset += len(raw)
			runeIndex += utf8.RuneCountInString(raw)
		}
	}

	if failure != nil {
		failure.Tokens = tokens
		return tokens, failure
	}
	return tokens, nil
}

// longestMatch finds the winning candidate at the start of s: literal
// terminals are tried first (longest wins, first-declared breaks
// ties), then patterns (same tie rule); a literal match wins over a
// pattern match of equal length.
func (l *Lexer) longestMatch(s string) (name, raw string, ok bool) {
	literalLen := -1
	var literalName string
	for _, lit := range l.literals {
		if strings.HasPrefix(s, lit) && len(lit) > literalLen {
			literalLen = len(lit)
			literalName = lit
		}
	}

	patternLen := -1
	var patternName, patternRaw string
	for _, p := range l.patterns {
		loc := p.Regexp.FindStringIndex(s)
		if loc == nil || loc[0] != 0 {
			continue
		}
		length := loc[1]
		if length > patternLen {
			patternLen = length
			patternName = p.Name
			patternRaw = s[:length]
		}
	}

	switch {
	case literalLen < 0 && patternLen < 0:
		return "", "", false
	case literalLen >= patternLen:
		return literalName, s[:literalLen], true
	default:
		return patternName, patternRaw, true
	}
}

// splitWords splits input on whitespace, discarding the separators —
// round-trip reconstruction is the caller's responsibility if needed.
// Concatenating the raw fields of the tokens lexed from one word
// reproduces that word; tokens do not record which word they came
// from, so word boundaries cannot be recovered from the token list.
func splitWords(input string) []string {
	return strings.Fields(input)
}
