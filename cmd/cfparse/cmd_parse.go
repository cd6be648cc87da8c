package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/cfparse/earley"
	"github.com/dhamidi/cfparse/grammar"
	"github.com/dhamidi/cfparse/lex"
	"github.com/dhamidi/cfparse/tree"
)

func newParseCmd() *cobra.Command {
	var patternFlags []string

	cmd := &cobra.Command{
		Use:           "parse <grammar-file>",
		Short:         "Parse stdin against a grammar and print the resulting tree",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, tokens, err := loadGrammarAndTokens(args[0], patternFlags)
			if err != nil {
				return err
			}

			node, err := earley.New(g).Parse(tokens)
			if err != nil {
				log.Errorf("parse failed: %v", err)
				return err
			}
			printTree(node, 0)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&patternFlags, "pattern", nil, "name=regex terminal pattern (repeatable)")
	return cmd
}

func loadGrammarAndTokens(grammarFile string, patternFlags []string) (*grammar.Grammar, []lex.Token, error) {
	rules, err := loadRules(grammarFile)
	if err != nil {
		return nil, nil, err
	}
	g, err := grammar.Construct(rules)
	if err != nil {
		printGrammarErrors(err)
		return nil, nil, err
	}
	patterns, err := parsePatternFlags(patternFlags)
	if err != nil {
		return nil, nil, err
	}

	input, err := io.ReadAll(bufio.NewReader(os.Stdin))
	if err != nil {
		return nil, nil, fmt.Errorf("read input: %w", err)
	}

	tokens, err := lex.New(g.Terms(), patterns).Lex(string(input))
	if err != nil {
		return nil, nil, fmt.Errorf("lex input: %w", err)
	}
	return g, tokens, nil
}

func printTree(n *tree.Node, indent int) {
	prefix := strings.Repeat("  ", indent)
	if n.IsLeaf() {
		fmt.Printf("%s%s %q\n", prefix, n.Terminal, n.Lexeme)
		return
	}
	fmt.Printf("%s%s\n", prefix, n.Item.Production)
	for _, c := range n.Children {
		printTree(c, indent+1)
	}
}
