package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/cfparse/grammar"
	"github.com/dhamidi/cfparse/lex"
)

func newLexCmd() *cobra.Command {
	var patternFlags []string

	cmd := &cobra.Command{
		Use:           "lex <grammar-file>",
		Short:         "Tokenize stdin against a grammar's terminal alphabet",
		Long:          "Reads whitespace-separated input from stdin and emits one token per line.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := loadRules(args[0])
			if err != nil {
				return err
			}
			g, err := grammar.Construct(rules)
			if err != nil {
				printGrammarErrors(err)
				return err
			}
			patterns, err := parsePatternFlags(patternFlags)
			if err != nil {
				return err
			}

			input, err := io.ReadAll(bufio.NewReader(os.Stdin))
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			lexer := lex.New(g.Terms(), patterns)
			tokens, err := lexer.Lex(string(input))
			for _, tok := range tokens {
				fmt.Printf("%s %q\n", tok.Name, tok.Raw)
			}
			if err != nil {
				var failure *lex.LexFailure
				if errors.As(err, &failure) {
					fmt.Fprintf(os.Stderr, "lex failure at %s\n", failure.Position)
				}
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&patternFlags, "pattern", nil, "name=regex terminal pattern (repeatable, earlier wins ties)")
	return cmd
}
