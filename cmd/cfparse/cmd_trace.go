package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/cfparse/earley"
	"github.com/dhamidi/cfparse/grammar"
)

// verboseTracer prints every chart-construction event.
type verboseTracer struct {
	filter string
}

func (t *verboseTracer) emit(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	if t.filter != "" && !strings.Contains(line, t.filter) {
		return
	}
	fmt.Println(line)
}

func (t *verboseTracer) OnPredict(column int, item grammar.Item) {
	t.emit("[%d] PREDICT from %s", column, item)
}

func (t *verboseTracer) OnScan(column int, item grammar.Item, matched bool) {
	status := "MISS"
	if matched {
		status = "HIT"
	}
	t.emit("[%d] SCAN %s -> %s", column, item, status)
}

func (t *verboseTracer) OnComplete(column int, item grammar.Item) {
	t.emit("[%d] COMPLETE %s", column, item)
}

func (t *verboseTracer) OnItemAdd(column int, item grammar.Item, origin int, reason string) {
	t.emit("[%d] ADD (origin %d) %s", column, origin, item)
}

func newTraceCmd() *cobra.Command {
	var patternFlags []string
	var filterSymbol string

	cmd := &cobra.Command{
		Use:           "trace <grammar-file>",
		Short:         "Trace Earley chart construction step by step",
		Long:          "Reads input from stdin, lexes it, then prints every predict/scan/complete/add event during chart construction.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, tokens, err := loadGrammarAndTokens(args[0], patternFlags)
			if err != nil {
				return err
			}

			fmt.Println("=== TOKENS ===")
			for i, tok := range tokens {
				fmt.Printf("[%d] %s %q\n", i, tok.Name, tok.Raw)
			}
			fmt.Println()

			parser := earley.New(g)
			parser.SetTracer(&verboseTracer{filter: filterSymbol})

			fmt.Println("=== CHART CONSTRUCTION ===")
			err = parser.Recognize(tokens)
			if err != nil {
				fmt.Fprintf(os.Stderr, "\nREJECTED: %v\n", err)
				return err
			}
			fmt.Println("\nACCEPTED")
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&patternFlags, "pattern", nil, "name=regex terminal pattern (repeatable)")
	cmd.Flags().StringVar(&filterSymbol, "filter", "", "only show trace lines mentioning this symbol")
	return cmd
}
