package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/cfparse/grammar"
)

var log = commonlog.GetLogger("cfparse")

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "check <grammar-file>",
		Short:         "Parse and validate a grammar file",
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
			log.Infof("grammar %s: start=%s nonterms=%d terms=%d productions=%d",
				args[0], g.Start(), len(g.Nonterms()), len(g.Terms()), len(g.Productions()))
			for _, nt := range g.Nonterms() {
				fmt.Printf("%s: nullable=%v first=%v follow=%v\n",
					nt, g.IsNullable(nt), g.FirstSet(nt), g.FollowSet(nt))
			}
			return nil
		},
	}
	return cmd
}

func printGrammarErrors(err error) {
	var invalid *grammar.InvalidGrammarError
	if errors.As(err, &invalid) {
		for _, re := range invalid.Errors {
			fmt.Printf("%s: %s\n", re.Rule, re.Reason)
		}
		return
	}
	fmt.Println(err)
}
