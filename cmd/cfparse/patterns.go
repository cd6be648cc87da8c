package main

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dhamidi/cfparse/lex"
)

// parsePatternFlags turns repeated "name=regex" --pattern flag values
// into lex.Patterns, in the order given (earlier patterns win ties in
// the lexer's longest-match rule).
func parsePatternFlags(flags []string) ([]lex.Pattern, error) {
	patterns := make([]lex.Pattern, 0, len(flags))
	for _, f := range flags {
		name, pattern, ok := strings.Cut(f, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --pattern %q, want name=regex", f)
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("--pattern %s: %w", name, err)
		}
		patterns = append(patterns, lex.Pattern{Name: name, Regexp: re})
	}
	return patterns, nil
}
