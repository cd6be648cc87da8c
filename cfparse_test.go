package cfparse

import (
	"errors"
	"regexp"
	"testing"

	"github.com/dhamidi/cfparse/lex"
)

func TestParseEndToEndArithmeticExpression(t *testing.T) {
	rules := []string{
		"E -> E plus T | T",
		"T -> T star F | F",
		"F -> lparen E rparen | num",
	}
	patterns := []Pattern{
		{Name: "num", Regexp: regexp.MustCompile(`^[0-9]+`)},
		{Name: "plus", Regexp: regexp.MustCompile(`^\+`)},
		{Name: "star", Regexp: regexp.MustCompile(`^\*`)},
		{Name: "lparen", Regexp: regexp.MustCompile(`^\(`)},
		{Name: "rparen", Regexp: regexp.MustCompile(`^\)`)},
	}

	root, err := Parse(rules, patterns, "( 1 + 2 ) * 3")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []string{"(", "1", "+", "2", ")", "*", "3"}
	got := root.Yield()
	if len(got) != len(want) {
		t.Fatalf("Yield = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Yield = %v, want %v", got, want)
		}
	}
}

func TestRecognizeRejectsUnbalancedParens(t *testing.T) {
	rules := []string{
		"E -> lparen E rparen | num",
	}
	patterns := []Pattern{
		{Name: "num", Regexp: regexp.MustCompile(`^[0-9]+`)},
		{Name: "lparen", Regexp: regexp.MustCompile(`^\(`)},
		{Name: "rparen", Regexp: regexp.MustCompile(`^\)`)},
	}
	err := Recognize(rules, patterns, "( ( 1 )")
	if err == nil {
		t.Fatalf("Recognize: want error for unbalanced input, got nil")
	}
}

func TestParseSurfacesLexFailure(t *testing.T) {
	rules := []string{"S -> num"}
	patterns := []Pattern{
		{Name: "num", Regexp: regexp.MustCompile(`^[0-9]+`)},
	}
	_, err := Parse(rules, patterns, "abc")
	var failure *lex.LexFailure
	if !errors.As(err, &failure) {
		t.Fatalf("Parse err = %v, want wrapping *lex.LexFailure", err)
	}
}

func TestNewGrammarRejectsInvalidRule(t *testing.T) {
	_, err := NewGrammar([]string{"this is not a rule"})
	if err == nil {
		t.Fatalf("NewGrammar: want error for malformed rule, got nil")
	}
}
