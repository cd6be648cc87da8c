package grammar

import (
	"errors"
	"testing"
)

func TestConstructValidRules(t *testing.T) {
	cases := [][]string{
		{"S -> a"},
		{" S -> a "},
		{"S->a"},
	}
	for _, rules := range cases {
		if _, err := Construct(rules); err != nil {
			t.Errorf("rules %v: expected success, got %v", rules, err)
		}
	}
}

func TestConstructInvalidRules(t *testing.T) {
	cases := [][]string{
		{},
		{"S -> $"},
		{"S -> a |"},
		{"S -> # a"},
		{"S ->->"},
		{"S ->"},
		{" -> a"},
		{"S"},
	}
	for _, rules := range cases {
		_, err := Construct(rules)
		if err == nil {
			t.Errorf("rules %v: expected InvalidGrammarError, got nil", rules)
			continue
		}
		var ige *InvalidGrammarError
		if !errors.As(err, &ige) {
			t.Errorf("rules %v: expected *InvalidGrammarError, got %T", rules, err)
		}
	}
}

func TestStartSymbolIsFirstLHS(t *testing.T) {
	g, err := Construct([]string{"S -> a", "A -> b", "S -> c"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Start() != "S" {
		t.Errorf("expected start symbol S, got %s", g.Start())
	}
}

func TestTermsAndNonterms(t *testing.T) {
	g, err := Construct([]string{"S -> A b", "A -> a"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !g.IsNonterm("S") || !g.IsNonterm("A") {
		t.Errorf("expected S and A to be nonterminals")
	}
	if !g.IsTerm("b") || !g.IsTerm("a") {
		t.Errorf("expected a and b to be terminals")
	}
	if g.IsTerm("S") || g.IsNonterm("b") {
		t.Errorf("classification overlap between terms and nonterms")
	}
}

func setEq(t *testing.T, label string, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Errorf("%s: expected %v, got %v", label, want, got)
		return
	}
	seen := make(map[string]bool)
	for _, v := range got {
		seen[v] = true
	}
	for _, w := range want {
		if !seen[w] {
			t.Errorf("%s: expected %v, got %v", label, want, got)
			return
		}
	}
}

// TestFirstFollowWorkedExample exercises a grammar with both nullable
// and non-nullable nonterminals, mutual references, and a
// left-recursive production — enough structure to exhaust the
// fixed-point computation's branches.
func TestFirstFollowWorkedExample(t *testing.T) {
	g, err := Construct([]string{
		"S -> A B C | s",
		"A -> # | a",
		"B -> A A | b",
		"C -> C B | c S d",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !g.IsNullable("A") {
		t.Errorf("expected A to be nullable")
	}
	if !g.IsNullable("B") {
		t.Errorf("expected B to be nullable")
	}
	if g.IsNullable("S") {
		t.Errorf("did not expect S to be nullable")
	}
	if g.IsNullable("C") {
		t.Errorf("did not expect C to be nullable")
	}

	setEq(t, "FIRST(S)", g.FirstSet("S"), "a", "b", "c", "s")
	setEq(t, "FIRST(A)", g.FirstSet("A"), "a", "#")
	setEq(t, "FIRST(B)", g.FirstSet("B"), "a", "b", "#")
	setEq(t, "FIRST(C)", g.FirstSet("C"), "c")

	setEq(t, "FOLLOW(S)", g.FollowSet("S"), "$", "d")
	setEq(t, "FOLLOW(A)", g.FollowSet("A"), "a", "c", "b", "$", "d")
	setEq(t, "FOLLOW(B)", g.FollowSet("B"), "c", "a", "b", "$", "d")
	setEq(t, "FOLLOW(C)", g.FollowSet("C"), "$", "b", "a", "d")
}

func TestNullableEquivalenceToFirstEpsilon(t *testing.T) {
	g, err := Construct([]string{
		"S -> A B C | s",
		"A -> # | a",
		"B -> A A | b",
		"C -> C B | c S d",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, n := range g.Nonterms() {
		first := g.FirstSet(n)
		hasEpsilon := false
		for _, sym := range first {
			if sym == Epsilon {
				hasEpsilon = true
			}
		}
		if hasEpsilon != g.IsNullable(n) {
			t.Errorf("nullable/epsilon mismatch for %s: nullable=%v, FIRST has #=%v", n, g.IsNullable(n), hasEpsilon)
		}
	}
}

func TestRulesForPreservesOrder(t *testing.T) {
	g, err := Construct([]string{"S -> a b", "S -> c", "S -> d e"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rules := g.RulesFor("S")
	if len(rules) != 3 {
		t.Fatalf("expected 3 alternatives, got %d", len(rules))
	}
	want := [][]string{{"a", "b"}, {"c"}, {"d", "e"}}
	for i, w := range want {
		got := rules[i].RHS
		if len(got) != len(w) {
			t.Fatalf("alternative %d: expected %v, got %v", i, w, got)
		}
		for j := range w {
			if got[j] != w[j] {
				t.Fatalf("alternative %d: expected %v, got %v", i, w, got)
			}
		}
	}
}
