// Package grammar parses a textual context-free grammar and computes the
// derived sets (nullable, FIRST, FOLLOW) an Earley recognizer needs.
//
// Construct is a two-phase construct-then-validate pipeline: parse
// every rule's structure first, then separately derive the nullable/
// FIRST/FOLLOW sets, collecting every offending rule instead of
// failing at the first so a caller can report them all at once.
package grammar

import (
	"strings"

	"github.com/dhamidi/cfparse/internal/orderedset"
)

// Reserved symbols. Epsilon denotes the empty string and may only be the
// sole element of a production's right-hand side. EndOfInput never
// appears in a production; it is synthesised only as the end marker
// placed in FOLLOW(start), from where it propagates to other FOLLOW sets.
const (
	Epsilon   = "#"
	EndOfInput = "$"
	altSep     = "|"
	arrow      = "->"
)

// Production is an ordered (lhs, rhs) pair. RHS is ["#"] for an epsilon
// production. Productions preserve grammar-text order: that order
// drives tie-breaking throughout parsing.
type Production struct {
	LHS string
	RHS []string
}

// IsEpsilon reports whether this production's right-hand side is the
// single-element epsilon sequence.
func (p Production) IsEpsilon() bool {
	return len(p.RHS) == 1 && p.RHS[0] == Epsilon
}

func (p Production) String() string {
	return p.LHS + " -> " + strings.Join(p.RHS, " ")
}

// Grammar is an immutable, validated context-free grammar: nonterminals,
// terminals, productions in source order, the start symbol, and the
// derived nullable/FIRST/FOLLOW sets. Construct once; safe to share by
// reference across goroutines thereafter since nothing mutates it.
type Grammar struct {
	nonterms    *orderedset.Set[string]
	terms       *orderedset.Set[string]
	symbols     *orderedset.Set[string]
	productions []Production
	rulesFor    map[string][]Production
	start       string

	nullable *orderedset.Set[string]
	first    map[string]*orderedset.Set[string]
	follow   map[string]*orderedset.Set[string]
}

// Construct parses a sequence of rule strings and builds a Grammar.
// Each rule has the form "LHS -> ALT1 | ALT2 | ...".
func Construct(rules []string) (*Grammar, error) {
	g := &Grammar{
		nonterms: orderedset.New[string](),
		terms:    orderedset.New[string](),
		symbols:  orderedset.New[string](),
		rulesFor: make(map[string][]Production),
	}

	var errs []RuleError

	for _, rule := range rules {
		lhs, alts, err := splitRule(rule)
		if err != nil {
			errs = append(errs, RuleError{Rule: rule, Reason: err.Error()})
			continue
		}

		if g.start == "" {
			g.start = lhs
		}
		g.nonterms.Add(lhs)
		g.symbols.Add(lhs)

		ruleOK := true
		var parsed []Production
		for _, altText := range alts {
			rhs, err := splitAlternative(altText)
			if err != nil {
				errs = append(errs, RuleError{Rule: rule, Reason: err.Error()})
				ruleOK = false
				continue
			}
			parsed = append(parsed, Production{LHS: lhs, RHS: rhs})
		}
		if !ruleOK {
			continue
		}

		for _, p := range parsed {
			g.productions = append(g.productions, p)
			g.rulesFor[lhs] = append(g.rulesFor[lhs], p)
			for _, sym := range p.RHS {
				if sym != Epsilon {
					g.symbols.Add(sym)
				}
			}
		}
	}

	if len(errs) > 0 {
		return nil, &InvalidGrammarError{Errors: errs}
	}

	if len(g.productions) == 0 {
		return nil, &InvalidGrammarError{Errors: []RuleError{{Reason: "grammar has no productions"}}}
	}

	// Terminals are every rhs symbol that never appears as an lhs.
	for _, p := range g.productions {
		for _, sym := range p.RHS {
			if sym == Epsilon {
				continue
			}
			if !g.nonterms.Contains(sym) {
				g.terms.Add(sym)
			}
		}
	}

	g.computeNullable()
	g.computeFirst()
	g.computeFollow()

	return g, nil
}

// splitRule splits "LHS -> ALT1 | ALT2" into a trimmed lhs and the raw
// (untrimmed-per-symbol) alternative strings, or returns a validation
// error naming the problem.
func splitRule(rule string) (lhs string, alts []string, err error) {
	if strings.Count(rule, arrow) != 1 {
		return "", nil, errInvalid("rule must contain exactly one '->'")
	}
	idx := strings.Index(rule, arrow)
	lhs = strings.TrimSpace(rule[:idx])
	rest := rule[idx+len(arrow):]

	if lhs == "" {
		return "", nil, errInvalid("left-hand side is empty")
	}
	if lhs == EndOfInput || lhs == altSep {
		return "", nil, errInvalid("left-hand side may not be '$' or '|'")
	}

	alts = strings.Split(rest, altSep)
	return lhs, alts, nil
}

// splitAlternative tokenises one alternative on whitespace and validates
// it: non-empty, "#" only standalone, never "$".
func splitAlternative(alt string) ([]string, error) {
	symbols := strings.Fields(alt)
	if len(symbols) == 0 {
		return nil, errInvalid("empty alternative")
	}
	hasEpsilon := false
	for _, sym := range symbols {
		if sym == Epsilon {
			hasEpsilon = true
		}
		if sym == EndOfInput {
			return nil, errInvalid("'$' may not appear in a production")
		}
	}
	if hasEpsilon && len(symbols) > 1 {
		return nil, errInvalid("'#' must be the sole symbol of its alternative")
	}
	return symbols, nil
}

// Productions returns all productions in grammar-text order.
func (g *Grammar) Productions() []Production {
	return g.productions
}

// RulesFor returns the alternatives for nonterm, in grammar-text order.
func (g *Grammar) RulesFor(nonterm string) []Production {
	return g.rulesFor[nonterm]
}

// Start returns the grammar's start symbol: the lhs of the first rule.
func (g *Grammar) Start() string {
	return g.start
}

// Nonterms returns the nonterminal symbols in first-encountered order.
func (g *Grammar) Nonterms() []string {
	return g.nonterms.Slice()
}

// Terms returns the terminal symbols in first-encountered order.
func (g *Grammar) Terms() []string {
	return g.terms.Slice()
}

// Symbols returns every symbol (terminal or nonterminal) appearing
// anywhere in the grammar, in first-encountered order.
func (g *Grammar) Symbols() []string {
	return g.symbols.Slice()
}

// IsNonterm reports whether sym appears as the lhs of some production.
func (g *Grammar) IsNonterm(sym string) bool {
	return g.nonterms.Contains(sym)
}

// IsTerm reports whether sym is a terminal (appears in some rhs and is
// not a nonterminal).
func (g *Grammar) IsTerm(sym string) bool {
	return g.terms.Contains(sym)
}

// NullableSet returns the nullable nonterminals in the order they were
// discovered by the fixed-point computation.
func (g *Grammar) NullableSet() []string {
	return g.nullable.Slice()
}

// IsNullable reports whether nonterm can derive the empty string.
func (g *Grammar) IsNullable(nonterm string) bool {
	return g.nullable.Contains(nonterm)
}

// FirstSet returns FIRST(nonterm): terminals, plus "#" if nonterm is
// nullable, in the order discovered by the fixed-point computation.
func (g *Grammar) FirstSet(nonterm string) []string {
	if s, ok := g.first[nonterm]; ok {
		return s.Slice()
	}
	return nil
}

// FollowSet returns FOLLOW(nonterm): terminals, plus "$" if nonterm can
// end a sentential form, in the order discovered by the fixed-point
// computation. "#" never appears in a FOLLOW set.
func (g *Grammar) FollowSet(nonterm string) []string {
	if s, ok := g.follow[nonterm]; ok {
		return s.Slice()
	}
	return nil
}

// Item is a dotted item: a production paired with a position marker
// indicating how much of its right-hand side has been matched. Two
// items are equal iff their production and dot agree — callers needing
// that comparison should compare (Production, Dot) directly rather than
// relying on Go's == (Production embeds a slice and is incomparable).
type Item struct {
	Production Production
	Dot        int
}

// IsReduce reports whether the dot has reached the end of the
// right-hand side.
func (it Item) IsReduce() bool {
	return it.Dot >= len(it.Production.RHS)
}

// Current returns the symbol immediately after the dot, or ok=false for
// a reduce item.
func (it Item) Current() (sym string, ok bool) {
	if it.IsReduce() {
		return "", false
	}
	return it.Production.RHS[it.Dot], true
}

// Advance returns a copy of it with the dot moved one position right.
func (it Item) Advance() Item {
	return Item{Production: it.Production, Dot: it.Dot + 1}
}

func (it Item) String() string {
	var b strings.Builder
	b.WriteString(it.Production.LHS)
	b.WriteString(" ->")
	for i, sym := range it.Production.RHS {
		if i == it.Dot {
			b.WriteString(" .")
		}
		b.WriteString(" ")
		b.WriteString(sym)
	}
	if it.Dot == len(it.Production.RHS) {
		b.WriteString(" .")
	}
	return b.String()
}

// RuleError names one offending rule from a failed Construct call.
type RuleError struct {
	Rule   string
	Reason string
}

// InvalidGrammarError aggregates every rule that failed validation
// during Construct, so a caller (e.g. the cfparse CLI) can report all
// of them at once instead of stopping at the first.
type InvalidGrammarError struct {
	Errors []RuleError
}

func (e *InvalidGrammarError) Error() string {
	var b strings.Builder
	b.WriteString("invalid grammar:")
	for _, re := range e.Errors {
		b.WriteString("\n  ")
		if re.Rule != "" {
			b.WriteString(re.Rule)
			b.WriteString(": ")
		}
		b.WriteString(re.Reason)
	}
	return b.String()
}

type simpleError string

func (e simpleError) Error() string { return string(e) }

func errInvalid(msg string) error { return simpleError(msg) }
