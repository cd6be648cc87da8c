// Package earley builds an Earley chart over a token stream and
// reconstructs a single concrete parse tree from it.
//
// Chart construction iterates each column's entries by index
// (column.mutableIterate) rather than ranging over a snapshot, so
// predictions and completions discovered mid-sweep are visited within
// the same pass. Every predecessor of an entry is retained rather than
// just the first, since left recursion and ambiguous grammars both
// require the full predecessor multiset for reconstruction to
// succeed.
package earley

import (
	"github.com/dhamidi/cfparse/grammar"
	"github.com/dhamidi/cfparse/lex"
)

// Parser recognizes and reconstructs parses of a single Grammar. A
// Parser may be reused across calls to Parse: chart state is rebuilt
// fresh on every call and stays on the Parser (see Chart) until the
// next one.
type Parser struct {
	g              *grammar.Grammar
	productions    []grammar.Production // g.Productions() plus a synthetic S' -> S appended last
	startProdIndex int

	tracer Tracer

	tokens []lex.Token
	chart  []*column
}

// New creates a Parser for g, augmenting it internally with an
// implicit start production S' -> S so acceptance can be checked by a
// single chart lookup.
func New(g *grammar.Grammar) *Parser {
	augStart := augmentedStartSymbol(g)
	prods := make([]grammar.Production, len(g.Productions())+1)
	copy(prods, g.Productions())
	prods[len(prods)-1] = grammar.Production{LHS: augStart, RHS: []string{g.Start()}}

	return &Parser{
		g:              g,
		productions:    prods,
		startProdIndex: len(prods) - 1,
	}
}

// augmentedStartSymbol picks a symbol not already used anywhere in g
// to name the synthetic start production, by appending "'" to the
// start symbol until it is unique.
func augmentedStartSymbol(g *grammar.Grammar) string {
	used := make(map[string]bool)
	for _, s := range g.Symbols() {
		used[s] = true
	}
	name := g.Start() + "'"
	for used[name] {
		name += "'"
	}
	return name
}

// SetTracer installs a Tracer to observe chart construction events.
func (p *Parser) SetTracer(t Tracer) {
	p.tracer = t
}

// Entry is a read-only view of one chart entry, for diagnostics.
type Entry struct {
	Item   grammar.Item
	Origin int
	Index  int
}

// Chart returns the completed chart as a slice of per-column entry
// views, in insertion order. Valid only after Recognize has run.
func (p *Parser) Chart() [][]Entry {
	out := make([][]Entry, len(p.chart))
	for i, col := range p.chart {
		col.entries.Iterate(func(e *entry) {
			out[i] = append(out[i], Entry{Item: e.item(p), Origin: e.key.origin, Index: e.index})
		})
	}
	return out
}

// Recognize builds the Earley chart for tokens and reports whether the
// grammar's start symbol accepts the entire token stream. Parse calls
// it before reconstructing a tree; Chart reads the chart it builds.
func (p *Parser) Recognize(tokens []lex.Token) error {
	n := len(tokens)
	p.tokens = tokens
	p.chart = make([]*column, n+1)
	for i := range p.chart {
		p.chart[i] = newColumn()
	}

	startKey := entryKey{prodIndex: p.startProdIndex, dot: 0, origin: 0}
	p.chart[0].insert(startKey, 0, nil)

	for k := 0; k <= n; k++ {
		p.chart[k].mutableIterate(func(e *entry) {
			p.processEntry(k, e)
		})
	}

	_, accepted := p.chart[n].byKey[entryKey{prodIndex: p.startProdIndex, dot: 1, origin: 0}]
	if !accepted {
		return &ParseRejectedError{Start: p.g.Start(), TokenCount: n}
	}
	return nil
}

func (p *Parser) processEntry(k int, e *entry) {
	it := e.item(p)

	if it.IsReduce() {
		p.complete(k, e)
		return
	}

	// Nullable shortcut: an entry representing the epsilon production
	// of some nonterminal (rhs == [#], dot == 0) completes immediately
	// without a scan step, since "#" is never a real input token.
	if it.Production.IsEpsilon() && e.key.dot == 0 {
		newKey := entryKey{prodIndex: e.key.prodIndex, dot: 1, origin: k}
		added, isNew := p.chart[k].insert(newKey, k, e)
		p.trace(isNew, k, added)
		return
	}

	sym, _ := it.Current()
	if p.g.IsNonterm(sym) {
		p.predict(k, e, sym)
	} else {
		p.scan(k, e, sym)
	}
}

// predict adds an item for every alternative of X, in grammar
// production order, crediting e as the predecessor of each.
// Reconstruction does not read these links: it stops at dot 0 and
// finds pre-advance entries by chart lookup.
func (p *Parser) predict(k int, e *entry, x string) {
	if p.tracer != nil {
		p.tracer.OnPredict(k, e.item(p))
	}
	for i, prod := range p.productions {
		if prod.LHS != x {
			continue
		}
		newKey := entryKey{prodIndex: i, dot: 0, origin: k}
		added, isNew := p.chart[k].insert(newKey, k, e)
		p.trace(isNew, k, added)
	}
}

// scan advances e past the terminal x if it matches the token at
// column k, inserting the advanced item into column k+1.
func (p *Parser) scan(k int, e *entry, x string) {
	matched := k < len(p.tokens) && p.tokens[k].Name == x
	if p.tracer != nil {
		p.tracer.OnScan(k, e.item(p), matched)
	}
	if !matched {
		return
	}
	newKey := entryKey{prodIndex: e.key.prodIndex, dot: e.key.dot + 1, origin: e.key.origin}
	added, isNew := p.chart[k+1].insert(newKey, k+1, e)
	p.trace(isNew, k+1, added)
}

// complete advances every entry in the completed entry's origin column
// that was waiting on its nonterminal, inserting the advanced items
// into column k. The origin column is scanned with mutableIterate so
// completions that re-enter it (origin == k, as with left recursion or
// nullable productions) see entries added during this same scan.
func (p *Parser) complete(k int, completed *entry) {
	completedItem := completed.item(p)
	if p.tracer != nil {
		p.tracer.OnComplete(k, completedItem)
	}

	origin := completed.key.origin
	completedLHS := completedItem.Production.LHS

	p.chart[origin].mutableIterate(func(waiting *entry) {
		it := waiting.item(p)
		if it.IsReduce() {
			return
		}
		sym, _ := it.Current()
		if sym != completedLHS {
			return
		}
		newKey := entryKey{prodIndex: waiting.key.prodIndex, dot: waiting.key.dot + 1, origin: waiting.key.origin}
		added, isNew := p.chart[k].insert(newKey, k, completed)
		p.trace(isNew, k, added)
	})
}

func (p *Parser) trace(isNew bool, column int, e *entry) {
	if isNew && p.tracer != nil {
		p.tracer.OnItemAdd(column, e.item(p), e.key.origin, "")
	}
}
