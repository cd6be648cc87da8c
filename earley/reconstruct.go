package earley

import (
	"github.com/dhamidi/cfparse/grammar"
	"github.com/dhamidi/cfparse/lex"
	"github.com/dhamidi/cfparse/tree"
)

// Parse recognizes tokens against the Parser's grammar and, on
// acceptance, reconstructs a single concrete parse tree rooted at the
// grammar's start symbol (the synthetic S' -> S augmentation is
// stripped).
func (p *Parser) Parse(tokens []lex.Token) (*tree.Node, error) {
	if err := p.Recognize(tokens); err != nil {
		return nil, err
	}
	n := len(tokens)
	accepting, ok := p.chart[n].get(entryKey{prodIndex: p.startProdIndex, dot: 1, origin: 0})
	if !ok {
		return nil, &InternalError{Reason: "Recognize accepted but the accepting entry is missing"}
	}
	root, err := p.reconstruct(accepting)
	if err != nil {
		return nil, err
	}
	return root.Children[0], nil
}

// reconstruct builds the internal tree.Node for a completed (reduce)
// entry by walking its dotted item backwards through the predecessor
// links chart construction recorded: the first-insertion-order
// predecessor at each choice point is tried first, and reconstruction
// backtracks to the next candidate rather than failing outright the
// moment one choice turns out not to extend to a full derivation.
func (p *Parser) reconstruct(e *entry) (*tree.Node, error) {
	item := e.item(p)
	if !item.IsReduce() {
		return nil, &InternalError{Reason: "reconstruct called on a non-reduce entry: " + item.String()}
	}
	children := make([]*tree.Node, len(item.Production.RHS))
	return p.reconstructFrom(e, item, children)
}

// reconstructFrom walks cur's production backwards from cur.key.dot to
// 0, filling in children as it goes, backtracking across ambiguous
// predecessor choices.
func (p *Parser) reconstructFrom(cur *entry, item grammar.Item, children []*tree.Node) (*tree.Node, error) {
	if cur.key.dot == 0 {
		return tree.NewInternal(item, cloneChildren(children)), nil
	}

	dotPos := cur.key.dot
	sym := item.Production.RHS[dotPos-1]

	if sym == grammar.Epsilon {
		children[0] = tree.NewLeaf(grammar.Epsilon, "")
		return tree.NewInternal(item, cloneChildren(children)), nil
	}

	if p.g.IsNonterm(sym) {
		preKey := entryKey{prodIndex: cur.key.prodIndex, dot: dotPos - 1, origin: cur.key.origin}
		for _, yEntry := range p.findPredecessorReduceCandidates(cur, sym) {
			t, ok := p.chart[yEntry.key.origin].get(preKey)
			if !ok {
				continue
			}
			childNode, err := p.reconstruct(yEntry)
			if err != nil {
				continue
			}
			next := cloneChildren(children)
			next[dotPos-1] = childNode
			result, err := p.reconstructFrom(t, item, next)
			if err == nil {
				return result, nil
			}
		}
		return nil, &InternalError{Reason: "no viable predecessor for nonterminal " + sym}
	}

	// Terminal: the scan step recorded the pre-advance entry itself as
	// the predecessor, so no separate chart lookup is needed.
	preKey := entryKey{prodIndex: cur.key.prodIndex, dot: dotPos - 1, origin: cur.key.origin}
	for _, t := range findPredecessorByKeyCandidates(cur, preKey) {
		tok := p.tokens[cur.index-1]
		next := cloneChildren(children)
		next[dotPos-1] = tree.NewLeaf(sym, tok.Raw)
		result, err := p.reconstructFrom(t, item, next)
		if err == nil {
			return result, nil
		}
	}
	return nil, &InternalError{Reason: "no viable predecessor for terminal " + sym}
}

func cloneChildren(children []*tree.Node) []*tree.Node {
	out := make([]*tree.Node, len(children))
	copy(out, children)
	return out
}

// findPredecessorReduceCandidates returns every predecessor of e that
// is itself a completed (reduce) entry for lhs, in insertion order.
func (p *Parser) findPredecessorReduceCandidates(e *entry, lhs string) []*entry {
	var out []*entry
	for _, pred := range e.predecessors {
		it := pred.item(p)
		if it.IsReduce() && it.Production.LHS == lhs {
			out = append(out, pred)
		}
	}
	return out
}

// findPredecessorByKeyCandidates returns every predecessor of e whose
// key matches exactly, in insertion order. Under normal chart
// construction this is at most one entry — a scan step has a single
// source — but the search is written generally rather than assuming
// uniqueness.
func findPredecessorByKeyCandidates(e *entry, key entryKey) []*entry {
	var out []*entry
	for _, pred := range e.predecessors {
		if pred.key == key {
			out = append(out, pred)
		}
	}
	return out
}

func (c *column) get(key entryKey) (*entry, bool) {
	e, ok := c.byKey[key]
	return e, ok
}
