// Package tree defines the concrete parse tree produced by the earley
// reconstructor.
//
// A leaf carries a terminal symbol and its raw lexeme; an internal
// node carries a dotted item (always a reduce item) and its ordered
// children. There is no SPPF/ambiguity-forest layer here: this library
// returns one canonical tree, never a forest.
package tree

import "github.com/dhamidi/cfparse/grammar"

// Node is either a leaf (Item zero-valued, Children nil) or an internal
// node (Terminal/Lexeme zero-valued). Children, when present, are in
// left-to-right grammatical order; a Node owns them exclusively.
type Node struct {
	Terminal string // non-empty for a leaf (the matched terminal symbol)
	Lexeme   string // the leaf's raw surface text; empty for an epsilon leaf

	Item     grammar.Item // valid for an internal node: always a reduce item
	Children []*Node
}

// NewLeaf creates a leaf node for a matched terminal (or epsilon, with
// lexeme "").
func NewLeaf(terminal, lexeme string) *Node {
	return &Node{Terminal: terminal, Lexeme: lexeme}
}

// NewInternal creates an internal node for a completed production.
func NewInternal(item grammar.Item, children []*Node) *Node {
	return &Node{Item: item, Children: children}
}

// IsLeaf reports whether n is a terminal (or epsilon) leaf.
func (n *Node) IsLeaf() bool {
	return n.Children == nil && n.Item.Production.RHS == nil
}

// IsEpsilon reports whether n is the leaf produced for an epsilon
// match — it contributes nothing to the tree's yield.
func (n *Node) IsEpsilon() bool {
	return n.IsLeaf() && n.Terminal == grammar.Epsilon
}

// Yield returns the raw lexemes of every terminal leaf in n, in
// left-to-right order, skipping epsilon leaves. For an accepted parse
// this must equal the raw fields of the token stream that was parsed.
func (n *Node) Yield() []string {
	var out []string
	n.collectYield(&out)
	return out
}

func (n *Node) collectYield(out *[]string) {
	if n == nil {
		return
	}
	if n.IsLeaf() {
		if !n.IsEpsilon() {
			*out = append(*out, n.Lexeme)
		}
		return
	}
	for _, c := range n.Children {
		c.collectYield(out)
	}
}
