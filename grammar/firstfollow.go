package grammar

import "github.com/dhamidi/cfparse/internal/orderedset"

// computeNullable runs a fixed-point sweep: repeat until no production
// changes the set, adding N whenever some alternative of N consists
// entirely of nullable symbols (or is the epsilon alternative itself).
func (g *Grammar) computeNullable() {
	g.nullable = orderedset.New[string]()

	changed := true
	for changed {
		changed = false
		for _, p := range g.productions {
			if g.nullable.Contains(p.LHS) {
				continue
			}
			if p.IsEpsilon() {
				if g.nullable.Add(p.LHS) {
					changed = true
				}
				continue
			}
			allNullable := true
			for _, sym := range p.RHS {
				if !g.nullable.Contains(sym) {
					allNullable = false
					break
				}
			}
			if allNullable && g.nullable.Add(p.LHS) {
				changed = true
			}
		}
	}
}

// computeFirst runs the FIRST fixed-point sweep. It tracks FIRST(X) for
// every symbol (terminal and nonterminal) while
// converging, then publishes only the nonterminal entries: a terminal's
// own FIRST set is always the trivial {terminal} and is not part of the
// observable FIRST mapping.
func (g *Grammar) computeFirst() {
	working := make(map[string]*orderedset.Set[string])
	for _, t := range g.terms.Slice() {
		s := orderedset.New[string]()
		s.Add(t)
		working[t] = s
	}
	for _, n := range g.nonterms.Slice() {
		working[n] = orderedset.New[string]()
	}

	changed := true
	for changed {
		changed = false
		for _, p := range g.productions {
			target := working[p.LHS]

			if p.IsEpsilon() {
				if target.Add(Epsilon) {
					changed = true
				}
				continue
			}

			reachedEnd := true
			for _, sym := range p.RHS {
				symFirst := working[sym]
				for _, t := range symFirst.Slice() {
					if t != Epsilon {
						if target.Add(t) {
							changed = true
						}
					}
				}
				if g.nullable.Contains(sym) {
					continue
				}
				reachedEnd = false
				break
			}
			if reachedEnd {
				if target.Add(Epsilon) {
					changed = true
				}
			}
		}
	}

	g.first = make(map[string]*orderedset.Set[string])
	for _, n := range g.nonterms.Slice() {
		g.first[n] = working[n]
	}
}

// computeFollow runs the FOLLOW fixed-point sweep: FOLLOW(start)
// always contains "$"; every production's right-hand side is walked
// right to left carrying a trailer set that starts as FOLLOW(lhs) and
// is grown or replaced symbol by symbol.
func (g *Grammar) computeFollow() {
	g.follow = make(map[string]*orderedset.Set[string])
	for _, n := range g.nonterms.Slice() {
		g.follow[n] = orderedset.New[string]()
	}
	g.follow[g.start].Add(EndOfInput)

	changed := true
	for changed {
		changed = false
		for _, p := range g.productions {
			if p.IsEpsilon() {
				continue
			}

			trailer := cloneSet(g.follow[p.LHS])

			for i := len(p.RHS) - 1; i >= 0; i-- {
				sym := p.RHS[i]

				if g.IsNonterm(sym) {
					if unionInto(g.follow[sym], trailer) {
						changed = true
					}
					if g.nullable.Contains(sym) {
						trailer = unionMinusEpsilon(trailer, g.first[sym])
						continue
					}
					trailer = cloneSet(g.first[sym])
					continue
				}

				// Terminal: FIRST(terminal) = {terminal}, and a
				// terminal is never nullable, so trailer is simply
				// replaced.
				trailer = orderedset.New[string]()
				trailer.Add(sym)
			}
		}
	}
}

func cloneSet(s *orderedset.Set[string]) *orderedset.Set[string] {
	clone := orderedset.New[string]()
	for _, v := range s.Slice() {
		clone.Add(v)
	}
	return clone
}

// unionInto adds every element of src into dst, reporting whether dst
// gained any new element.
func unionInto(dst, src *orderedset.Set[string]) bool {
	changed := false
	for _, v := range src.Slice() {
		if dst.Add(v) {
			changed = true
		}
	}
	return changed
}

// unionMinusEpsilon returns a new set containing every element of base
// plus every element of extra except Epsilon.
func unionMinusEpsilon(base, extra *orderedset.Set[string]) *orderedset.Set[string] {
	result := cloneSet(base)
	for _, v := range extra.Slice() {
		if v != Epsilon {
			result.Add(v)
		}
	}
	return result
}
