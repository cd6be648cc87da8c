package earley

import (
	"github.com/dhamidi/cfparse/grammar"
	"github.com/dhamidi/cfparse/internal/orderedset"
)

// entryKey identifies an entry for deduplication within a column: two
// entries with the same (production, dot, origin) are the same entry.
// prodIndex indexes into the Parser's augmented production list rather
// than storing the production's RHS directly, since a slice-bearing
// struct cannot be a map key.
type entryKey struct {
	prodIndex int
	dot       int
	origin    int
}

// entry is one Earley chart entry: a dotted item, its origin column,
// the column it lives in, and every predecessor entry that caused it
// to be added. Multiple predecessors are expected — the same
// (item, origin) pair can be derived several ways in an ambiguous or
// left-recursive grammar — and all are retained so the reconstructor
// can find a path.
type entry struct {
	key   entryKey
	index int // column this entry lives in (not part of key; handy to carry along)

	predecessors []*entry
}

func (e *entry) item(p *Parser) grammar.Item {
	return grammar.Item{Production: p.productions[e.key.prodIndex], Dot: e.key.dot}
}

// column is one Earley chart column: an insertion-ordered, deduplicated
// set of entries. Inserting a duplicate (item, origin) pair instead
// augments the existing entry's predecessor set — this is what lets
// nullable productions and left recursion terminate while preserving
// enough evidence for reconstruction.
type column struct {
	entries *orderedset.Set[*entry]
	byKey   map[entryKey]*entry
}

func newColumn() *column {
	return &column{
		entries: orderedset.New[*entry](),
		byKey:   make(map[entryKey]*entry),
	}
}

// insert adds (key) to the column if not already present, wiring pred
// as a predecessor either way. Returns the entry and whether it was
// newly added.
func (c *column) insert(key entryKey, index int, pred *entry) (*entry, bool) {
	if existing, ok := c.byKey[key]; ok {
		if pred != nil {
			existing.predecessors = append(existing.predecessors, pred)
		}
		return existing, false
	}
	e := &entry{key: key, index: index}
	if pred != nil {
		e.predecessors = append(e.predecessors, pred)
	}
	c.byKey[key] = e
	c.entries.Add(e)
	return e, true
}

// mutableIterate visits every entry in insertion order, including
// entries inserted by fn during the same sweep — required so
// completions and predictions discovered mid-column are processed
// within the same column pass.
func (c *column) mutableIterate(fn func(*entry)) {
	c.entries.MutableIterate(fn)
}
