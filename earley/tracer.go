package earley

import "github.com/dhamidi/cfparse/grammar"

// Tracer receives events during chart construction. Used by the
// cfparse CLI's "trace" subcommand to print a play-by-play of
// prediction, scanning and completion.
type Tracer interface {
	OnPredict(column int, item grammar.Item)
	OnScan(column int, item grammar.Item, matched bool)
	OnComplete(column int, item grammar.Item)
	OnItemAdd(column int, item grammar.Item, origin int, reason string)
}
