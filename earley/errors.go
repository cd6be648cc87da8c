package earley

import "fmt"

// ParseRejectedError reports that the chart does not contain an
// accepting entry: the token stream does not belong to the grammar's
// language. It carries no partial tree.
type ParseRejectedError struct {
	Start      string
	TokenCount int
}

func (e *ParseRejectedError) Error() string {
	return fmt.Sprintf("parse rejected: no derivation of %q accepts all %d tokens", e.Start, e.TokenCount)
}

// InternalError signals that a chart invariant was violated during
// reconstruction — unreachable for charts produced by Parser.Recognize,
// used as an assertion backstop.
type InternalError struct {
	Reason string
}

func (e *InternalError) Error() string {
	return "internal error: " + e.Reason
}
