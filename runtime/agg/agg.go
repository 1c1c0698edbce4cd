// Package agg implements the decomposable aggregation core.  An aggregate
// is defined by input, combine, and output operations over a private state
// record; the framework wraps a definition into accumulators that can run
// the whole computation on one node or serialize partial states into a
// row-typed intermediate representation, ship them between stages, and
// combine them elsewhere.
package agg

import "github.com/sumannewton/trino/block"

// State is one partial aggregation's working memory.  A State belongs to
// exactly one accumulator (or one group slot) and is never shared across
// goroutines; cross-stage merging happens only through the serialized
// intermediate representation.
type State any

// Operation is an aggregate implementation bound to concrete argument
// types.  Input receives the argument blocks laid out per the
// implementation's declared parameter kinds, plus the row position.
type Operation interface {
	NewState() State
	Input(state State, args []block.Block, position int)
	Combine(dst, src State)
	Output(state State, out block.Builder)
}

// RemovableOperation additionally supports retracting a previously added
// row, for sliding-window re-evaluation.  Aggregates without it force the
// caller to recompute the window from a fresh state, which must yield the
// same result.
type RemovableOperation interface {
	Operation
	RemoveInput(state State, args []block.Block, position int)
}
