package agg

import "github.com/sumannewton/trino/block"

// Accumulator runs one ungrouped aggregation.  It is driven by a single
// goroutine; partial results cross stages only through the serialized
// intermediate representation.
type Accumulator struct {
	factory *AccumulatorFactory
	state   State
}

// AddInput feeds every unmasked row of the page to the input operation.
func (a *Accumulator) AddInput(page *block.Page) {
	a.factory.each(page, func(args []block.Block, position int) {
		a.factory.agg.operation.Input(a.state, args, position)
	})
}

// RemoveInput retracts previously added rows.  It reports false when the
// aggregate does not support removal, in which case the caller must
// recompute the window from a fresh accumulator.
func (a *Accumulator) RemoveInput(page *block.Page) bool {
	removable, ok := a.factory.agg.operation.(RemovableOperation)
	if !ok {
		return false
	}
	a.factory.each(page, func(args []block.Block, position int) {
		removable.RemoveInput(a.state, args, position)
	})
	return true
}

// EvaluateIntermediate appends the serialized state to out.  The state is
// not consumed; the call may be repeated.
func (a *Accumulator) EvaluateIntermediate(out *block.RowBuilder) {
	a.factory.agg.serializer.Serialize(a.state, out)
}

// AddIntermediate merges a batch of serialized partial states produced by
// EvaluateIntermediate on this or any other node.
func (a *Accumulator) AddIntermediate(states *block.Row) {
	op := a.factory.agg.operation
	serializer := a.factory.agg.serializer
	for i := 0; i < states.Len(); i++ {
		if states.IsNull(i) {
			continue
		}
		src := op.NewState()
		serializer.Deserialize(states, i, src)
		op.Combine(a.state, src)
	}
}

// EvaluateFinal appends the final result to out.  An accumulator that
// never saw input produces the aggregate's empty value.
func (a *Accumulator) EvaluateFinal(out block.Builder) {
	a.factory.agg.operation.Output(a.state, out)
}

// each applies f to every page position that passes the mask and the
// non-null demands of the parameter layout.
func (f *AccumulatorFactory) each(page *block.Page, eval func([]block.Block, int)) {
	args := make([]block.Block, 0, len(f.channels))
	for _, ch := range f.channels {
		args = append(args, page.Block(ch))
	}
	var mask *block.Bool
	if f.mask != NoMask {
		mask = page.Block(f.mask).(*block.Bool)
	}
positions:
	for position := 0; position < page.Len(); position++ {
		if mask != nil && (mask.IsNull(position) || !mask.Value(position)) {
			continue
		}
		for _, arg := range f.demanded {
			if args[arg].IsNull(position) {
				continue positions
			}
		}
		eval(args, position)
	}
}
