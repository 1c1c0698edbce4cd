package agg

import "github.com/sumannewton/trino/block"

// GroupedAccumulator runs one aggregation keyed by dense integer group
// ids.  States live in a slab indexed by group id and are created lazily
// on first reference; group ids are expected to be dense, so the slab is a
// slice rather than a map.
type GroupedAccumulator struct {
	factory *AccumulatorFactory
	states  []State
}

func (g *GroupedAccumulator) state(group int) State {
	if group >= len(g.states) {
		g.states = append(g.states, make([]State, group+1-len(g.states))...)
	}
	if g.states[group] == nil {
		g.states[group] = g.factory.agg.operation.NewState()
	}
	return g.states[group]
}

// GroupCount returns the size of the slab, including groups that were
// never referenced.
func (g *GroupedAccumulator) GroupCount() int { return len(g.states) }

// AddInput feeds each unmasked row to the input operation of the state
// selected by groups, which holds one group id per page position.
func (g *GroupedAccumulator) AddInput(groups []int, page *block.Page) {
	g.factory.each(page, func(args []block.Block, position int) {
		g.factory.agg.operation.Input(g.state(groups[position]), args, position)
	})
}

// RemoveInput retracts rows per group; false means removal is unsupported.
func (g *GroupedAccumulator) RemoveInput(groups []int, page *block.Page) bool {
	removable, ok := g.factory.agg.operation.(RemovableOperation)
	if !ok {
		return false
	}
	g.factory.each(page, func(args []block.Block, position int) {
		removable.RemoveInput(g.state(groups[position]), args, position)
	})
	return true
}

// EvaluateIntermediate appends one group's serialized state to out.
func (g *GroupedAccumulator) EvaluateIntermediate(group int, out *block.RowBuilder) {
	g.factory.agg.serializer.Serialize(g.state(group), out)
}

// AddIntermediate merges serialized partial states, one per position,
// into the states selected by groups.
func (g *GroupedAccumulator) AddIntermediate(groups []int, states *block.Row) {
	op := g.factory.agg.operation
	serializer := g.factory.agg.serializer
	for i := 0; i < states.Len(); i++ {
		if states.IsNull(i) {
			continue
		}
		src := op.NewState()
		serializer.Deserialize(states, i, src)
		op.Combine(g.state(groups[i]), src)
	}
}

// EvaluateFinal appends one group's final result to out.
func (g *GroupedAccumulator) EvaluateFinal(group int, out block.Builder) {
	g.factory.agg.operation.Output(g.state(group), out)
}
