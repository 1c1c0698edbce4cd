package agg

import (
	"github.com/sumannewton/trino/block"
	"github.com/sumannewton/trino/types"
)

// keyValueState tracks the best key seen so far and the value that
// arrived with it, both held by block reference.
type keyValueState struct {
	value positionState
	key   positionState
}

// minMaxByOp keeps the value whose key orders lowest (min_by) or highest
// (max_by).  The input and combine phases each carry their own resolved
// key comparison.
type minMaxByOp struct {
	max            bool
	compareInput   block.Comparison
	compareCombine block.Comparison
}

func (o *minMaxByOp) NewState() State {
	return &keyValueState{
		value: positionState{null: true},
		key:   positionState{null: true},
	}
}

func (o *minMaxByOp) Input(s State, args []block.Block, i int) {
	state := s.(*keyValueState)
	if !state.key.null {
		c := o.compareInput(args[1], i, state.key.blk, state.key.pos)
		if (o.max && c <= 0) || (!o.max && c >= 0) {
			return
		}
	}
	state.key.capture(args[1], i)
	if args[0].IsNull(i) {
		state.value.null = true
	} else {
		state.value.capture(args[0], i)
	}
}

func (o *minMaxByOp) Combine(dst, src State) {
	to := dst.(*keyValueState)
	from := src.(*keyValueState)
	if from.key.null {
		return
	}
	if !to.key.null {
		c := o.compareCombine(from.key.blk, from.key.pos, to.key.blk, to.key.pos)
		if (o.max && c <= 0) || (!o.max && c >= 0) {
			return
		}
	}
	*to = *from
}

func (o *minMaxByOp) Output(s State, out block.Builder) {
	state := s.(*keyValueState)
	if state.value.null {
		out.AppendNull()
		return
	}
	block.AppendTo(state.value.blk, state.value.pos, out)
}

func orderable(typ types.Type) bool {
	switch typ.ID() {
	case types.IDBool, types.IDInt64, types.IDFloat64, types.IDString, types.IDBinary, types.IDDecimal:
		return true
	}
	return false
}

func minMaxByImplementations() []*Implementation {
	impl := func(name string, max bool) *Implementation {
		keyComparison := []Dependency{{Kind: ComparisonDependency, Argument: 1}}
		return &Implementation{
			Name: name,
			Matches: func(args []types.Type) bool {
				return orderable(args[1])
			},
			Parameters: []ParameterKind{
				StateParameter,
				NullableBlockInputChannel, // value may be null even for the best key
				BlockInputChannel,         // key; null keys are skipped
				BlockIndexParameter,
			},
			InputDependencies:   keyComparison,
			CombineDependencies: keyComparison,
			ReturnType:          func(args []types.Type) types.Type { return args[0] },
			Bind: func(args []types.Type, deps *Dependencies) (Operation, StateSerializer) {
				op := &minMaxByOp{
					max:            max,
					compareInput:   deps.Input[0].Comparison,
					compareCombine: deps.Combine[0].Comparison,
				}
				serializer := NewSerializer(
					positionField(args[0], func(s State) *positionState {
						return &s.(*keyValueState).value
					}),
					positionField(args[1], func(s State) *positionState {
						return &s.(*keyValueState).key
					}),
				)
				return op, serializer
			},
		}
	}
	return []*Implementation{impl("min_by", false), impl("max_by", true)}
}
