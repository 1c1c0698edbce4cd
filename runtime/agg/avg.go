package agg

import (
	"github.com/sumannewton/trino/block"
	"github.com/sumannewton/trino/types"
)

// avgState keeps the running sum and count separately so partial averages
// combine exactly.
type avgState struct {
	sum   float64
	count int64
}

type avgOp struct{}

var _ RemovableOperation = avgOp{}

func (avgOp) NewState() State { return &avgState{} }

func (avgOp) Input(s State, args []block.Block, i int) {
	state := s.(*avgState)
	state.sum += args[0].(*block.Float).Value(i)
	state.count++
}

func (avgOp) RemoveInput(s State, args []block.Block, i int) {
	state := s.(*avgState)
	state.sum -= args[0].(*block.Float).Value(i)
	state.count--
}

func (avgOp) Combine(dst, src State) {
	from := src.(*avgState)
	to := dst.(*avgState)
	to.sum += from.sum
	to.count += from.count
}

func (avgOp) Output(s State, out block.Builder) {
	state := s.(*avgState)
	if state.count == 0 {
		out.AppendNull()
		return
	}
	out.(*block.FloatBuilder).Append(state.sum / float64(state.count))
}

func avgSerializer() StateSerializer {
	empty := func(s State) bool { return s.(*avgState).count == 0 }
	return NewSerializer(
		Field{
			Type:    types.Float64,
			IsNull:  empty,
			SetNull: func(State) {},
			Write: func(s State, b block.Builder) {
				b.(*block.FloatBuilder).Append(s.(*avgState).sum)
			},
			Read: func(s State, b block.Block, i int) {
				s.(*avgState).sum = b.(*block.Float).Value(i)
			},
		},
		Field{
			Type:    types.Int64,
			IsNull:  empty,
			SetNull: func(State) {},
			Write: func(s State, b block.Builder) {
				b.(*block.IntBuilder).Append(s.(*avgState).count)
			},
			Read: func(s State, b block.Block, i int) {
				s.(*avgState).count = b.(*block.Int).Value(i)
			},
		},
	)
}

func avgImplementation() *Implementation {
	return &Implementation{
		Name:       "avg",
		Exact:      []types.Type{types.Float64},
		Parameters: []ParameterKind{StateParameter, BlockInputChannel},
		ReturnType: func([]types.Type) types.Type { return types.Float64 },
		Bind: func([]types.Type, *Dependencies) (Operation, StateSerializer) {
			return avgOp{}, avgSerializer()
		},
	}
}
