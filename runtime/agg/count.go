package agg

import (
	"github.com/sumannewton/trino/block"
	"github.com/sumannewton/trino/types"
)

type countState struct {
	n int64
}

type countOp struct{}

var _ RemovableOperation = countOp{}

func (countOp) NewState() State { return &countState{} }

func (countOp) Input(s State, _ []block.Block, _ int) {
	s.(*countState).n++
}

func (countOp) RemoveInput(s State, _ []block.Block, _ int) {
	s.(*countState).n--
}

func (countOp) Combine(dst, src State) {
	dst.(*countState).n += src.(*countState).n
}

// count of nothing is 0, not null.
func (countOp) Output(s State, out block.Builder) {
	out.(*block.IntBuilder).Append(s.(*countState).n)
}

func countSerializer() StateSerializer {
	return NewSerializer(Field{
		Type:    types.Int64,
		IsNull:  func(State) bool { return false },
		SetNull: func(State) {},
		Write: func(s State, b block.Builder) {
			b.(*block.IntBuilder).Append(s.(*countState).n)
		},
		Read: func(s State, b block.Block, i int) {
			s.(*countState).n = b.(*block.Int).Value(i)
		},
	})
}

func countImplementations() []*Implementation {
	bindCount := func([]types.Type, *Dependencies) (Operation, StateSerializer) {
		return countOp{}, countSerializer()
	}
	returnInt64 := func([]types.Type) types.Type { return types.Int64 }
	return []*Implementation{
		{
			// count(*): no argument, counts rows.
			Name:       "count",
			Exact:      []types.Type{},
			Parameters: []ParameterKind{StateParameter, BlockIndexParameter},
			ReturnType: returnInt64,
			Bind:       bindCount,
		},
		{
			// count(x): counts non-null values of any type.
			Name:       "count",
			Matches:    func([]types.Type) bool { return true },
			Parameters: []ParameterKind{StateParameter, BlockInputChannel},
			ReturnType: returnInt64,
			Bind:       bindCount,
		},
	}
}
