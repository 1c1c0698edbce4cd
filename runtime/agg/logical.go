package agg

import (
	"github.com/sumannewton/trino/block"
	"github.com/sumannewton/trino/types"
)

type boolState struct {
	val  bool
	null bool
}

// logicalOp folds booleans with AND or OR, selected by and.
type logicalOp struct {
	and bool
}

func (o logicalOp) NewState() State { return &boolState{null: true} }

func (o logicalOp) Input(s State, args []block.Block, i int) {
	state := s.(*boolState)
	v := args[0].(*block.Bool).Value(i)
	if state.null {
		state.null = false
		state.val = v
		return
	}
	if o.and {
		state.val = state.val && v
	} else {
		state.val = state.val || v
	}
}

func (o logicalOp) Combine(dst, src State) {
	from := src.(*boolState)
	if from.null {
		return
	}
	to := dst.(*boolState)
	if to.null {
		*to = *from
		return
	}
	if o.and {
		to.val = to.val && from.val
	} else {
		to.val = to.val || from.val
	}
}

func (o logicalOp) Output(s State, out block.Builder) {
	state := s.(*boolState)
	if state.null {
		out.AppendNull()
		return
	}
	out.(*block.BoolBuilder).Append(state.val)
}

func boolSerializer() StateSerializer {
	return NewSerializer(Field{
		Type:    types.Bool,
		IsNull:  func(s State) bool { return s.(*boolState).null },
		SetNull: func(s State) { s.(*boolState).null = true },
		Write: func(s State, b block.Builder) {
			b.(*block.BoolBuilder).Append(s.(*boolState).val)
		},
		Read: func(s State, b block.Block, i int) {
			state := s.(*boolState)
			state.val = b.(*block.Bool).Value(i)
			state.null = false
		},
	})
}

func logicalImplementations() []*Implementation {
	impl := func(name string, and bool) *Implementation {
		return &Implementation{
			Name:       name,
			Exact:      []types.Type{types.Bool},
			Parameters: []ParameterKind{StateParameter, BlockInputChannel},
			ReturnType: func([]types.Type) types.Type { return types.Bool },
			Bind: func([]types.Type, *Dependencies) (Operation, StateSerializer) {
				return logicalOp{and: and}, boolSerializer()
			},
		}
	}
	return []*Implementation{impl("bool_and", true), impl("bool_or", false)}
}
