package agg

import (
	"github.com/sumannewton/trino/block"
	"github.com/sumannewton/trino/types"
)

// positionState remembers a value by reference: the block it arrived in
// and its position there.  Blocks are immutable, so holding the reference
// is safe and avoids copying wide values.
type positionState struct {
	blk  block.Block
	pos  int
	null bool
}

func (s *positionState) capture(blk block.Block, pos int) {
	s.blk = blk
	s.pos = pos
	s.null = false
}

// arbitraryOp keeps the first non-null value it sees.
type arbitraryOp struct{}

func (arbitraryOp) NewState() State { return &positionState{null: true} }

func (arbitraryOp) Input(s State, args []block.Block, i int) {
	state := s.(*positionState)
	if state.null {
		state.capture(args[0], i)
	}
}

func (arbitraryOp) Combine(dst, src State) {
	to := dst.(*positionState)
	from := src.(*positionState)
	if to.null && !from.null {
		*to = *from
	}
}

func (arbitraryOp) Output(s State, out block.Builder) {
	state := s.(*positionState)
	if state.null {
		out.AppendNull()
		return
	}
	block.AppendTo(state.blk, state.pos, out)
}

func positionField(typ types.Type, state func(State) *positionState) Field {
	return Field{
		Type:    typ,
		IsNull:  func(s State) bool { return state(s).null },
		SetNull: func(s State) { state(s).null = true },
		Write: func(s State, b block.Builder) {
			block.AppendTo(state(s).blk, state(s).pos, b)
		},
		Read: func(s State, b block.Block, i int) {
			state(s).capture(b, i)
		},
	}
}

func arbitraryImplementation() *Implementation {
	return &Implementation{
		Name:       "arbitrary",
		Matches:    func([]types.Type) bool { return true },
		Parameters: []ParameterKind{StateParameter, BlockInputChannel, BlockIndexParameter},
		ReturnType: func(args []types.Type) types.Type { return args[0] },
		Bind: func(args []types.Type, _ *Dependencies) (Operation, StateSerializer) {
			return arbitraryOp{}, NewSerializer(positionField(args[0], func(s State) *positionState {
				return s.(*positionState)
			}))
		},
	}
}
