package agg

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/axiomhq/hyperloglog"

	"github.com/sumannewton/trino/block"
	"github.com/sumannewton/trino/types"
)

// sketchState approximates a distinct count with a hyperloglog sketch.
// The sketch's binary marshaling is the intermediate state payload.
type sketchState struct {
	scratch []byte
	sketch  *hyperloglog.Sketch
}

type approxDistinctOp struct {
	typ types.Type
}

func (o *approxDistinctOp) NewState() State {
	return &sketchState{sketch: hyperloglog.New()}
}

func (o *approxDistinctOp) Input(s State, args []block.Block, i int) {
	state := s.(*sketchState)
	// Prefix the type id so equal bytes of different types stay distinct.
	state.scratch = append(state.scratch[:0], byte(o.typ.ID()))
	state.scratch = appendValue(state.scratch, args[0], i)
	state.sketch.Insert(state.scratch)
}

func (o *approxDistinctOp) Combine(dst, src State) {
	dst.(*sketchState).sketch.Merge(src.(*sketchState).sketch)
}

// Estimate of an empty sketch is 0, not null.
func (o *approxDistinctOp) Output(s State, out block.Builder) {
	out.(*block.IntBuilder).Append(int64(s.(*sketchState).sketch.Estimate()))
}

func appendValue(b []byte, blk block.Block, i int) []byte {
	switch blk := blk.(type) {
	case *block.Bool:
		if blk.Value(i) {
			return append(b, 1)
		}
		return append(b, 0)
	case *block.Int:
		return binary.LittleEndian.AppendUint64(b, uint64(blk.Value(i)))
	case *block.Float:
		return binary.LittleEndian.AppendUint64(b, math.Float64bits(blk.Value(i)))
	case *block.Bytes:
		return append(b, blk.Value(i)...)
	}
	panic(fmt.Sprintf("agg: approx_distinct cannot encode %T", blk))
}

func sketchSerializer() StateSerializer {
	return NewSerializer(Field{
		Type:    types.Binary,
		IsNull:  func(State) bool { return false },
		SetNull: func(State) {},
		Write: func(s State, b block.Builder) {
			buf, err := s.(*sketchState).sketch.MarshalBinary()
			if err != nil {
				panic(fmt.Errorf("agg: approx_distinct: marshaling sketch: %w", err))
			}
			b.(*block.BytesBuilder).Append(buf)
		},
		Read: func(s State, b block.Block, i int) {
			if err := s.(*sketchState).sketch.UnmarshalBinary(b.(*block.Bytes).Value(i)); err != nil {
				panic(fmt.Errorf("agg: approx_distinct: unmarshaling sketch: %w", err))
			}
		},
	})
}

func approxDistinctImplementation() *Implementation {
	return &Implementation{
		Name: "approx_distinct",
		Matches: func(args []types.Type) bool {
			return args[0].ID() != types.IDRow
		},
		Parameters: []ParameterKind{StateParameter, BlockInputChannel, BlockIndexParameter},
		ReturnType: func([]types.Type) types.Type { return types.Int64 },
		Bind: func(args []types.Type, _ *Dependencies) (Operation, StateSerializer) {
			return &approxDistinctOp{typ: args[0]}, sketchSerializer()
		},
	}
}
