package agg

import (
	"fmt"
	"math/big"

	"golang.org/x/exp/constraints"

	"github.com/sumannewton/trino/block"
	"github.com/sumannewton/trino/types"
)

type numeric interface {
	constraints.Integer | constraints.Float
}

// numberState is a nullable running total.  It starts null and becomes
// non-null on the first input; IEEE 754 NaN and infinities flow through
// float64 sums without special cases.
type numberState[T numeric] struct {
	sum  T
	null bool
}

type sumOp[T numeric] struct {
	value func(block.Block, int) T
	write func(block.Builder, T)
}

func (o *sumOp[T]) NewState() State { return &numberState[T]{null: true} }

func (o *sumOp[T]) Input(s State, args []block.Block, i int) {
	state := s.(*numberState[T])
	state.null = false
	state.sum += o.value(args[0], i)
}

func (o *sumOp[T]) RemoveInput(s State, args []block.Block, i int) {
	s.(*numberState[T]).sum -= o.value(args[0], i)
}

func (o *sumOp[T]) Combine(dst, src State) {
	from := src.(*numberState[T])
	if from.null {
		return
	}
	to := dst.(*numberState[T])
	to.null = false
	to.sum += from.sum
}

func (o *sumOp[T]) Output(s State, out block.Builder) {
	state := s.(*numberState[T])
	if state.null {
		out.AppendNull()
		return
	}
	o.write(out, state.sum)
}

func sumSerializer[T numeric](typ types.Type, write func(block.Builder, T), read func(block.Block, int) T) StateSerializer {
	return NewSerializer(Field{
		Type:    typ,
		IsNull:  func(s State) bool { return s.(*numberState[T]).null },
		SetNull: func(s State) { s.(*numberState[T]).null = true },
		Write: func(s State, b block.Builder) {
			write(b, s.(*numberState[T]).sum)
		},
		Read: func(s State, b block.Block, i int) {
			state := s.(*numberState[T])
			state.sum = read(b, i)
			state.null = false
		},
	})
}

func intValue(b block.Block, i int) int64     { return b.(*block.Int).Value(i) }
func floatValue(b block.Block, i int) float64 { return b.(*block.Float).Value(i) }

func writeInt(b block.Builder, v int64)     { b.(*block.IntBuilder).Append(v) }
func writeFloat(b block.Builder, v float64) { b.(*block.FloatBuilder).Append(v) }

// decimalSumState accumulates unscaled decimal magnitudes in a big.Int so
// intermediate totals never lose precision or overflow.
type decimalSumState struct {
	sum  big.Int
	null bool
}

type decimalSumOp struct {
	typ *types.DecimalType
}

var _ RemovableOperation = (*decimalSumOp)(nil)

func (o *decimalSumOp) NewState() State { return &decimalSumState{null: true} }

func (o *decimalSumOp) Input(s State, args []block.Block, i int) {
	state := s.(*decimalSumState)
	state.null = false
	state.sum.Add(&state.sum, big.NewInt(args[0].(*block.Int).Value(i)))
}

func (o *decimalSumOp) RemoveInput(s State, args []block.Block, i int) {
	state := s.(*decimalSumState)
	state.sum.Sub(&state.sum, big.NewInt(args[0].(*block.Int).Value(i)))
}

func (o *decimalSumOp) Combine(dst, src State) {
	from := src.(*decimalSumState)
	if from.null {
		return
	}
	to := dst.(*decimalSumState)
	to.null = false
	to.sum.Add(&to.sum, &from.sum)
}

func (o *decimalSumOp) Output(s State, out block.Builder) {
	state := s.(*decimalSumState)
	if state.null {
		out.AppendNull()
		return
	}
	if !state.sum.IsInt64() {
		panic(fmt.Sprintf("agg: sum overflows %s", o.typ.Name()))
	}
	out.(*block.IntBuilder).Append(state.sum.Int64())
}

func decimalSumSerializer() StateSerializer {
	return NewSerializer(Field{
		Type:    types.Binary,
		IsNull:  func(s State) bool { return s.(*decimalSumState).null },
		SetNull: func(s State) { s.(*decimalSumState).null = true },
		Write: func(s State, b block.Builder) {
			b.(*block.BytesBuilder).Append(encodeBigInt(&s.(*decimalSumState).sum))
		},
		Read: func(s State, b block.Block, i int) {
			state := s.(*decimalSumState)
			decodeBigInt(b.(*block.Bytes).Value(i), &state.sum)
			state.null = false
		},
	})
}

// Sign byte then big-endian magnitude.
func encodeBigInt(v *big.Int) []byte {
	sign := byte(0)
	if v.Sign() < 0 {
		sign = 1
	}
	return append([]byte{sign}, v.Bytes()...)
}

func decodeBigInt(b []byte, v *big.Int) {
	v.SetBytes(b[1:])
	if b[0] == 1 {
		v.Neg(v)
	}
}

func sumImplementations() []*Implementation {
	oneChannel := []ParameterKind{StateParameter, BlockInputChannel}
	return []*Implementation{
		{
			Name:       "sum",
			Exact:      []types.Type{types.Int64},
			Parameters: oneChannel,
			ReturnType: func([]types.Type) types.Type { return types.Int64 },
			Bind: func([]types.Type, *Dependencies) (Operation, StateSerializer) {
				return &sumOp[int64]{value: intValue, write: writeInt},
					sumSerializer[int64](types.Int64, writeInt, intValue)
			},
		},
		{
			Name:       "sum",
			Exact:      []types.Type{types.Float64},
			Parameters: oneChannel,
			ReturnType: func([]types.Type) types.Type { return types.Float64 },
			Bind: func([]types.Type, *Dependencies) (Operation, StateSerializer) {
				return &sumOp[float64]{value: floatValue, write: writeFloat},
					sumSerializer[float64](types.Float64, writeFloat, floatValue)
			},
		},
		{
			// Generic over all decimal precisions; the sum keeps the
			// argument's scale at the widest supported precision.
			Name: "sum",
			Matches: func(args []types.Type) bool {
				_, ok := args[0].(*types.DecimalType)
				return ok
			},
			Parameters: oneChannel,
			ReturnType: func(args []types.Type) types.Type {
				return types.Decimal(types.MaxShortPrecision, args[0].(*types.DecimalType).Scale)
			},
			Bind: func(args []types.Type, _ *Dependencies) (Operation, StateSerializer) {
				return &decimalSumOp{typ: args[0].(*types.DecimalType)}, decimalSumSerializer()
			},
		},
	}
}
