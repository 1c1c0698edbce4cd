package agg

import (
	"encoding/binary"

	"github.com/sumannewton/trino/block"
	"github.com/sumannewton/trino/types"
)

// ChecksumPrime is the per-row multiplier of the checksum aggregate.
// Null rows contribute the prime itself; non-null rows contribute their
// xxHash64 times the prime.  Contributions are summed, so the checksum is
// invariant under row order.
const ChecksumPrime uint64 = 0x9E3779B185EBCA87

type checksumState struct {
	sum  uint64
	null bool
}

type checksumOp struct {
	hash block.Hasher
}

func (o *checksumOp) NewState() State { return &checksumState{null: true} }

func (o *checksumOp) Input(s State, args []block.Block, i int) {
	state := s.(*checksumState)
	state.null = false
	if args[0].IsNull(i) {
		state.sum += ChecksumPrime
	} else {
		state.sum += o.hash(args[0], i) * ChecksumPrime
	}
}

func (o *checksumOp) Combine(dst, src State) {
	from := src.(*checksumState)
	if from.null {
		return
	}
	to := dst.(*checksumState)
	to.null = false
	to.sum += from.sum
}

func (o *checksumOp) Output(s State, out block.Builder) {
	state := s.(*checksumState)
	if state.null {
		out.AppendNull()
		return
	}
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], state.sum)
	out.(*block.BytesBuilder).Append(buf[:])
}

func checksumSerializer() StateSerializer {
	return NewSerializer(Field{
		Type:    types.Int64,
		IsNull:  func(s State) bool { return s.(*checksumState).null },
		SetNull: func(s State) { s.(*checksumState).null = true },
		Write: func(s State, b block.Builder) {
			b.(*block.IntBuilder).Append(int64(s.(*checksumState).sum))
		},
		Read: func(s State, b block.Block, i int) {
			state := s.(*checksumState)
			state.sum = uint64(b.(*block.Int).Value(i))
			state.null = false
		},
	})
}

func checksumImplementation() *Implementation {
	return &Implementation{
		Name: "checksum",
		Matches: func(args []types.Type) bool {
			return args[0].ID() != types.IDRow
		},
		Parameters: []ParameterKind{
			StateParameter,
			NullableBlockInputChannel, // null rows contribute to the checksum
			BlockIndexParameter,
		},
		InputDependencies: []Dependency{{Kind: XxHash64Dependency, Argument: 0}},
		ReturnType:        func([]types.Type) types.Type { return types.Binary },
		Bind: func(_ []types.Type, deps *Dependencies) (Operation, StateSerializer) {
			return &checksumOp{hash: deps.Input[0].Hasher}, checksumSerializer()
		},
	}
}
