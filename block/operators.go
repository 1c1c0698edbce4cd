package block

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/sumannewton/trino/types"
)

// Comparison orders the value at one block position against another.
// Both positions must be non-null.
type Comparison func(a Block, ai int, b Block, bi int) int

// Equality reports whether two non-null block positions hold equal values.
type Equality func(a Block, ai int, b Block, bi int) bool

// Hasher returns the xxHash64 of a non-null block position.
type Hasher func(b Block, i int) uint64

// TypeOperators resolves type-specialized comparison, equality, and hash
// operators over block positions.  Aggregate implementations declare which
// of these they need and the specializer resolves them at bind time.
type TypeOperators struct{}

func NewTypeOperators() *TypeOperators { return &TypeOperators{} }

func (*TypeOperators) Comparison(typ types.Type) (Comparison, error) {
	switch typ.ID() {
	case types.IDBool:
		return func(a Block, ai int, b Block, bi int) int {
			av, bv := a.(*Bool).Value(ai), b.(*Bool).Value(bi)
			if av == bv {
				return 0
			}
			if !av {
				return -1
			}
			return 1
		}, nil
	case types.IDInt64, types.IDDecimal:
		return func(a Block, ai int, b Block, bi int) int {
			av, bv := a.(*Int).Value(ai), b.(*Int).Value(bi)
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			}
			return 0
		}, nil
	case types.IDFloat64:
		return compareFloat, nil
	case types.IDString, types.IDBinary:
		return func(a Block, ai int, b Block, bi int) int {
			return bytes.Compare(a.(*Bytes).Value(ai), b.(*Bytes).Value(bi))
		}, nil
	}
	return nil, fmt.Errorf("block: type %s is not orderable", typ.Name())
}

// NaN orders after every other value so min/max stay stable in its
// presence.
func compareFloat(a Block, ai int, b Block, bi int) int {
	av, bv := a.(*Float).Value(ai), b.(*Float).Value(bi)
	anan, bnan := math.IsNaN(av), math.IsNaN(bv)
	switch {
	case anan && bnan:
		return 0
	case anan:
		return 1
	case bnan:
		return -1
	case av < bv:
		return -1
	case av > bv:
		return 1
	}
	return 0
}

func (o *TypeOperators) Equality(typ types.Type) (Equality, error) {
	cmp, err := o.Comparison(typ)
	if err != nil {
		return nil, fmt.Errorf("block: type %s is not comparable", typ.Name())
	}
	return func(a Block, ai int, b Block, bi int) bool {
		return cmp(a, ai, b, bi) == 0
	}, nil
}

func (*TypeOperators) XxHash64(typ types.Type) (Hasher, error) {
	switch typ.ID() {
	case types.IDBool:
		return func(b Block, i int) uint64 {
			if b.(*Bool).Value(i) {
				return xxhash.Sum64([]byte{1})
			}
			return xxhash.Sum64([]byte{0})
		}, nil
	case types.IDInt64, types.IDDecimal:
		return func(b Block, i int) uint64 {
			return hash64(uint64(b.(*Int).Value(i)))
		}, nil
	case types.IDFloat64:
		return func(b Block, i int) uint64 {
			v := b.(*Float).Value(i)
			// Canonicalize NaN and signed zero so equal values hash equal.
			if math.IsNaN(v) {
				v = math.NaN()
			} else if v == 0 {
				v = 0
			}
			return hash64(math.Float64bits(v))
		}, nil
	case types.IDString, types.IDBinary:
		return func(b Block, i int) uint64 {
			return xxhash.Sum64(b.(*Bytes).Value(i))
		}, nil
	}
	return nil, fmt.Errorf("block: type %s is not hashable", typ.Name())
}

func hash64(v uint64) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return xxhash.Sum64(buf[:])
}
