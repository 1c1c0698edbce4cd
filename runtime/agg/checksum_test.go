package agg_test

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumannewton/trino/block"
	"github.com/sumannewton/trino/runtime/agg"
	"github.com/sumannewton/trino/types"
)

// expectedChecksum mirrors the wire definition: null positions contribute
// the prime, others their hash times the prime, summed in any order.
func expectedChecksum(t *testing.T, b block.Block) string {
	t.Helper()
	hasher, err := block.NewTypeOperators().XxHash64(b.Type())
	require.NoError(t, err)
	var sum uint64
	for i := 0; i < b.Len(); i++ {
		if b.IsNull(i) {
			sum += agg.ChecksumPrime
		} else {
			sum += hasher(b, i) * agg.ChecksumPrime
		}
	}
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], sum)
	return string(buf[:])
}

func TestChecksumEmpty(t *testing.T) {
	a := specialize(t, "checksum", types.Bool)
	assert.Equal(t, types.Binary, a.OutputType())
	assert.Nil(t, direct(t, a))
}

func TestChecksumBoolean(t *testing.T) {
	a := specialize(t, "checksum", types.Bool)
	b := boolBlock(nil, nil, true, false, false)
	assert.Equal(t, expectedChecksum(t, b), direct(t, a, block.NewPage(b)))
}

func TestChecksumLong(t *testing.T) {
	a := specialize(t, "checksum", types.Int64)
	b := int64Block(types.Int64, nil, 1, 2, 100, nil)
	assert.Equal(t, expectedChecksum(t, b), direct(t, a, block.NewPage(b)))
}

func TestChecksumString(t *testing.T) {
	a := specialize(t, "checksum", types.String)
	b := stringBlock("a", "a", nil, "b", "c")
	assert.Equal(t, expectedChecksum(t, b), direct(t, a, block.NewPage(b)))
}

func TestChecksumDecimal(t *testing.T) {
	typ := types.Decimal(10, 2)
	a := specialize(t, "checksum", typ)
	b := int64Block(typ, 1111, 2222, nil, 3333, 4444)
	assert.Equal(t, expectedChecksum(t, b), direct(t, a, block.NewPage(b)))
}

// The checksum of [true, false, null, true] is invariant under any
// permutation of the rows.
func TestChecksumPermutationInvariant(t *testing.T) {
	a := specialize(t, "checksum", types.Bool)
	rows := []any{true, false, nil, true}
	want := direct(t, a, block.NewPage(boolBlock(rows...)))
	require.NotNil(t, want)

	var permute func(prefix, rest []any)
	permute = func(prefix, rest []any) {
		if len(rest) == 0 {
			got := direct(t, a, block.NewPage(boolBlock(prefix...)))
			assert.Equal(t, want, got, "permutation %v", prefix)
			return
		}
		for i := range rest {
			next := append(append([]any{}, rest[:i]...), rest[i+1:]...)
			permute(append(append([]any{}, prefix...), rest[i]), next)
		}
	}
	permute(nil, rows)
}

func TestChecksumRoundTrip(t *testing.T) {
	a := specialize(t, "checksum", types.Int64)
	whole := int64Page(1, nil, 3, 4)
	want := direct(t, a, whole)
	assert.Equal(t, want, distributed(t, a, int64Page(1, nil), int64Page(3, 4)))
	// Splitting differently cannot change a commutative sum.
	assert.Equal(t, want, distributed(t, a, int64Page(4, 3), int64Page(nil), int64Page(1)))
}
