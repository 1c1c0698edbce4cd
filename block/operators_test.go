package block_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumannewton/trino/block"
	"github.com/sumannewton/trino/types"
)

func TestComparison(t *testing.T) {
	operators := block.NewTypeOperators()

	cmp, err := operators.Comparison(types.Int64)
	require.NoError(t, err)
	b := block.NewInt(types.Int64, []int64{1, 2, 1}, nil)
	assert.Negative(t, cmp(b, 0, b, 1))
	assert.Positive(t, cmp(b, 1, b, 0))
	assert.Zero(t, cmp(b, 0, b, 2))

	scmp, err := operators.Comparison(types.String)
	require.NoError(t, err)
	s := block.NewBytes(types.String, [][]byte{[]byte("a"), []byte("b")}, nil)
	assert.Negative(t, scmp(s, 0, s, 1))

	_, err = operators.Comparison(types.Row(types.Int64))
	require.Error(t, err)
}

// NaN orders after everything, including +Inf.
func TestComparisonFloatNaN(t *testing.T) {
	operators := block.NewTypeOperators()
	cmp, err := operators.Comparison(types.Float64)
	require.NoError(t, err)
	f := block.NewFloat([]float64{1.0, math.NaN(), math.Inf(1)}, nil)
	assert.Negative(t, cmp(f, 0, f, 1))
	assert.Positive(t, cmp(f, 1, f, 2))
	assert.Zero(t, cmp(f, 1, f, 1))
}

func TestEquality(t *testing.T) {
	operators := block.NewTypeOperators()
	eq, err := operators.Equality(types.Int64)
	require.NoError(t, err)
	b := block.NewInt(types.Int64, []int64{5, 5, 6}, nil)
	assert.True(t, eq(b, 0, b, 1))
	assert.False(t, eq(b, 0, b, 2))
}

func TestXxHash64(t *testing.T) {
	operators := block.NewTypeOperators()

	hash, err := operators.XxHash64(types.Int64)
	require.NoError(t, err)
	b := block.NewInt(types.Int64, []int64{7, 7, 8}, nil)
	assert.Equal(t, hash(b, 0), hash(b, 1))
	assert.NotEqual(t, hash(b, 0), hash(b, 2))

	// Signed zero and NaN hash canonically.
	fhash, err := operators.XxHash64(types.Float64)
	require.NoError(t, err)
	f := block.NewFloat([]float64{0.0, math.Copysign(0, -1), math.NaN(), math.NaN()}, nil)
	assert.Equal(t, fhash(f, 0), fhash(f, 1))
	assert.Equal(t, fhash(f, 2), fhash(f, 3))

	shash, err := operators.XxHash64(types.String)
	require.NoError(t, err)
	s := block.NewBytes(types.String, [][]byte{[]byte("x"), []byte("x"), []byte("y")}, nil)
	assert.Equal(t, shash(s, 0), shash(s, 1))
	assert.NotEqual(t, shash(s, 0), shash(s, 2))
}
