package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumannewton/trino/types"
)

func TestNames(t *testing.T) {
	assert.Equal(t, "bigint", types.Int64.Name())
	assert.Equal(t, "boolean", types.Bool.Name())
	assert.Equal(t, "decimal(10,2)", types.Decimal(10, 2).Name())
	assert.Equal(t, "row(bigint, boolean)", types.Row(types.Int64, types.Bool).Name())
}

func TestDecimalValidation(t *testing.T) {
	require.Panics(t, func() { types.Decimal(0, 0) })
	require.Panics(t, func() { types.Decimal(10, 11) })
	require.Panics(t, func() { types.Decimal(19, 0) })
	require.Panics(t, func() { types.Decimal(10, -1) })
}

func TestSame(t *testing.T) {
	assert.True(t, types.Same(types.Int64, types.Int64))
	assert.False(t, types.Same(types.Int64, types.Float64))
	assert.True(t, types.Same(types.Decimal(10, 2), types.Decimal(10, 2)))
	assert.False(t, types.Same(types.Decimal(10, 2), types.Decimal(10, 3)))
	assert.True(t, types.Same(
		types.Row(types.Int64, types.Bool),
		types.Row(types.Int64, types.Bool)))
	assert.False(t, types.Same(
		types.Row(types.Int64),
		types.Row(types.Int64, types.Bool)))
	assert.False(t, types.Same(types.Int64, types.Row(types.Int64)))
}
