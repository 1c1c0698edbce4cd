package agg_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumannewton/trino/block"
	"github.com/sumannewton/trino/runtime/agg"
	"github.com/sumannewton/trino/types"
)

func TestExactBeatsGeneric(t *testing.T) {
	r := agg.NewBuiltinRegistry(nil)
	operators := block.NewTypeOperators()

	// sum(bigint) hits the exact implementation.
	a, err := r.Specialize("sum", []types.Type{types.Int64}, operators)
	require.NoError(t, err)
	assert.Equal(t, types.Int64, a.OutputType())

	// sum(decimal) falls through to the generic decimal implementation.
	a, err = r.Specialize("sum", []types.Type{types.Decimal(10, 2)}, operators)
	require.NoError(t, err)
	assert.Equal(t, types.Decimal(types.MaxShortPrecision, 2), a.OutputType())
}

func TestMissingImplementation(t *testing.T) {
	r := agg.NewBuiltinRegistry(nil)
	operators := block.NewTypeOperators()

	_, err := r.Specialize("sum", []types.Type{types.String}, operators)
	require.ErrorIs(t, err, agg.ErrMissingImplementation)
	assert.Contains(t, err.Error(), "sum(varchar)")

	_, err = r.Specialize("no_such_aggregate", []types.Type{types.Int64}, operators)
	require.ErrorIs(t, err, agg.ErrMissingImplementation)

	// Arity mismatch is a missing implementation, not a crash.
	_, err = r.Specialize("avg", []types.Type{types.Float64, types.Float64}, operators)
	require.ErrorIs(t, err, agg.ErrMissingImplementation)
}

// Two satisfiable generic implementations must fail loudly at bind time,
// never pick one arbitrarily.
func TestAmbiguousCall(t *testing.T) {
	r := agg.NewRegistry(nil)
	overlapping := func() *agg.Implementation {
		return &agg.Implementation{
			Name:       "pick",
			Matches:    func(args []types.Type) bool { return args[0].ID() == types.IDInt64 },
			Parameters: []agg.ParameterKind{agg.StateParameter, agg.BlockInputChannel},
			ReturnType: func([]types.Type) types.Type { return types.Int64 },
			Bind: func([]types.Type, *agg.Dependencies) (agg.Operation, agg.StateSerializer) {
				panic("must not bind an ambiguous call")
			},
		}
	}
	r.Register(overlapping())
	r.Register(overlapping())

	_, err := r.Specialize("pick", []types.Type{types.Int64}, block.NewTypeOperators())
	require.ErrorIs(t, err, agg.ErrAmbiguousCall)
	assert.Contains(t, err.Error(), "pick(bigint)")

	// A non-overlapping argument type is merely missing.
	_, err = r.Specialize("pick", []types.Type{types.Bool}, block.NewTypeOperators())
	require.ErrorIs(t, err, agg.ErrMissingImplementation)
}

func TestDuplicateExactRegistrationPanics(t *testing.T) {
	r := agg.NewRegistry(nil)
	impl := func() *agg.Implementation {
		return &agg.Implementation{
			Name:       "dup",
			Exact:      []types.Type{types.Int64},
			Parameters: []agg.ParameterKind{agg.StateParameter, agg.BlockInputChannel},
			ReturnType: func([]types.Type) types.Type { return types.Int64 },
			Bind: func([]types.Type, *agg.Dependencies) (agg.Operation, agg.StateSerializer) {
				return nil, nil
			},
		}
	}
	r.Register(impl())
	require.Panics(t, func() { r.Register(impl()) })
}

func TestUnorderableKeyIsMissing(t *testing.T) {
	r := agg.NewBuiltinRegistry(nil)
	rowKey := types.Row(types.Int64)
	_, err := r.Specialize("min_by", []types.Type{types.Int64, rowKey}, block.NewTypeOperators())
	require.ErrorIs(t, err, agg.ErrMissingImplementation)
}

func TestBindValidatesChannelCount(t *testing.T) {
	a := specialize(t, "sum", types.Int64)
	_, err := a.Bind([]int{0, 1}, agg.NoMask)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want 1")
	_, err = a.Bind(nil, agg.NoMask)
	require.Error(t, err)
}

func TestSpecializationErrorsBeforeRows(t *testing.T) {
	// The failure must surface from Specialize itself; no accumulator is
	// ever constructed for a bad signature.
	r := agg.NewBuiltinRegistry(nil)
	_, err := r.Specialize("checksum", []types.Type{types.Row(types.Int64)}, block.NewTypeOperators())
	require.ErrorIs(t, err, agg.ErrMissingImplementation)
}

func TestIntermediateTypeShape(t *testing.T) {
	// avg's intermediate is (sum, sumIsNull, count, countIsNull): the
	// field pairing and order are a wire compatibility contract.
	a := specialize(t, "avg", types.Float64)
	require.True(t, types.Same(
		types.Row(types.Float64, types.Bool, types.Int64, types.Bool),
		a.IntermediateType()))

	b := specialize(t, "min_by", types.Float64, types.Int64)
	require.True(t, types.Same(
		types.Row(types.Float64, types.Bool, types.Int64, types.Bool),
		b.IntermediateType()))
}

func TestErrorSentinelsDistinct(t *testing.T) {
	assert.False(t, errors.Is(agg.ErrAmbiguousCall, agg.ErrMissingImplementation))
}
