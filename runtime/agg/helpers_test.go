package agg_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sumannewton/trino/block"
	"github.com/sumannewton/trino/runtime/agg"
	"github.com/sumannewton/trino/types"
)

func specialize(t *testing.T, name string, args ...types.Type) *agg.Aggregation {
	t.Helper()
	r := agg.NewBuiltinRegistry(nil)
	a, err := r.Specialize(name, args, block.NewTypeOperators())
	require.NoError(t, err)
	return a
}

func bind(t *testing.T, a *agg.Aggregation) *agg.AccumulatorFactory {
	t.Helper()
	channels := make([]int, len(a.ArgumentTypes()))
	for i := range channels {
		channels[i] = i
	}
	factory, err := a.Bind(channels, agg.NoMask)
	require.NoError(t, err)
	return factory
}

// int64Page builds a single-channel bigint page; nil means null.
func int64Page(values ...any) *block.Page {
	return block.NewPage(int64Block(types.Int64, values...))
}

func int64Block(typ types.Type, values ...any) block.Block {
	b := block.NewIntBuilder(typ)
	for _, v := range values {
		if v == nil {
			b.AppendNull()
		} else {
			b.Append(int64(v.(int)))
		}
	}
	return b.Build()
}

func floatPage(values ...any) *block.Page {
	b := block.NewFloatBuilder()
	for _, v := range values {
		if v == nil {
			b.AppendNull()
		} else {
			b.Append(v.(float64))
		}
	}
	return block.NewPage(b.Build())
}

func boolBlock(values ...any) block.Block {
	b := block.NewBoolBuilder()
	for _, v := range values {
		if v == nil {
			b.AppendNull()
		} else {
			b.Append(v.(bool))
		}
	}
	return b.Build()
}

func stringBlock(values ...any) block.Block {
	b := block.NewBytesBuilder(types.String)
	for _, v := range values {
		if v == nil {
			b.AppendNull()
		} else {
			b.Append([]byte(v.(string)))
		}
	}
	return b.Build()
}

// finalValue runs EvaluateFinal and decodes position 0; nil means null.
func finalValue(t *testing.T, a *agg.Aggregation, acc *agg.Accumulator) any {
	t.Helper()
	out := block.NewBuilder(a.OutputType())
	acc.EvaluateFinal(out)
	b := out.Build()
	require.Equal(t, 1, b.Len())
	return valueAt(b, 0)
}

func valueAt(b block.Block, i int) any {
	if b.IsNull(i) {
		return nil
	}
	switch b := b.(type) {
	case *block.Bool:
		return b.Value(i)
	case *block.Int:
		return b.Value(i)
	case *block.Float:
		return b.Value(i)
	case *block.Bytes:
		return string(b.Value(i))
	}
	panic("unhandled block type")
}

// direct runs the whole aggregation through one accumulator.
func direct(t *testing.T, a *agg.Aggregation, pages ...*block.Page) any {
	t.Helper()
	acc := bind(t, a).NewAccumulator()
	for _, page := range pages {
		acc.AddInput(page)
	}
	return finalValue(t, a, acc)
}

// distributed runs one partial accumulator per page, serializes each
// partial state, and combines the intermediates in a final accumulator.
// The result must match direct execution.
func distributed(t *testing.T, a *agg.Aggregation, pages ...*block.Page) any {
	t.Helper()
	factory := bind(t, a)
	intermediate := block.NewRowBuilder(a.IntermediateType())
	for _, page := range pages {
		partial := factory.NewAccumulator()
		partial.AddInput(page)
		partial.EvaluateIntermediate(intermediate)
	}
	final := factory.NewAccumulator()
	final.AddIntermediate(intermediate.Build().(*block.Row))
	return finalValue(t, a, final)
}
