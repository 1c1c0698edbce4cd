package agg

import (
	"fmt"

	"github.com/sumannewton/trino/types"
)

// NoMask disables the mask channel when binding an aggregation.
const NoMask = -1

// Aggregation is an aggregate function specialized to concrete argument
// types.  It exposes the bound types and a factory for accumulators;
// the same Aggregation serves the partial, combining, and final stages.
type Aggregation struct {
	name       string
	args       []types.Type
	output     types.Type
	parameters []ParameterKind
	operation  Operation
	serializer StateSerializer
}

func (a *Aggregation) Name() string                      { return a.name }
func (a *Aggregation) ArgumentTypes() []types.Type       { return a.args }
func (a *Aggregation) IntermediateType() *types.RowType  { return a.serializer.SerializedType() }
func (a *Aggregation) OutputType() types.Type            { return a.output }

// Removable reports whether the aggregation supports sliding-window
// retraction via RemoveInput.
func (a *Aggregation) Removable() bool {
	_, ok := a.operation.(RemovableOperation)
	return ok
}

// Bind fixes the page layout: which page channel feeds each declared input
// channel, and an optional boolean mask channel (NoMask for none).  The
// channel count is validated here, once, not per row.
func (a *Aggregation) Bind(inputChannels []int, maskChannel int) (*AccumulatorFactory, error) {
	if got, want := len(inputChannels), channelArity(a.parameters); got != want {
		return nil, fmt.Errorf("agg: %s: bound %d input channels, want %d", a.name, got, want)
	}
	// Channel argument positions that must be non-null for the row to
	// reach the input operation.
	var demanded []int
	arg := 0
	for _, k := range a.parameters {
		switch k {
		case InputChannel, BlockInputChannel:
			demanded = append(demanded, arg)
			arg++
		case NullableBlockInputChannel:
			arg++
		}
	}
	return &AccumulatorFactory{
		agg:      a,
		channels: inputChannels,
		mask:     maskChannel,
		demanded: demanded,
	}, nil
}

// AccumulatorFactory creates accumulators over pages with the layout fixed
// at bind time.
type AccumulatorFactory struct {
	agg      *Aggregation
	channels []int
	mask     int
	demanded []int
}

func (f *AccumulatorFactory) NewAccumulator() *Accumulator {
	return &Accumulator{
		factory: f,
		state:   f.agg.operation.NewState(),
	}
}

func (f *AccumulatorFactory) NewGroupedAccumulator() *GroupedAccumulator {
	return &GroupedAccumulator{factory: f}
}
