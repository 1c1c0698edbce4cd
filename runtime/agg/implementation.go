package agg

import (
	"fmt"
	"strings"

	"github.com/sumannewton/trino/block"
	"github.com/sumannewton/trino/types"
)

// ParameterKind declares how one positional parameter of the input
// operation is supplied.  State and the block index are injected by the
// accumulator; channel kinds are drawn from the bound argument channels in
// declaration order.  BlockInputChannel rows with a null argument are
// skipped before the operation sees them; NullableBlockInputChannel rows
// are passed through.
type ParameterKind int

const (
	StateParameter ParameterKind = iota
	BlockIndexParameter
	InputChannel
	BlockInputChannel
	NullableBlockInputChannel
)

// channelArity counts the parameters drawn from input channels.
func channelArity(kinds []ParameterKind) int {
	n := 0
	for _, k := range kinds {
		switch k {
		case InputChannel, BlockInputChannel, NullableBlockInputChannel:
			n++
		}
	}
	return n
}

// DependencyKind names a type-specialized helper operator an
// implementation needs from the type system.
type DependencyKind int

const (
	ComparisonDependency DependencyKind = iota
	EqualityDependency
	XxHash64Dependency
)

// Dependency declares one operator dependency; Argument indexes the bound
// argument type the operator is specialized to.
type Dependency struct {
	Kind     DependencyKind
	Argument int
}

// Operator is one resolved dependency.  Only the member matching the
// declared kind is set.
type Operator struct {
	Comparison block.Comparison
	Equality   block.Equality
	Hasher     block.Hasher
}

// Dependencies carries the resolved operators for each aggregate
// operation.  The three lists are resolved independently: input, combine,
// and output may each need different helpers.
type Dependencies struct {
	Input   []Operator
	Combine []Operator
	Output  []Operator
}

// Implementation is a compile-time aggregate definition.  Exactly one of
// Exact or Matches is set: Exact registers the implementation for one
// concrete signature, Matches makes it generic over any satisfiable
// argument types.
type Implementation struct {
	Name string

	Exact   []types.Type
	Matches func(args []types.Type) bool

	// Parameters is the positional layout of the input (and remove-input)
	// operation.
	Parameters []ParameterKind

	InputDependencies   []Dependency
	CombineDependencies []Dependency
	OutputDependencies  []Dependency

	// ReturnType computes the final output type for bound arguments.
	ReturnType func(args []types.Type) types.Type

	// Bind constructs the operation and its state serializer for bound
	// arguments with all dependencies resolved.
	Bind func(args []types.Type, deps *Dependencies) (Operation, StateSerializer)
}

func signatureText(name string, args []types.Type) string {
	names := make([]string, 0, len(args))
	for _, t := range args {
		names = append(names, t.Name())
	}
	return name + "(" + strings.Join(names, ", ") + ")"
}

func resolveDependencies(impl *Implementation, args []types.Type, operators *block.TypeOperators) (*Dependencies, error) {
	deps := &Dependencies{}
	for _, part := range []struct {
		declared []Dependency
		resolved *[]Operator
	}{
		{impl.InputDependencies, &deps.Input},
		{impl.CombineDependencies, &deps.Combine},
		{impl.OutputDependencies, &deps.Output},
	} {
		for _, d := range part.declared {
			if d.Argument < 0 || d.Argument >= len(args) {
				return nil, fmt.Errorf("agg: %s: dependency on argument %d out of range", impl.Name, d.Argument)
			}
			op, err := resolveOperator(d, args[d.Argument], operators)
			if err != nil {
				return nil, err
			}
			*part.resolved = append(*part.resolved, op)
		}
	}
	return deps, nil
}

func resolveOperator(d Dependency, typ types.Type, operators *block.TypeOperators) (Operator, error) {
	switch d.Kind {
	case ComparisonDependency:
		cmp, err := operators.Comparison(typ)
		return Operator{Comparison: cmp}, err
	case EqualityDependency:
		eq, err := operators.Equality(typ)
		return Operator{Equality: eq}, err
	case XxHash64Dependency:
		h, err := operators.XxHash64(typ)
		return Operator{Hasher: h}, err
	}
	return Operator{}, fmt.Errorf("agg: unknown dependency kind %d", d.Kind)
}
