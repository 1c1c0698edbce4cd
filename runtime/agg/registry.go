package agg

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/sumannewton/trino/block"
	"github.com/sumannewton/trino/types"
)

// Bind-time failures.  Both are query-compile-class errors: they surface
// before any row is processed.
var (
	ErrAmbiguousCall         = errors.New("ambiguous aggregate function call")
	ErrMissingImplementation = errors.New("unsupported argument types for aggregate function")
)

// Registry holds aggregate implementations and specializes them to bound
// signatures.  It is an explicit object built once at startup and passed
// to whoever plans aggregations; there is no ambient global registry.
type Registry struct {
	logger  *zap.Logger
	exact   map[string]*Implementation
	generic map[string][]*Implementation
}

func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		logger:  logger,
		exact:   make(map[string]*Implementation),
		generic: make(map[string][]*Implementation),
	}
}

func (r *Registry) Register(impl *Implementation) {
	if impl.Exact != nil {
		if got, want := len(impl.Exact), channelArity(impl.Parameters); got != want {
			panic(fmt.Sprintf("agg: %s: %d exact argument types, parameter layout wants %d", impl.Name, got, want))
		}
		key := signatureText(impl.Name, impl.Exact)
		if _, ok := r.exact[key]; ok {
			panic(fmt.Sprintf("agg: duplicate implementation for %s", key))
		}
		r.exact[key] = impl
		r.logger.Debug("registered aggregate", zap.String("signature", key))
		return
	}
	if impl.Matches == nil {
		panic(fmt.Sprintf("agg: %s: implementation is neither exact nor generic", impl.Name))
	}
	r.generic[impl.Name] = append(r.generic[impl.Name], impl)
	r.logger.Debug("registered generic aggregate", zap.String("name", impl.Name))
}

// Specialize selects the implementation for the bound argument types,
// resolves its operator dependencies, and returns the bound aggregation.
// An implementation registered for the exact signature wins outright;
// otherwise exactly one generic implementation must be satisfiable.
func (r *Registry) Specialize(name string, args []types.Type, operators *block.TypeOperators) (*Aggregation, error) {
	impl, err := r.find(name, args)
	if err != nil {
		r.logger.Debug("aggregate specialization failed",
			zap.String("signature", signatureText(name, args)), zap.Error(err))
		return nil, err
	}
	deps, err := resolveDependencies(impl, args, operators)
	if err != nil {
		return nil, err
	}
	operation, serializer := impl.Bind(args, deps)
	return &Aggregation{
		name:       impl.Name,
		args:       args,
		output:     impl.ReturnType(args),
		parameters: impl.Parameters,
		operation:  operation,
		serializer: serializer,
	}, nil
}

func (r *Registry) find(name string, args []types.Type) (*Implementation, error) {
	if impl, ok := r.exact[signatureText(name, args)]; ok {
		return impl, nil
	}
	var found *Implementation
	for _, candidate := range r.generic[name] {
		if channelArity(candidate.Parameters) != len(args) || !candidate.Matches(args) {
			continue
		}
		if found != nil {
			return nil, fmt.Errorf("%w: %s", ErrAmbiguousCall, signatureText(name, args))
		}
		found = candidate
	}
	if found == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingImplementation, signatureText(name, args))
	}
	return found, nil
}
