package agg

import "go.uber.org/zap"

// NewBuiltinRegistry returns a registry with every built-in aggregate
// registered.  Pass nil to disable logging.
func NewBuiltinRegistry(logger *zap.Logger) *Registry {
	r := NewRegistry(logger)
	for _, impl := range countImplementations() {
		r.Register(impl)
	}
	for _, impl := range sumImplementations() {
		r.Register(impl)
	}
	r.Register(avgImplementation())
	for _, impl := range logicalImplementations() {
		r.Register(impl)
	}
	r.Register(arbitraryImplementation())
	for _, impl := range minMaxByImplementations() {
		r.Register(impl)
	}
	r.Register(checksumImplementation())
	r.Register(approxDistinctImplementation())
	return r
}
