package metric

import "sync/atomic"

// Registry is the central metrics facade handed to the performance monitor,
// the animation engine's per-pattern error counters, and the debug
// overlay's renderer. Callers cache pointers once at construction time and
// write directly to the atomics afterward.
type Registry struct {
	Ints   *Map[atomic.Int64]
	Floats *Map[Float]
}

// NewRegistry creates an initialized Registry.
func NewRegistry() *Registry {
	return &Registry{
		Ints:   NewMap[atomic.Int64](),
		Floats: NewMap[Float](),
	}
}
