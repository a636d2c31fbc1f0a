// Package pool provides typed object pooling for the command line parser.
package pool

import "sync"

// Pool is a type-safe wrapper around sync.Pool.
type Pool[T any] struct {
	pool  sync.Pool
	reset func(*T) // called before an object is handed out again
}

// NewPool creates a pool that builds new objects with factory.
func NewPool[T any](factory func() *T) *Pool[T] {
	return &Pool[T]{
		pool: sync.Pool{
			New: func() any {
				return factory()
			},
		},
	}
}

// NewPoolWithReset creates a pool with a reset function called before reuse
func NewPoolWithReset[T any](factory func() *T, reset func(*T)) *Pool[T] {
	p := NewPool(factory)
	p.reset = reset
	return p
}

// Get retrieves an object from the pool or creates a new one
func (p *Pool[T]) Get() *T {
	obj := p.pool.Get().(*T)
	if p.reset != nil {
		p.reset(obj)
	}
	return obj
}

// Put returns an object to the pool for reuse. Nil is ignored.
func (p *Pool[T]) Put(obj *T) {
	if obj == nil {
		return
	}
	p.pool.Put(obj)
}

// maxRetainedCap bounds slices kept by the shared string slice pool.
const maxRetainedCap = 256

var stringSlices = NewPoolWithReset(
	func() *[]string {
		s := make([]string, 0, 8)
		return &s
	},
	func(s *[]string) { *s = (*s)[:0] },
)

// GetStringSlice returns an empty slice from the shared pool.
func GetStringSlice() *[]string {
	return stringSlices.Get()
}

// PutStringSlice returns a slice to the shared pool. Oversized slices are
// dropped.
func PutStringSlice(s *[]string) {
	if s == nil || cap(*s) > maxRetainedCap {
		return
	}
	clear(*s)
	stringSlices.Put(s)
}
