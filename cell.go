package global

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Cell states. Transitions are forward-only:
// uninitialized → initializing → ready | poisoned.
const (
	stateUninitialized uint32 = iota
	stateInitializing
	stateReady
	statePoisoned
)

// Cell is a container for a single lazily-computed value of type T.
// Construction stores only the producer; the value is computed by the first
// Get or Force and lives until process exit. The zero Cell is not usable,
// construct with [New] or [NewZero].
//
// A Cell must not be copied after first use.
type Cell[T any] struct {
	state atomic.Uint32 // one of the state* constants
	mu    sync.Mutex    // serializes the single producer run

	producer func() T // cleared once it has run
	value    *T       // written before state becomes ready
	cause    any      // recovered panic value, written before state becomes poisoned

	settings
}

// New returns a cell that computes its value by calling producer on first
// access. Construction is O(1): the producer does not run and no value memory
// is allocated until the first Get or Force.
//
// New panics if producer is nil.
func New[T any](producer func() T, opts ...Option) *Cell[T] {
	if producer == nil {
		panic("global: New with nil producer")
	}
	c := &Cell[T]{producer: producer}
	c.settings.apply(opts)
	c.settings.registerForce(func() error {
		c.Force()
		return nil
	})
	return c
}

// NewZero returns a cell whose producer yields the zero value of T, for types
// whose zero value is the intended value and only the shared allocation
// matters.
func NewZero[T any](opts ...Option) *Cell[T] {
	return New(func() (zero T) { return zero }, opts...)
}

// Get returns a pointer to the cell's value, running the producer if no call
// has run it yet. Every call returns the same pointer, and by the time Get
// returns, everything the producer wrote is visible to the calling goroutine.
// Callers must treat the pointee as read-only.
//
// Concurrent first calls block until the one producer run finishes. If the
// producer panics, the call that ran it re-panics with the original value and
// the cell is poisoned: every other call, then and later, panics with a
// [PoisonError]. A producer that calls Get on its own cell deadlocks.
func (c *Cell[T]) Get() *T {
	switch c.state.Load() {
	case stateReady:
		return c.value
	case statePoisoned:
		panic(&PoisonError{Cell: c.name, Cause: c.cause})
	}
	return c.initialize()
}

// initialize is the slow path: first access, or access racing a first access.
func (c *Cell[T]) initialize() *T {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Another goroutine may have reached a terminal state while we waited.
	switch c.state.Load() {
	case stateReady:
		c.emit(EventDedup, "")
		return c.value
	case statePoisoned:
		c.emit(EventDedup, "")
		panic(&PoisonError{Cell: c.name, Cause: c.cause})
	}

	c.state.Store(stateInitializing)
	defer func() {
		if r := recover(); r != nil {
			c.cause = r
			c.state.Store(statePoisoned)
			c.emit(EventPoisoned, "")
			panic(r)
		}
	}()

	v := c.producer()
	c.value = &v
	c.producer = nil // release the producer and anything it captured

	// The store below publishes the value: a Get that observes stateReady is
	// ordered after the c.value write above.
	c.state.Store(stateReady)
	c.emit(EventReady, "")
	return c.value
}

// Force runs the producer if it has not run yet and discards the result,
// warming the cell ahead of its first real use. See [Eager] and [ForceAll].
func (c *Cell[T]) Force() {
	c.Get()
}

// Peek returns the value and true if the cell is ready, without forcing
// initialization. Before the first Get completes, and forever after a
// poisoning, it returns nil and false.
func (c *Cell[T]) Peek() (*T, bool) {
	if c.state.Load() == stateReady {
		return c.value, true
	}
	return nil, false
}

// String reports the cell's state, formatting the value when there is one.
// It never forces initialization.
func (c *Cell[T]) String() string {
	switch c.state.Load() {
	case stateReady:
		return fmt.Sprintf("%v", *c.value)
	case statePoisoned:
		return "<poisoned>"
	case stateInitializing:
		return "<initializing>"
	default:
		return "<uninitialized>"
	}
}
