package global

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// ErrCell is a [Cell] for producers that can fail. The outcome of the single
// producer run, value or error, is recorded permanently: a failed cell
// returns the same error from every later call and never retries.
//
// An ErrCell must not be copied after first use.
type ErrCell[T any] struct {
	state atomic.Uint32
	mu    sync.Mutex

	producer func() (T, error)
	value    *T    // written before state becomes ready
	err      error // written before state becomes poisoned

	settings
}

// NewWithError returns a cell that computes its value by calling producer on
// first access. Like [New], construction runs nothing.
//
// NewWithError panics if producer is nil.
func NewWithError[T any](producer func() (T, error), opts ...Option) *ErrCell[T] {
	if producer == nil {
		panic("global: NewWithError with nil producer")
	}
	c := &ErrCell[T]{producer: producer}
	c.settings.apply(opts)
	c.settings.registerForce(c.Force)
	return c
}

// Get returns a pointer to the cell's value, running the producer if no call
// has run it yet. On success every call returns the same pointer. A producer
// error poisons the cell and is returned verbatim by this and every later
// call. A producer panic poisons the cell as for [Cell.Get]: the call that
// ran it re-panics, and later calls receive a [PoisonError] as the error.
func (c *ErrCell[T]) Get() (*T, error) {
	switch c.state.Load() {
	case stateReady:
		return c.value, nil
	case statePoisoned:
		return nil, c.err
	}
	return c.initialize()
}

func (c *ErrCell[T]) initialize() (*T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state.Load() {
	case stateReady:
		c.emit(EventDedup, "")
		return c.value, nil
	case statePoisoned:
		c.emit(EventDedup, "")
		return nil, c.err
	}

	c.state.Store(stateInitializing)
	defer func() {
		if r := recover(); r != nil {
			c.err = &PoisonError{Cell: c.name, Cause: r}
			c.state.Store(statePoisoned)
			c.emit(EventPoisoned, "")
			panic(r)
		}
	}()

	v, err := c.producer()
	c.producer = nil
	if err != nil {
		c.err = err
		c.state.Store(statePoisoned)
		c.emit(EventPoisoned, "")
		return nil, err
	}

	c.value = &v
	c.state.Store(stateReady)
	c.emit(EventReady, "")
	return c.value, nil
}

// MustGet is Get, panicking on error. It suits startup paths where an
// initialization failure is unrecoverable.
func (c *ErrCell[T]) MustGet() *T {
	v, err := c.Get()
	if err != nil {
		panic(err)
	}
	return v
}

// Force runs the producer if it has not run yet, discarding the value and
// reporting the error. See [Eager] and [ForceAll].
func (c *ErrCell[T]) Force() error {
	_, err := c.Get()
	return err
}

// Peek returns the value and true if the cell is ready, without forcing
// initialization. Before the first Get completes, and forever after a
// failure, it returns nil and false.
func (c *ErrCell[T]) Peek() (*T, bool) {
	if c.state.Load() == stateReady {
		return c.value, true
	}
	return nil, false
}

// String reports the cell's state, formatting the value when there is one.
// It never forces initialization.
func (c *ErrCell[T]) String() string {
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
