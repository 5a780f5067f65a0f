package global

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// Group is an unbounded family of lazily-initialized values, one per string
// key, sharing one producer. Each key follows the cell lifecycle on its own:
// the first Get for a key runs the producer exactly once, and the outcome,
// value or error, is permanent for the life of the process.
//
// Groups suit dynamic collections of globals: per-tenant configuration,
// compiled artifacts keyed by name, per-region connection settings.
type Group[T any] struct {
	producer func(key string) (T, error)

	flight singleflight.Group
	mu     sync.RWMutex
	done   map[string]*entry[T]

	settings
}

// entry is a key's terminal outcome. Exactly one of value and err is set.
type entry[T any] struct {
	value *T
	err   error
}

// NewGroup returns a group whose per-key values are computed by producer.
// Construction runs nothing; keys come into being on first Get.
//
// NewGroup panics if producer is nil. The [Eager] option has no effect on a
// group, since no keys exist at construction time.
func NewGroup[T any](producer func(key string) (T, error), opts ...Option) *Group[T] {
	if producer == nil {
		panic("global: NewGroup with nil producer")
	}
	g := &Group[T]{
		producer: producer,
		done:     make(map[string]*entry[T]),
	}
	g.settings.apply(opts)
	return g
}

// Get returns the value for key, running the producer at most once per key.
// Concurrent callers for the same key share a single producer run. The first
// outcome is sticky: a key whose producer returned an error returns that same
// error on every later call, and a key whose producer panicked is poisoned,
// returning a [PoisonError] later while the panic itself propagates through
// the callers that shared the failed run.
//
// A producer may Get other keys of the same group; a producer that Gets its
// own key deadlocks.
func (g *Group[T]) Get(key string) (*T, error) {
	// Fast path: the key reached a terminal state earlier.
	g.mu.RLock()
	e, ok := g.done[key]
	g.mu.RUnlock()
	if ok {
		return e.value, e.err
	}

	// Slow path: coalesce concurrent first access per key.
	ran := false
	v, _, shared := g.flight.Do(key, func() (any, error) {
		ran = true

		// Double-check: another caller may have stored while we queued.
		g.mu.RLock()
		e, ok := g.done[key]
		g.mu.RUnlock()
		if ok {
			return e, nil
		}

		defer func() {
			if r := recover(); r != nil {
				g.store(key, &entry[T]{err: &PoisonError{Cell: g.name, Key: key, Cause: r}})
				g.emit(EventPoisoned, key)
				panic(r)
			}
		}()

		val, err := g.producer(key)
		if err != nil {
			e := &entry[T]{err: err}
			g.store(key, e)
			g.emit(EventPoisoned, key)
			return e, nil
		}
		e = &entry[T]{value: &val}
		g.store(key, e)
		g.emit(EventReady, key)
		return e, nil
	})
	if shared && !ran {
		g.emit(EventDedup, key)
	}
	e = v.(*entry[T])
	return e.value, e.err
}

// Peek returns key's value and true if key is ready, without forcing it.
func (g *Group[T]) Peek(key string) (*T, bool) {
	g.mu.RLock()
	e, ok := g.done[key]
	g.mu.RUnlock()
	if !ok || e.err != nil {
		return nil, false
	}
	return e.value, true
}

func (g *Group[T]) store(key string, e *entry[T]) {
	g.mu.Lock()
	g.done[key] = e
	g.mu.Unlock()
}
