package global

import (
	"fmt"
	"slices"
	"sync"

	"golang.org/x/xerrors"
)

// Registry is an ordered list of startup force hooks. Cells join a registry
// at construction via the [Eager] and [EagerInto] options; ForceAll warms
// them in that order, so a later cell's producer may read any earlier cell's
// value.
//
// The zero Registry is ready to use.
type Registry struct {
	mu    sync.Mutex
	hooks []hook
}

type hook struct {
	name  string
	force func() error
}

// NewRegistry returns an empty registry, independent of the default one used
// by [Eager] and [ForceAll].
func NewRegistry() *Registry {
	return &Registry{}
}

var defaultRegistry = NewRegistry()

// add appends a force hook. Called from cell constructors.
func (r *Registry) add(name string, force func() error) {
	r.mu.Lock()
	r.hooks = append(r.hooks, hook{name: name, force: force})
	r.mu.Unlock()
}

// ForceAll forces every registered cell in registration order, stopping at
// the first failure, which it returns wrapped with the cell's name (or its
// registration index when unnamed). Forcing an already-initialized cell is a
// no-op, so ForceAll is idempotent; a failed cell fails it identically every
// time. A forced producer that panics propagates the panic as usual.
//
// Cells registered while ForceAll runs are not forced by that call.
func (r *Registry) ForceAll() error {
	// Snapshot so a forced producer may construct further cells.
	r.mu.Lock()
	hooks := slices.Clone(r.hooks)
	r.mu.Unlock()

	for i, h := range hooks {
		if err := h.force(); err != nil {
			name := h.name
			if name == "" {
				name = fmt.Sprintf("#%d", i)
			}
			return xerrors.Errorf("global: force %s: %w", name, err)
		}
	}
	return nil
}

// ForceAll forces every cell constructed with [Eager], in registration order.
// Call it during process initialization, typically at the top of main, before
// the cells are first read.
func ForceAll() error {
	return defaultRegistry.ForceAll()
}
