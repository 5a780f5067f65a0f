package global

// Option configures a cell or group at construction.
type Option func(*settings)

// settings is the option-configurable state shared by Cell, ErrCell, and
// Group.
type settings struct {
	name     string
	observer Observer
	eager    []*Registry
}

func (s *settings) apply(opts []Option) {
	for _, opt := range opts {
		opt(s)
	}
}

// registerForce enrolls force with every registry requested via Eager or
// EagerInto, preserving option order.
func (s *settings) registerForce(force func() error) {
	for _, r := range s.eager {
		r.add(s.name, force)
	}
}

func (s *settings) emit(event Event, key string) {
	if s.observer == nil {
		return
	}
	s.observer.On(EventData{Event: event, Cell: s.name, Key: key})
}

// WithName names a cell for diagnostics: poison messages, ForceAll errors,
// and observer events carry it.
func WithName(name string) Option {
	return func(s *settings) {
		s.name = name
	}
}

// WithObserver attaches an Observer that receives ready, poisoned, and dedup
// events for the lifetime of the cell.
func WithObserver(o Observer) Option {
	return func(s *settings) {
		s.observer = o
	}
}

// Eager marks the cell for startup forcing: [ForceAll] will run its producer,
// in registration order. Registration order for package-level cells is their
// declaration/initialization order.
func Eager() Option {
	return func(s *settings) {
		s.eager = append(s.eager, defaultRegistry)
	}
}

// EagerInto is [Eager] targeting a specific Registry.
func EagerInto(r *Registry) Option {
	return func(s *settings) {
		s.eager = append(s.eager, r)
	}
}
