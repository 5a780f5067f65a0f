package global

// Observer receives cell lifecycle events. Implementations must be safe for
// concurrent use; they run on the slow path of the cell that emits them and
// must not call back into that cell or group.
type Observer interface {
	On(eventData EventData)
}

// Event represents a cell lifecycle event type.
type Event int

const (
	// EventReady is emitted when a producer run completes and its value is
	// published.
	EventReady Event = iota
	// EventPoisoned is emitted when a producer run fails, by panicking or by
	// returning an error, and the cell is poisoned.
	EventPoisoned
	// EventDedup is emitted when a caller shares the outcome of an
	// initialization performed by a concurrent caller instead of triggering
	// its own producer run. Warm reads after publication emit nothing.
	EventDedup
)

// EventData carries the details of a cell event.
type EventData struct {
	Event Event
	// Cell is the name given with WithName, or "" for unnamed cells.
	Cell string
	// Key is the group key the event concerns, or "" for single cells.
	Key string
}
