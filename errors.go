package global

import "fmt"

// PoisonError reports access to a cell whose producer failed. The goroutine
// whose call ran the failing producer sees the original panic or error;
// everyone else, then and on every later access, receives a PoisonError
// wrapping the original cause.
type PoisonError struct {
	// Cell is the name given with WithName, or "" for unnamed cells.
	Cell string
	// Key is the group key that was poisoned, or "" for single cells.
	Key string
	// Cause is the value the producer panicked with, or the error it
	// returned.
	Cause any
}

func (e *PoisonError) Error() string {
	target := e.Cell
	if target == "" {
		target = "cell"
	}
	if e.Key != "" {
		target += "[" + e.Key + "]"
	}
	return fmt.Sprintf("global: %s is poisoned: %v", target, e.Cause)
}

// Unwrap returns the cause when the poisoning cause was an error, so
// errors.Is and errors.As reach through.
func (e *PoisonError) Unwrap() error {
	if err, ok := e.Cause.(error); ok {
		return err
	}
	return nil
}
