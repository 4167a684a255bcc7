package event

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedEvent marks an event with a missing or invalid field, or an
	// input document that does not decode to a list of events.
	ErrMalformedEvent = errors.New("malformed event")

	// ErrMalformedOutcome marks a doc outcome that is not "passed/total".
	ErrMalformedOutcome = errors.New("malformed outcome")
)

// Error locates a failure at a specific event in the batch.
// It unwraps to ErrMalformedEvent or ErrMalformedOutcome.
type Error struct {
	Index int    // zero-based position in the batch
	Field string // wire key, empty when the whole record is at fault
	Err   error
}

func (e *Error) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("event %d: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("event %d: %s: %v", e.Index, e.Field, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
