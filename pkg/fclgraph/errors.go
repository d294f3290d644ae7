package fclgraph

import (
	"errors"
	"fmt"
)

// Sentinel errors for graph building and emission.
var (
	// ErrMissingLocation indicates an event on a graph edge has no business
	// location, so no station-to-station delivery can be formed.
	ErrMissingLocation = errors.New("event has no business location")

	// ErrUnknownPredecessor indicates a tracking extension references an
	// event id that does not exist in the document.
	ErrUnknownPredecessor = errors.New("tracking reference to unknown event")
)

// EventError wraps an error with the id of the event being processed.
type EventError struct {
	// EventID is the identifier of the event that failed.
	EventID string
	// Op is the operation that failed ("link", "emit").
	Op string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *EventError) Error() string {
	return fmt.Sprintf("event %s: %s: %v", e.EventID, e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *EventError) Unwrap() error {
	return e.Err
}
