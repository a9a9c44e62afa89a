package valueobject

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across the domain.
var (
	// ErrNotFound marks lookups for aggregates that do not exist.
	ErrNotFound = errors.New("not found")

	// ErrBusy marks mutations that could not acquire the per-aggregate lock
	// within the configured bound. Safe to retry with backoff.
	ErrBusy = errors.New("resource busy")

	// ErrVersionConflict marks writes that lost an optimistic-locking race.
	// Safe to retry after re-reading current state.
	ErrVersionConflict = errors.New("version conflict")
)

// InvalidTransitionError reports a state-machine event that is not legal from
// the aggregate's current status. Deterministic: never retried automatically.
type InvalidTransitionError struct {
	From  string
	Event string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition: cannot %s a loan in status %s", e.Event, e.From)
}

// NewInvalidTransition builds an InvalidTransitionError for the given status
// and attempted event.
func NewInvalidTransition(from LoanStatus, event string) error {
	return &InvalidTransitionError{From: from.String(), Event: event}
}

// ValidationError reports malformed input identifying the offending field.
// Deterministic: never retried automatically.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for the given field.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsRetryable reports whether err belongs to the retry-safe part of the error
// taxonomy (lock contention and optimistic-locking conflicts). Validation and
// transition failures are deterministic and excluded.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrBusy) || errors.Is(err, ErrVersionConflict)
}
