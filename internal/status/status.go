package status

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRange signals an end date before the start date.
	ErrInvalidRange = errors.New("booking: end date precedes start date")

	// ErrInvalidTransition signals a status change not permitted from the
	// booking's current state for the requesting actor.
	ErrInvalidTransition = errors.New("booking: status transition not allowed")

	// ErrReasonRequired signals a transition that demands a reason (for
	// example a rejection) requested without one.
	ErrReasonRequired = errors.New("booking: a reason is required for this transition")

	// ErrConcurrentModification signals a compare-and-set mismatch: the
	// booking's stored status no longer matches the status the transition
	// was validated against.
	ErrConcurrentModification = errors.New("booking: status changed concurrently, please retry")

	// ErrBookingNotFound signals a booking ref with no stored record.
	ErrBookingNotFound = errors.New("booking: not found")
)

// CapacityExceededError is returned when a requested guest count exceeds the
// venue's parsed capacity ceiling. Max carries the ceiling so callers can
// clamp and re-prompt.
type CapacityExceededError struct {
	Requested int
	Max       int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("booking: guest count %d exceeds venue capacity %d", e.Requested, e.Max)
}
