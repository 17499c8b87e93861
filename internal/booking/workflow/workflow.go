// Package workflow owns the booking lifecycle state machine. It operates on
// an in-memory Booking only; the compare-and-set against the authoritative
// store happens in the service layer, which re-reads and retries once on a
// stale status.
package workflow

import (
	"time"

	"bookmyspot/internal/models"
	"bookmyspot/internal/status"
)

type transition struct {
	from models.BookingStatus
	to   models.BookingStatus
}

type rule struct {
	actors         map[models.Actor]bool
	requiresReason bool
}

// rules is the full transition table. Anything absent is rejected.
var rules = map[transition]rule{
	{models.StatusPending, models.StatusConfirmed}: {
		actors: map[models.Actor]bool{models.ActorOrganizer: true, models.ActorAdmin: true},
	},
	{models.StatusPending, models.StatusRejected}: {
		actors:         map[models.Actor]bool{models.ActorOrganizer: true, models.ActorAdmin: true},
		requiresReason: true,
	},
	{models.StatusPending, models.StatusCancelled}: {
		actors: map[models.Actor]bool{models.ActorCustomer: true, models.ActorOrganizer: true, models.ActorAdmin: true},
	},
	{models.StatusConfirmed, models.StatusCancelled}: {
		actors: map[models.Actor]bool{models.ActorCustomer: true, models.ActorOrganizer: true, models.ActorAdmin: true},
	},
	{models.StatusCancelled, models.StatusRefunded}: {
		actors: map[models.Actor]bool{models.ActorAdmin: true},
	},
}

// CanTransition reports whether the actor may move a booking between the
// two states.
func CanTransition(from, to models.BookingStatus, actor models.Actor) bool {
	r, ok := rules[transition{from, to}]
	return ok && r.actors[actor]
}

// Apply validates and performs one status transition on the in-memory
// booking, appending a history entry. Requesting the booking's current
// status is an idempotent no-op: it succeeds without touching the history,
// so a double-submitted click never duplicates an entry. On any error the
// booking is left untouched.
func Apply(b *models.Booking, to models.BookingStatus, actor models.Actor, reason string, now time.Time) error {
	if b.Status == to {
		return nil
	}

	r, ok := rules[transition{b.Status, to}]
	if !ok || !r.actors[actor] {
		return status.ErrInvalidTransition
	}
	if r.requiresReason && reason == "" {
		return status.ErrReasonRequired
	}

	b.Status = to
	b.StatusHistory = append(b.StatusHistory, models.StatusChange{
		Status: to,
		Reason: reason,
		Actor:  actor,
		At:     now.UTC(),
	})
	return nil
}
