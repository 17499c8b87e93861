package workflow_test

import (
	"testing"
	"time"

	"bookmyspot/internal/booking/workflow"
	"bookmyspot/internal/models"
	"bookmyspot/internal/status"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

func pendingBooking() *models.Booking {
	return &models.Booking{
		BookingRef: "bk_test",
		Status:     models.StatusPending,
		StatusHistory: []models.StatusChange{
			{Status: models.StatusPending, Actor: models.ActorCustomer, At: now},
		},
	}
}

func TestOrganizerConfirmsPending(t *testing.T) {
	b := pendingBooking()

	err := workflow.Apply(b, models.StatusConfirmed, models.ActorOrganizer, "", now)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, b.Status)
	require.Len(t, b.StatusHistory, 2)
	assert.Equal(t, models.StatusConfirmed, b.StatusHistory[1].Status)
	assert.Equal(t, models.ActorOrganizer, b.StatusHistory[1].Actor)
}

func TestCustomerCannotConfirm(t *testing.T) {
	b := pendingBooking()

	err := workflow.Apply(b, models.StatusConfirmed, models.ActorCustomer, "", now)
	assert.ErrorIs(t, err, status.ErrInvalidTransition)
	assert.Equal(t, models.StatusPending, b.Status)
	assert.Len(t, b.StatusHistory, 1)
}

func TestRejectionRequiresReason(t *testing.T) {
	b := pendingBooking()

	err := workflow.Apply(b, models.StatusRejected, models.ActorAdmin, "", now)
	assert.ErrorIs(t, err, status.ErrReasonRequired)
	assert.Equal(t, models.StatusPending, b.Status)

	err = workflow.Apply(b, models.StatusRejected, models.ActorAdmin, "venue unavailable", now)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, b.Status)
	assert.Equal(t, "venue unavailable", b.StatusHistory[1].Reason)
}

func TestCancelFromPendingAndConfirmed(t *testing.T) {
	for _, actor := range []models.Actor{models.ActorCustomer, models.ActorOrganizer, models.ActorAdmin} {
		b := pendingBooking()
		assert.NoError(t, workflow.Apply(b, models.StatusCancelled, actor, "", now))

		b = pendingBooking()
		require.NoError(t, workflow.Apply(b, models.StatusConfirmed, models.ActorAdmin, "", now))
		assert.NoError(t, workflow.Apply(b, models.StatusCancelled, actor, "changed plans", now))
	}
}

func TestOnlyAdminRefundsCancelled(t *testing.T) {
	b := pendingBooking()
	require.NoError(t, workflow.Apply(b, models.StatusCancelled, models.ActorCustomer, "", now))

	assert.ErrorIs(t, workflow.Apply(b, models.StatusRefunded, models.ActorCustomer, "", now), status.ErrInvalidTransition)
	assert.ErrorIs(t, workflow.Apply(b, models.StatusRefunded, models.ActorOrganizer, "", now), status.ErrInvalidTransition)

	require.NoError(t, workflow.Apply(b, models.StatusRefunded, models.ActorAdmin, "", now))
	assert.Equal(t, models.StatusRefunded, b.Status)
}

// Re-requesting the current status succeeds without a new history entry.
func TestSameStateTransitionIsNoOp(t *testing.T) {
	b := pendingBooking()
	require.NoError(t, workflow.Apply(b, models.StatusConfirmed, models.ActorOrganizer, "", now))
	historyLen := len(b.StatusHistory)

	err := workflow.Apply(b, models.StatusConfirmed, models.ActorOrganizer, "", now)
	assert.NoError(t, err)
	assert.Len(t, b.StatusHistory, historyLen)
}

func TestRejectedIsTerminal(t *testing.T) {
	b := pendingBooking()
	require.NoError(t, workflow.Apply(b, models.StatusRejected, models.ActorAdmin, "double booked", now))

	err := workflow.Apply(b, models.StatusConfirmed, models.ActorAdmin, "", now)
	assert.ErrorIs(t, err, status.ErrInvalidTransition)
	assert.Equal(t, models.StatusRejected, b.Status)
}

// Exhaustively walk every (from, to, actor) combination: anything outside
// the table must be rejected and must not touch state or history.
func TestTransitionTableClosure(t *testing.T) {
	statuses := []models.BookingStatus{
		models.StatusPending, models.StatusConfirmed, models.StatusCancelled,
		models.StatusRejected, models.StatusRefunded,
	}
	actors := []models.Actor{models.ActorCustomer, models.ActorOrganizer, models.ActorAdmin}

	for _, from := range statuses {
		for _, to := range statuses {
			for _, actor := range actors {
				b := pendingBooking()
				b.Status = from
				before := len(b.StatusHistory)

				reason := "table walk"
				err := workflow.Apply(b, to, actor, reason, now)

				if from == to {
					assert.NoError(t, err)
					assert.Len(t, b.StatusHistory, before)
					continue
				}
				if workflow.CanTransition(from, to, actor) {
					assert.NoError(t, err, "%s -> %s by %s", from, to, actor)
					assert.Equal(t, to, b.Status)
					assert.Len(t, b.StatusHistory, before+1)
				} else {
					assert.Error(t, err, "%s -> %s by %s", from, to, actor)
					assert.Equal(t, from, b.Status)
					assert.Len(t, b.StatusHistory, before)
				}
			}
		}
	}
}
