package redis

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis backs the hold store with miniredis so tests need no real
// Redis server.
func setupTestRedis(t *testing.T) (*Holds, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewHolds(client), mr
}

func TestHoldAndReleaseSingleDate(t *testing.T) {
	holds, _ := setupTestRedis(t)

	ok, err := holds.HoldDate("venue1", "2024-06-15", "bk_1")
	require.NoError(t, err)
	assert.True(t, ok)

	// Same date cannot be held by another booking.
	ok, err = holds.HoldDate("venue1", "2024-06-15", "bk_2")
	require.NoError(t, err)
	assert.False(t, ok)

	// A different venue is unaffected.
	ok, err = holds.HoldDate("venue2", "2024-06-15", "bk_2")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, holds.ReleaseDate("venue1", "2024-06-15", "bk_1"))
	ok, err = holds.HoldDate("venue1", "2024-06-15", "bk_2")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestReleaseOnlyByOwner(t *testing.T) {
	holds, _ := setupTestRedis(t)

	ok, err := holds.HoldDate("venue1", "2024-06-15", "bk_1")
	require.NoError(t, err)
	require.True(t, ok)

	// Releasing under a different ref leaves the hold in place.
	require.NoError(t, holds.ReleaseDate("venue1", "2024-06-15", "bk_other"))
	ok, err = holds.HoldDate("venue1", "2024-06-15", "bk_2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHoldDatesRollsBackOnConflict(t *testing.T) {
	holds, _ := setupTestRedis(t)

	ok, err := holds.HoldDate("venue1", "2024-06-16", "bk_existing")
	require.NoError(t, err)
	require.True(t, ok)

	dates := []string{"2024-06-15", "2024-06-16", "2024-06-17"}
	ok, err = holds.HoldDates("venue1", dates, "bk_new")
	require.NoError(t, err)
	assert.False(t, ok)

	// The first date must have been released again.
	ok, err = holds.HoldDate("venue1", "2024-06-15", "bk_probe")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestHoldDatesAllFree(t *testing.T) {
	holds, _ := setupTestRedis(t)

	dates := []string{"2024-06-15", "2024-06-16"}
	ok, err := holds.HoldDates("venue1", dates, "bk_1")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, holds.ReleaseDates("venue1", dates, "bk_1"))
	ok, err = holds.HoldDates("venue1", dates, "bk_2")
	require.NoError(t, err)
	assert.True(t, ok)
}
