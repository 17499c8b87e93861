// Package redis holds a venue's requested dates while a booking submission
// is being priced and persisted, so two customers racing on the same dates
// don't both reach the store. Holds are advisory and expire on their own;
// the booking record remains the source of truth.
package redis

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

type Holds struct {
	Client *redis.Client
	Logger *log.Logger
}

func NewHolds(client *redis.Client) *Holds {
	return &Holds{
		Client: client,
		Logger: log.Default(),
	}
}

// holdDuration reads the hold TTL from the environment, defaulting to 15
// minutes.
func (h *Holds) holdDuration() time.Duration {
	defaultDuration := 15 * time.Minute

	ttlStr := os.Getenv("BOOKING_HOLD_TTL_MINUTES")
	if ttlStr == "" {
		return defaultDuration
	}
	ttlMin, err := strconv.Atoi(ttlStr)
	if err != nil || ttlMin <= 0 {
		h.Logger.Println("REDIS: invalid BOOKING_HOLD_TTL_MINUTES value '" + ttlStr + "', using default 15 minutes")
		return defaultDuration
	}
	return time.Duration(ttlMin) * time.Minute
}

func holdKey(venueID, date string) string {
	return fmt.Sprintf("booking_hold:%s:%s", venueID, date)
}

// HoldDate places a hold on one venue date, owned by the booking ref.
func (h *Holds) HoldDate(venueID, date, bookingRef string) (bool, error) {
	ok, err := h.Client.SetNX(context.Background(), holdKey(venueID, date), bookingRef, h.holdDuration()).Result()
	return ok, err
}

// ReleaseDate removes a hold, but only when this booking still owns it; a
// hold reacquired by someone else after expiry is left alone.
func (h *Holds) ReleaseDate(venueID, date, bookingRef string) error {
	ctx := context.Background()
	key := holdKey(venueID, date)
	val, err := h.Client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return err
	}
	if val == bookingRef {
		_, err := h.Client.Del(ctx, key).Result()
		return err
	}
	return nil
}

// HoldDates holds every date of the range atomically from the caller's
// point of view: if any date is already held, all holds taken so far are
// released and false is returned.
func (h *Holds) HoldDates(venueID string, dates []string, bookingRef string) (bool, error) {
	held := []string{}
	for _, date := range dates {
		ok, err := h.HoldDate(venueID, date, bookingRef)
		if err != nil {
			for _, d := range held {
				_ = h.ReleaseDate(venueID, d, bookingRef)
			}
			return false, err
		}
		if !ok {
			for _, d := range held {
				_ = h.ReleaseDate(venueID, d, bookingRef)
			}
			return false, nil
		}
		held = append(held, date)
	}
	return true, nil
}

// ReleaseDates releases every hold of the range, returning the first error
// encountered.
func (h *Holds) ReleaseDates(venueID string, dates []string, bookingRef string) error {
	var firstErr error
	for _, date := range dates {
		if err := h.ReleaseDate(venueID, date, bookingRef); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
