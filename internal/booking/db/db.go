package db

import (
	"context"
	"database/sql"
	"errors"

	"bookmyspot/internal/models"
	"bookmyspot/internal/status"

	"github.com/uptrace/bun"
)

type DB struct {
	Bun *bun.DB
}

// ---------------- VENUES ----------------

// FindByCanonicalID fetches a venue by its primary key. A missing row is
// (nil, nil): resolution treats it as a strategy miss, not a failure.
func (d *DB) FindByCanonicalID(ctx context.Context, id string) (*models.Venue, error) {
	var venue models.Venue
	err := d.Bun.NewSelect().
		Model(&venue).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &venue, nil
}

// FindByLegacyNumericID fetches a venue by the numeric id it carried before
// the canonical id scheme.
func (d *DB) FindByLegacyNumericID(ctx context.Context, n int64) (*models.Venue, error) {
	var venue models.Venue
	err := d.Bun.NewSelect().
		Model(&venue).
		Where("legacy_id = ?", n).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &venue, nil
}

// FindByCategoryID returns the first venue marked suitable for the event
// category. Rows are scanned in primary-key order so the pick is stable for
// a given snapshot; the category filter runs in Go to stay portable across
// the postgres and sqlite dialects.
func (d *DB) FindByCategoryID(ctx context.Context, categoryID int64) (*models.Venue, error) {
	var venues []models.Venue
	err := d.Bun.NewSelect().
		Model(&venues).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	for i := range venues {
		if venues[i].HasCategory(categoryID) {
			return &venues[i], nil
		}
	}
	return nil, nil
}

// SampleAlternatives returns up to n venue summaries to suggest beside a
// "not found" result. Ordering is arbitrary but stable.
func (d *DB) SampleAlternatives(ctx context.Context, n int) ([]models.VenueSummary, error) {
	var venues []models.Venue
	err := d.Bun.NewSelect().
		Model(&venues).
		Order("id ASC").
		Limit(n).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	summaries := make([]models.VenueSummary, 0, len(venues))
	for i := range venues {
		summaries = append(summaries, venues[i].Summary())
	}
	return summaries, nil
}

// CreateVenue inserts a venue record.
func (d *DB) CreateVenue(ctx context.Context, venue *models.Venue) error {
	_, err := d.Bun.NewInsert().Model(venue).Exec(ctx)
	return err
}

// ---------------- BOOKINGS ----------------

// CreateBooking inserts a new booking record.
func (d *DB) CreateBooking(ctx context.Context, booking *models.Booking) error {
	_, err := d.Bun.NewInsert().Model(booking).Exec(ctx)
	return err
}

// GetBookingByRef fetches one booking by its reference.
func (d *DB) GetBookingByRef(ctx context.Context, ref string) (*models.Booking, error) {
	var booking models.Booking
	err := d.Bun.NewSelect().
		Model(&booking).
		Where("booking_ref = ?", ref).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, status.ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// ListBookings returns all bookings, most recent first.
func (d *DB) ListBookings(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	err := d.Bun.NewSelect().
		Model(&bookings).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// UpdateBookingStatus writes the booking's new status, history and QR as a
// compare-and-set against the status the transition was validated on. When
// the stored status no longer matches, no row is touched and
// ErrConcurrentModification is returned so the caller can re-read and
// retry.
func (d *DB) UpdateBookingStatus(ctx context.Context, booking *models.Booking, expectedPrev models.BookingStatus) error {
	res, err := d.Bun.NewUpdate().
		Model(booking).
		Column("status", "status_history", "confirmation_qr").
		Where("booking_ref = ?", booking.BookingRef).
		Where("status = ?", expectedPrev).
		Exec(ctx)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return status.ErrConcurrentModification
	}
	return nil
}
