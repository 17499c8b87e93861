package db

import (
	"context"
	"log"

	"bookmyspot/internal/models"

	"github.com/uptrace/bun"
)

// Migrate creates the booking core tables when they do not exist yet. The
// golang-migrate runner owns versioned schema changes; this keeps fresh
// local environments bootable without migration files.
func Migrate(bunDB *bun.DB) {
	ctx := context.Background()

	if _, err := bunDB.NewCreateTable().
		Model((*models.Venue)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		log.Fatalf("failed to create venues table: %v", err)
	}

	if _, err := bunDB.NewCreateTable().
		Model((*models.Booking)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		log.Fatalf("failed to create bookings table: %v", err)
	}
}
