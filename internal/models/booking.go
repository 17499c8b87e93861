package models

import (
	"time"

	"github.com/uptrace/bun"
)

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusRejected  BookingStatus = "rejected"
	StatusRefunded  BookingStatus = "refunded"
)

// Actor is the role requesting a booking lifecycle change. It is always
// passed in explicitly; the core never reads ambient session state.
type Actor string

const (
	ActorCustomer  Actor = "customer"
	ActorOrganizer Actor = "organizer"
	ActorAdmin     Actor = "admin"
)

type Customer struct {
	Name  string `bun:"name" json:"name"`
	Email string `bun:"email" json:"email"`
	Phone string `bun:"phone" json:"phone"`
}

// StatusChange is one append-only entry in a booking's status history.
type StatusChange struct {
	Status BookingStatus `json:"status"`
	Reason string        `json:"reason,omitempty"`
	Actor  Actor         `json:"actor"`
	At     time.Time     `json:"at"`
}

type Booking struct {
	bun.BaseModel `bun:"table:bookings"`

	BookingRef string  `bun:"booking_ref,pk" json:"booking_ref"`
	VenueID    *string `bun:"venue_id" json:"venue_id,omitempty"`
	EventID    *string `bun:"event_id" json:"event_id,omitempty"`

	Customer Customer `bun:"embed:customer_" json:"customer"`

	GuestCount int       `bun:"guest_count" json:"guest_count"`
	StartDate  time.Time `bun:"start_date" json:"start_date"`
	EndDate    time.Time `bun:"end_date" json:"end_date"`

	Price PriceBreakdown `bun:"embed:price_" json:"price"`

	Status        BookingStatus  `bun:"status" json:"status"`
	StatusHistory []StatusChange `bun:"status_history,type:jsonb" json:"status_history"`

	// ConfirmationQR holds the encrypted QR image issued when the booking
	// reaches confirmed.
	ConfirmationQR []byte `bun:"confirmation_qr" json:"confirmation_qr,omitempty"`

	CreatedAt time.Time `bun:"created_at" json:"created_at"`
}
