// Package booking orchestrates the core booking flow: reference
// resolution, normalization of inbound payloads, pricing, persistence and
// the status workflow. It holds no state of its own; venues and bookings
// live in the external store and are re-read before every mutation.
package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookmyspot/internal/booking/capacity"
	"bookmyspot/internal/booking/pricing"
	"bookmyspot/internal/booking/resolver"
	"bookmyspot/internal/booking/workflow"
	"bookmyspot/internal/logger"
	"bookmyspot/internal/models"
	"bookmyspot/internal/status"
	"bookmyspot/internal/utils"
)

// DBLayer is the persistence surface the service consumes.
type DBLayer interface {
	resolver.VenueStore

	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBookingByRef(ctx context.Context, ref string) (*models.Booking, error)
	ListBookings(ctx context.Context) ([]models.Booking, error)
	UpdateBookingStatus(ctx context.Context, booking *models.Booking, expectedPrev models.BookingStatus) error
}

// DateHolds guards a venue's dates while a submission is in flight.
type DateHolds interface {
	HoldDates(venueID string, dates []string, bookingRef string) (bool, error)
	ReleaseDates(venueID string, dates []string, bookingRef string) error
}

// EventPublisher streams booking lifecycle events.
type EventPublisher interface {
	PublishBookingCreated(booking models.Booking) error
	PublishStatusChanged(booking models.Booking, from models.BookingStatus, actor models.Actor, reason string) error
}

// QRGenerator issues the confirmation code for a confirmed booking.
type QRGenerator interface {
	GenerateConfirmationQR(booking models.Booking) ([]byte, error)
}

type Service struct {
	DB       DBLayer
	Holds    DateHolds
	Events   EventPublisher
	QR       QRGenerator
	Log      *logger.Logger
	resolver *resolver.Resolver
}

func NewService(db DBLayer, holds DateHolds, events EventPublisher, qr QRGenerator, log *logger.Logger) *Service {
	return &Service{
		DB:       db,
		Holds:    holds,
		Events:   events,
		QR:       qr,
		Log:      log,
		resolver: resolver.New(db),
	}
}

// CreateRequest is a booking submission from the public form.
type CreateRequest struct {
	VenueRef   string          `json:"venue_ref"`
	Customer   models.Customer `json:"customer"`
	GuestCount int             `json:"guest_count"`
	StartDate  time.Time       `json:"start_date"`
	EndDate    time.Time       `json:"end_date"`

	AdditionalGuestUnitPrice *int64 `json:"additional_guest_unit_price,omitempty"`
	BaseGuestCount           *int   `json:"base_guest_count,omitempty"`
}

// LookupVenue resolves a venue reference of any identifier scheme. When
// every strategy misses, a temporary fallback venue is synthesized with the
// documented defaults so the booking form still renders, alongside the
// sampled alternatives.
func (s *Service) LookupVenue(ctx context.Context, rawRef string) (*models.Venue, []models.VenueSummary) {
	res := s.resolver.Resolve(ctx, rawRef)
	if res.Found() {
		return withPricingDefaults(res.Venue), nil
	}

	s.logInfo("RESOLVER", fmt.Sprintf("no venue matched %q, synthesizing fallback", rawRef))
	fallback := &models.Venue{
		ID:           utils.GenerateVenueID(),
		Name:         "Suggested Venue",
		Description:  "Details for this venue are being updated.",
		Price:        pricing.DefaultVenuePrice,
		CapacityText: "50-200 guests",
		ServiceFee:   3000,
		GSTPercent:   18,
		IsTemporary:  true,
	}
	return fallback, res.Alternatives
}

// QuotePrice computes a price breakdown for a draft without creating a
// booking.
func (s *Service) QuotePrice(ctx context.Context, req CreateRequest) (models.PriceBreakdown, error) {
	if err := pricing.ValidateDateRange(req.StartDate, req.EndDate); err != nil {
		return models.PriceBreakdown{}, err
	}
	venue, _ := s.LookupVenue(ctx, req.VenueRef)
	if err := pricing.ValidateGuestCount(req.GuestCount, *venue); err != nil {
		return models.PriceBreakdown{}, err
	}
	return pricing.ComputePrice(draftFromRequest(req), *venue), nil
}

// CreateBooking validates, prices and persists a submission. The requested
// dates are held in Redis for the duration of the write so two customers
// racing on the same dates cannot both land a pending booking.
func (s *Service) CreateBooking(ctx context.Context, req CreateRequest) (*models.Booking, error) {
	if err := pricing.ValidateDateRange(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}
	if req.GuestCount < 1 {
		req.GuestCount = 1
	}

	venue, _ := s.LookupVenue(ctx, req.VenueRef)
	if err := pricing.ValidateGuestCount(req.GuestCount, *venue); err != nil {
		return nil, err
	}

	breakdown := pricing.ComputePrice(draftFromRequest(req), *venue)

	now := time.Now().UTC()
	ref := utils.GenerateBookingRef()

	booking := &models.Booking{
		BookingRef: ref,
		Customer:   req.Customer,
		GuestCount: req.GuestCount,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Price:      breakdown,
		Status:     models.StatusPending,
		StatusHistory: []models.StatusChange{
			{Status: models.StatusPending, Actor: models.ActorCustomer, At: now},
		},
		CreatedAt: now,
	}

	dates := calendarDates(req.StartDate, req.EndDate)
	holdsTaken := false
	if !venue.IsTemporary {
		booking.VenueID = &venue.ID

		if s.Holds != nil {
			ok, err := s.Holds.HoldDates(venue.ID, dates, ref)
			if err != nil {
				return nil, fmt.Errorf("date hold error: %w", err)
			}
			if !ok {
				return nil, fmt.Errorf("requested dates are currently held for another booking")
			}
			holdsTaken = true
		}
	}

	if err := s.DB.CreateBooking(ctx, booking); err != nil {
		if holdsTaken {
			_ = s.Holds.ReleaseDates(venue.ID, dates, ref)
		}
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	if s.Events != nil {
		if err := s.Events.PublishBookingCreated(*booking); err != nil {
			s.logError("KAFKA", fmt.Sprintf("publish booking created %s: %v", ref, err))
		}
	}

	return booking, nil
}

func (s *Service) GetBooking(ctx context.Context, ref string) (*models.Booking, error) {
	return s.DB.GetBookingByRef(ctx, ref)
}

func (s *Service) ListBookings(ctx context.Context) ([]models.Booking, error) {
	return s.DB.ListBookings(ctx)
}

// TransitionStatus drives one lifecycle change as a compare-and-set: the
// booking is re-read, the transition validated against the fresh status,
// and the write applies only if the stored status still matches. A lost
// race is retried once against another fresh read before surfacing
// ErrConcurrentModification.
func (s *Service) TransitionStatus(ctx context.Context, ref string, to models.BookingStatus, actor models.Actor, reason string) (*models.Booking, error) {
	var lastErr error

	for attempt := 0; attempt < 2; attempt++ {
		booking, err := s.DB.GetBookingByRef(ctx, ref)
		if err != nil {
			return nil, err
		}

		prev := booking.Status
		if err := workflow.Apply(booking, to, actor, reason, time.Now()); err != nil {
			return nil, err
		}
		if booking.Status == prev {
			// Same-state no-op: nothing to write.
			return booking, nil
		}

		if booking.Status == models.StatusConfirmed && s.QR != nil {
			png, err := s.QR.GenerateConfirmationQR(*booking)
			if err != nil {
				s.logError("QR", fmt.Sprintf("confirmation QR for %s: %v", ref, err))
			} else {
				booking.ConfirmationQR = png
			}
		}

		err = s.DB.UpdateBookingStatus(ctx, booking, prev)
		if err == nil {
			if s.Events != nil {
				if pubErr := s.Events.PublishStatusChanged(*booking, prev, actor, reason); pubErr != nil {
					s.logError("KAFKA", fmt.Sprintf("publish status change %s: %v", ref, pubErr))
				}
			}
			return booking, nil
		}
		if !errors.Is(err, status.ErrConcurrentModification) {
			return nil, fmt.Errorf("failed to update booking %s: %w", ref, err)
		}

		s.logWarn("WORKFLOW", fmt.Sprintf("stale status on %s, retrying transition to %s", ref, to))
		lastErr = err
	}

	return nil, lastErr
}

// GuestCapacityFor reports the parsed capacity ceiling for a venue, for
// form validation.
func (s *Service) GuestCapacityFor(venue models.Venue) int {
	return capacity.ParseMax(venue.CapacityText)
}

func draftFromRequest(req CreateRequest) pricing.Draft {
	return pricing.Draft{
		GuestCount:               req.GuestCount,
		StartDate:                req.StartDate,
		EndDate:                  req.EndDate,
		AdditionalGuestUnitPrice: req.AdditionalGuestUnitPrice,
		BaseGuestCount:           req.BaseGuestCount,
	}
}

// withPricingDefaults fills the documented fallbacks on a stored venue
// before it reaches the calculator: zero price and fee/GST mean "unset".
func withPricingDefaults(venue *models.Venue) *models.Venue {
	if venue.Price == 0 {
		venue.Price = pricing.DefaultVenuePrice
	}
	if venue.ServiceFee == 0 {
		venue.ServiceFee = 3000
	}
	if venue.GSTPercent == 0 {
		venue.GSTPercent = 18
	}
	return venue
}

// calendarDates lists every inclusive calendar day of the range.
func calendarDates(start, end time.Time) []string {
	if end.Before(start) {
		end = start
	}
	dates := []string{}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format("2006-01-02"))
	}
	return dates
}

func (s *Service) logInfo(category, message string) {
	if s.Log != nil {
		s.Log.Info(category, message)
	}
}

func (s *Service) logWarn(category, message string) {
	if s.Log != nil {
		s.Log.Warn(category, message)
	}
}

func (s *Service) logError(category, message string) {
	if s.Log != nil {
		s.Log.Error(category, message)
	}
}
