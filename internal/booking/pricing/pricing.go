// Package pricing computes the deterministic price breakdown for a booking
// draft against a resolved venue. All money is whole currency units; the
// only rounding step is the GST computation, and the total is the exact sum
// of the already-rounded components.
package pricing

import (
	"math"
	"time"

	"bookmyspot/internal/booking/capacity"
	"bookmyspot/internal/models"
	"bookmyspot/internal/status"
)

// DefaultVenuePrice is the documented fallback a caller applies when a
// venue has no usable price. The calculator itself never guesses: a zero
// price is the caller's problem to resolve before calling ComputePrice.
const DefaultVenuePrice = 25000

// Draft is the pricing input for a booking not yet created. Both boundary
// dates are inclusive calendar days.
type Draft struct {
	GuestCount int       `json:"guest_count"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`

	// AdditionalGuestUnitPrice is the per-guest surcharge over the base
	// guest count; nil means the venue has no surcharge feature.
	AdditionalGuestUnitPrice *int64 `json:"additional_guest_unit_price,omitempty"`

	// BaseGuestCount is the number of guests covered by the base price;
	// nil defaults to 1.
	BaseGuestCount *int `json:"base_guest_count,omitempty"`
}

// ComputePrice derives the full breakdown. It is pure: identical inputs
// always produce an identical result.
func ComputePrice(draft Draft, venue models.Venue) models.PriceBreakdown {
	days := bookingDays(draft.StartDate, draft.EndDate)

	basePrice := venue.Price * int64(days)

	baseGuests := 1
	if draft.BaseGuestCount != nil && *draft.BaseGuestCount > 0 {
		baseGuests = *draft.BaseGuestCount
	}
	var unitPrice int64
	if draft.AdditionalGuestUnitPrice != nil && *draft.AdditionalGuestUnitPrice > 0 {
		unitPrice = *draft.AdditionalGuestUnitPrice
	}
	extraGuests := draft.GuestCount - baseGuests
	if extraGuests < 0 {
		extraGuests = 0
	}
	additionalGuestCharge := int64(extraGuests) * unitPrice

	serviceFee := venue.ServiceFee

	gstAmount := int64(math.Round(float64(basePrice+serviceFee) * venue.GSTPercent / 100))

	return models.PriceBreakdown{
		BasePrice:             basePrice,
		AdditionalGuestCharge: additionalGuestCharge,
		ServiceFee:            serviceFee,
		GSTAmount:             gstAmount,
		TotalAmount:           basePrice + additionalGuestCharge + serviceFee + gstAmount,
	}
}

// bookingDays counts calendar days with both boundaries inclusive; a
// same-day booking is one day. Partial days round up.
func bookingDays(start, end time.Time) int {
	diff := end.Sub(start)
	days := int(math.Ceil(diff.Hours()/24)) + 1
	if days < 1 {
		return 1
	}
	return days
}

// ValidateGuestCount enforces the venue's parsed capacity ceiling before
// pricing is attempted.
func ValidateGuestCount(count int, venue models.Venue) error {
	max := capacity.ParseMax(venue.CapacityText)
	if count > max {
		return &status.CapacityExceededError{Requested: count, Max: max}
	}
	return nil
}

// ValidateDateRange rejects ranges whose end precedes their start.
func ValidateDateRange(start, end time.Time) error {
	if end.Before(start) {
		return status.ErrInvalidRange
	}
	return nil
}
