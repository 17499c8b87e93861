package pricing_test

import (
	"testing"
	"time"

	"bookmyspot/internal/booking/pricing"
	"bookmyspot/internal/models"
	"bookmyspot/internal/status"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func intPtr(n int) *int       { return &n }
func int64Ptr(n int64) *int64 { return &n }

func TestComputePriceSingleDay(t *testing.T) {
	venue := models.Venue{Price: 25000, ServiceFee: 3000, GSTPercent: 18}
	draft := pricing.Draft{GuestCount: 2, StartDate: day("2024-06-15"), EndDate: day("2024-06-15")}

	got := pricing.ComputePrice(draft, venue)

	assert.Equal(t, int64(25000), got.BasePrice)
	assert.Equal(t, int64(0), got.AdditionalGuestCharge)
	assert.Equal(t, int64(3000), got.ServiceFee)
	assert.Equal(t, int64(5040), got.GSTAmount) // round(28000 * 0.18)
	assert.Equal(t, int64(33040), got.TotalAmount)
}

func TestComputePriceMultiDayInclusive(t *testing.T) {
	venue := models.Venue{Price: 10000, ServiceFee: 3000, GSTPercent: 18}
	draft := pricing.Draft{GuestCount: 10, StartDate: day("2024-06-15"), EndDate: day("2024-06-17")}

	got := pricing.ComputePrice(draft, venue)

	// Three inclusive days.
	assert.Equal(t, int64(30000), got.BasePrice)
	assert.Equal(t, int64(5940), got.GSTAmount) // round(33000 * 0.18)
	assert.Equal(t, int64(38940), got.TotalAmount)
}

func TestComputePriceInvertedRangeClampsToOneDay(t *testing.T) {
	venue := models.Venue{Price: 5000, ServiceFee: 3000, GSTPercent: 18}
	draft := pricing.Draft{GuestCount: 1, StartDate: day("2024-06-17"), EndDate: day("2024-06-15")}

	got := pricing.ComputePrice(draft, venue)
	assert.Equal(t, int64(5000), got.BasePrice)
}

func TestComputePriceAdditionalGuests(t *testing.T) {
	venue := models.Venue{Price: 20000, ServiceFee: 3000, GSTPercent: 18}
	draft := pricing.Draft{
		GuestCount:               120,
		StartDate:                day("2024-09-01"),
		EndDate:                  day("2024-09-01"),
		BaseGuestCount:           intPtr(100),
		AdditionalGuestUnitPrice: int64Ptr(150),
	}

	got := pricing.ComputePrice(draft, venue)
	assert.Equal(t, int64(20*150), got.AdditionalGuestCharge)
	assert.Equal(t, got.BasePrice+got.AdditionalGuestCharge+got.ServiceFee+got.GSTAmount, got.TotalAmount)
}

func TestComputePriceNoSurchargeDefaults(t *testing.T) {
	venue := models.Venue{Price: 20000, ServiceFee: 3000, GSTPercent: 18}
	draft := pricing.Draft{GuestCount: 500, StartDate: day("2024-09-01"), EndDate: day("2024-09-01")}

	// No unit price: guests over the base count cost nothing extra.
	got := pricing.ComputePrice(draft, venue)
	assert.Equal(t, int64(0), got.AdditionalGuestCharge)
}

// The total must be the exact sum of its already-rounded components, and
// the computation must be deterministic.
func TestComputePriceInvariantAndDeterminism(t *testing.T) {
	venues := []models.Venue{
		{Price: 25000, ServiceFee: 3000, GSTPercent: 18},
		{Price: 9999, ServiceFee: 3000, GSTPercent: 18},
		{Price: 12345, ServiceFee: 1500, GSTPercent: 12.5},
		{Price: 1, ServiceFee: 0, GSTPercent: 0},
	}
	drafts := []pricing.Draft{
		{GuestCount: 1, StartDate: day("2024-01-01"), EndDate: day("2024-01-01")},
		{GuestCount: 350, StartDate: day("2024-01-01"), EndDate: day("2024-01-07"), BaseGuestCount: intPtr(200), AdditionalGuestUnitPrice: int64Ptr(99)},
		{GuestCount: 80, StartDate: day("2024-03-10"), EndDate: day("2024-03-11")},
	}
	for _, venue := range venues {
		for _, draft := range drafts {
			first := pricing.ComputePrice(draft, venue)
			second := pricing.ComputePrice(draft, venue)
			assert.Equal(t, first, second)
			assert.Equal(t, first.BasePrice+first.AdditionalGuestCharge+first.ServiceFee+first.GSTAmount, first.TotalAmount)
			assert.GreaterOrEqual(t, first.BasePrice, int64(0))
			assert.GreaterOrEqual(t, first.GSTAmount, int64(0))
			assert.GreaterOrEqual(t, first.TotalAmount, int64(0))
		}
	}
}

func TestValidateGuestCount(t *testing.T) {
	venue := models.Venue{CapacityText: "50-200 guests"}

	assert.NoError(t, pricing.ValidateGuestCount(200, venue))

	err := pricing.ValidateGuestCount(201, venue)
	require.Error(t, err)
	var capErr *status.CapacityExceededError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, 200, capErr.Max)
	assert.Equal(t, 201, capErr.Requested)
}

func TestValidateGuestCountUnparsableCapacityUsesDefault(t *testing.T) {
	venue := models.Venue{CapacityText: "spacious"}
	assert.NoError(t, pricing.ValidateGuestCount(1000, venue))
	assert.Error(t, pricing.ValidateGuestCount(1001, venue))
}

func TestValidateDateRange(t *testing.T) {
	assert.NoError(t, pricing.ValidateDateRange(day("2024-06-15"), day("2024-06-15")))
	assert.NoError(t, pricing.ValidateDateRange(day("2024-06-15"), day("2024-06-20")))
	assert.ErrorIs(t, pricing.ValidateDateRange(day("2024-06-20"), day("2024-06-15")), status.ErrInvalidRange)
}
