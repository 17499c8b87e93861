package models

import (
	"time"

	"github.com/uptrace/bun"
)

// CancellationPolicy describes the refund windows attached to a venue.
type CancellationPolicy struct {
	FullRefundDays       int `json:"full_refund_days"`
	PartialRefundDays    int `json:"partial_refund_days"`
	PartialRefundPercent int `json:"partial_refund_percent"`
}

type Venue struct {
	bun.BaseModel `bun:"table:venues"`

	ID          string `bun:"id,pk" json:"id"`
	LegacyID    int64  `bun:"legacy_id" json:"legacy_id,omitempty"`
	Name        string `bun:"name,notnull" json:"name"`
	Description string `bun:"description" json:"description"`
	Location    string `bun:"location" json:"location"`

	// Price is the base price per booking-day in whole currency units.
	// 0 means "unset" and is replaced with a default before pricing.
	Price int64 `bun:"price" json:"price"`

	CapacityText string `bun:"capacity_text" json:"capacity_text"`
	CapacityMax  *int   `bun:"capacity_max" json:"capacity_max,omitempty"`

	Amenities  []string `bun:"amenities,array" json:"amenities"`
	Inclusions []string `bun:"inclusions,array" json:"inclusions"`
	Exclusions []string `bun:"exclusions,array" json:"exclusions"`

	ServiceFee int64   `bun:"service_fee" json:"service_fee"`
	GSTPercent float64 `bun:"gst_percent" json:"gst_percent"`

	SuitableEventCategoryIDs []int64 `bun:"suitable_category_ids,array" json:"suitable_event_category_ids"`

	CancellationPolicy CancellationPolicy `bun:"cancellation_policy,type:jsonb" json:"cancellation_policy"`

	// IsTemporary marks a venue synthesized as a fallback when resolution
	// failed; it never exists in the store.
	IsTemporary bool `bun:"-" json:"is_temporary,omitempty"`

	CreatedAt time.Time `bun:"created_at" json:"created_at"`
}

// VenueSummary is the slim shape returned as a "not found" alternative.
type VenueSummary struct {
	ID       string `bun:"id" json:"id"`
	Name     string `bun:"name" json:"name"`
	Location string `bun:"location" json:"location"`
	Price    int64  `bun:"price" json:"price"`
}

// HasCategory reports whether the venue is marked suitable for the category.
func (v *Venue) HasCategory(categoryID int64) bool {
	for _, id := range v.SuitableEventCategoryIDs {
		if id == categoryID {
			return true
		}
	}
	return false
}

// Summary projects the venue into its summary shape.
func (v *Venue) Summary() VenueSummary {
	return VenueSummary{
		ID:       v.ID,
		Name:     v.Name,
		Location: v.Location,
		Price:    v.Price,
	}
}
