package models

// PriceBreakdown is the immutable pricing result for a booking. All amounts
// are whole currency units. TotalAmount is always the exact sum of the four
// components; rounding happens once when GST is computed.
type PriceBreakdown struct {
	BasePrice             int64 `bun:"base_price" json:"base_price"`
	AdditionalGuestCharge int64 `bun:"additional_guest_charge" json:"additional_guest_charge"`
	ServiceFee            int64 `bun:"service_fee" json:"service_fee"`
	GSTAmount             int64 `bun:"gst_amount" json:"gst_amount"`
	TotalAmount           int64 `bun:"total_amount" json:"total_amount"`
}
