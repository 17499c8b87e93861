// Package reporting produces operator-facing exports and aggregates over
// stored bookings.
package reporting

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"bookmyspot/internal/models"
)

var csvHeader = []string{
	"booking_ref",
	"venue_id",
	"customer_name",
	"customer_email",
	"customer_phone",
	"guest_count",
	"start_date",
	"end_date",
	"base_price",
	"additional_guest_charge",
	"service_fee",
	"gst_amount",
	"total_amount",
	"status",
	"created_at",
}

// WriteBookingsCSV writes one row per booking with the full price
// breakdown, suitable for spreadsheet import.
func WriteBookingsCSV(w io.Writer, bookings []models.Booking) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, b := range bookings {
		venueID := ""
		if b.VenueID != nil {
			venueID = *b.VenueID
		}
		row := []string{
			b.BookingRef,
			venueID,
			b.Customer.Name,
			b.Customer.Email,
			b.Customer.Phone,
			strconv.Itoa(b.GuestCount),
			b.StartDate.Format("2006-01-02"),
			b.EndDate.Format("2006-01-02"),
			strconv.FormatInt(b.Price.BasePrice, 10),
			strconv.FormatInt(b.Price.AdditionalGuestCharge, 10),
			strconv.FormatInt(b.Price.ServiceFee, 10),
			strconv.FormatInt(b.Price.GSTAmount, 10),
			strconv.FormatInt(b.Price.TotalAmount, 10),
			string(b.Status),
			b.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row for %s: %w", b.BookingRef, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// StatusBucket aggregates the bookings sharing one status.
type StatusBucket struct {
	Count   int   `json:"count"`
	Revenue int64 `json:"revenue"`
}

// Summary is the per-status rollup of the booking book.
type Summary struct {
	TotalBookings int                                   `json:"total_bookings"`
	TotalRevenue  int64                                 `json:"total_revenue"`
	ByStatus      map[models.BookingStatus]StatusBucket `json:"by_status"`
}

// Summarize rolls bookings up by status. Revenue counts confirmed and
// refunded bookings only; pending, cancelled and rejected bookings have
// not been paid out.
func Summarize(bookings []models.Booking) Summary {
	s := Summary{ByStatus: map[models.BookingStatus]StatusBucket{}}
	for _, b := range bookings {
		bucket := s.ByStatus[b.Status]
		bucket.Count++
		bucket.Revenue += b.Price.TotalAmount
		s.ByStatus[b.Status] = bucket

		s.TotalBookings++
		if b.Status == models.StatusConfirmed || b.Status == models.StatusRefunded {
			s.TotalRevenue += b.Price.TotalAmount
		}
	}
	return s
}
