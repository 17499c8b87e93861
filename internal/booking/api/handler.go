package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"bookmyspot/internal/auth"
	"bookmyspot/internal/booking"
	"bookmyspot/internal/booking/normalize"
	"bookmyspot/internal/models"
	"bookmyspot/internal/reporting"
	"bookmyspot/internal/status"
	"bookmyspot/internal/utils"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	BookingService *booking.Service
}

func writeJSON(w http.ResponseWriter, code int, body utils.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}

// statusCodeFor maps domain errors onto HTTP status codes.
func statusCodeFor(err error) int {
	var capErr *status.CapacityExceededError
	switch {
	case errors.Is(err, status.ErrBookingNotFound):
		return http.StatusNotFound
	case errors.Is(err, status.ErrConcurrentModification):
		return http.StatusConflict
	case errors.Is(err, status.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, status.ErrInvalidRange),
		errors.Is(err, status.ErrReasonRequired),
		errors.As(err, &capErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// GetVenue resolves a venue reference in any of the supported identifier
// schemes. A miss still returns 200 with a temporary suggested venue and
// up to three alternatives, so the booking form always has something to
// render.
func (h *Handler) GetVenue(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "venueRef")

	venue, alternatives := h.BookingService.LookupVenue(r.Context(), ref)

	data := map[string]interface{}{
		"venue":        venue,
		"capacity_max": h.BookingService.GuestCapacityFor(*venue),
	}
	if venue.IsTemporary {
		data["alternatives"] = alternatives
	}
	writeJSON(w, http.StatusOK, utils.SuccessResponse("venue resolved", data))
}

func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req booking.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid request body", err.Error()))
		return
	}

	created, err := h.BookingService.CreateBooking(r.Context(), req)
	if err != nil {
		writeJSON(w, statusCodeFor(err), utils.ErrorResponse("could not create booking", err.Error()))
		return
	}

	writeJSON(w, http.StatusCreated, utils.SuccessResponse("booking created", created))
}

// QuotePrice prices a draft submission without persisting anything.
func (h *Handler) QuotePrice(w http.ResponseWriter, r *http.Request) {
	var req booking.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid request body", err.Error()))
		return
	}

	breakdown, err := h.BookingService.QuotePrice(r.Context(), req)
	if err != nil {
		writeJSON(w, statusCodeFor(err), utils.ErrorResponse("could not quote price", err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, utils.SuccessResponse("price quoted", breakdown))
}

func (h *Handler) GetBooking(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "bookingRef")

	b, err := h.BookingService.GetBooking(r.Context(), ref)
	if err != nil {
		writeJSON(w, statusCodeFor(err), utils.ErrorResponse("booking not found", err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, utils.SuccessResponse("booking fetched", b))
}

func (h *Handler) ListBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.BookingService.ListBookings(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, utils.ErrorResponse("could not list bookings", err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, utils.SuccessResponse("bookings fetched", bookings))
}

// UpdateStatus drives one lifecycle transition. The acting role comes from
// the verified token, never from the request body.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "bookingRef")

	var req struct {
		Status models.BookingStatus `json:"status"`
		Reason string               `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid request body", err.Error()))
		return
	}

	actor := auth.ActorFromContext(r.Context())
	updated, err := h.BookingService.TransitionStatus(r.Context(), ref, req.Status, actor, req.Reason)
	if err != nil {
		writeJSON(w, statusCodeFor(err), utils.ErrorResponse("could not update booking status", err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, utils.SuccessResponse("booking status updated", updated))
}

// NormalizeRecord cleans one raw record from a legacy feed into the
// canonical shape. Kind comes from the query string and defaults to
// booking.
func (h *Handler) NormalizeRecord(w http.ResponseWriter, r *http.Request) {
	kind := normalize.Kind(r.URL.Query().Get("kind"))
	switch kind {
	case normalize.KindBooking, normalize.KindVenue, normalize.KindUser:
	case "":
		kind = normalize.KindBooking
	default:
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("unknown record kind", string(kind)))
		return
	}

	var raw map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid request body", err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, utils.SuccessResponse("record normalized", normalize.Normalize(raw, kind)))
}

// ExportBookingsCSV streams every booking as a CSV report.
func (h *Handler) ExportBookingsCSV(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.BookingService.ListBookings(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, utils.ErrorResponse("could not list bookings", err.Error()))
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="bookings.csv"`)
	if err := reporting.WriteBookingsCSV(w, bookings); err != nil {
		http.Error(w, "failed to write CSV: "+err.Error(), http.StatusInternalServerError)
	}
}

// BookingSummary reports booking counts and revenue grouped by status.
func (h *Handler) BookingSummary(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.BookingService.ListBookings(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, utils.ErrorResponse("could not list bookings", err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, utils.SuccessResponse("booking summary", reporting.Summarize(bookings)))
}
