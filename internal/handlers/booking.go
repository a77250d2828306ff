package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"kzone-booking-backend/internal/booking"
	"kzone-booking-backend/internal/catalog"
	"kzone-booking-backend/internal/middleware"
	"kzone-booking-backend/internal/services"
)

// BookingHandler validates and records bookings against the session's
// in-memory history
type BookingHandler struct {
	catalog  *catalog.Catalog
	notifier *services.Notifier
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(cat *catalog.Catalog, notifier *services.Notifier) *BookingHandler {
	return &BookingHandler{catalog: cat, notifier: notifier}
}

// BookingRequest is the booking form payload. Guests arrives as the raw
// form string so the validator owns its parsing.
type BookingRequest struct {
	ExperienceID int    `json:"experience_id"`
	Date         string `json:"date"`
	Guests       string `json:"guests"`
}

// CreateBooking handles POST /api/v1/bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())
	snap := sess.Snapshot()
	if !snap.Authenticated {
		respondError(w, "No active session", http.StatusUnauthorized)
		return
	}

	var req BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	exp, guests, vErr := booking.Validate(h.catalog, req.ExperienceID, req.Date, req.Guests)
	if vErr != nil {
		respondError(w, vErr.Message, http.StatusBadRequest)
		return
	}

	b := booking.New(exp, req.Date, guests)
	if err := sess.AddBooking(b); err != nil {
		respondError(w, "No active session", http.StatusUnauthorized)
		return
	}

	go h.notifier.BookingConfirmed(snap.User, b)

	log.Info().
		Str("booking_id", b.ID).
		Str("uid", snap.User.UID).
		Int("experience_id", exp.ID).
		Int("guests", guests).
		Float64("total_price", b.TotalPrice).
		Msg("Booking confirmed")
	respondJSON(w, b, http.StatusCreated)
}

// ListBookings handles GET /api/v1/bookings
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())
	snap := sess.Snapshot()
	if !snap.Authenticated {
		respondError(w, "No active session", http.StatusUnauthorized)
		return
	}
	respondJSON(w, sess.History(), http.StatusOK)
}
