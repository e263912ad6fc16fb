package wire

import (
	"cinex-backend/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler) {
	r.Route("/api/bookings", func(r chi.Router) {
		// POST /api/bookings - reserve seats for a show
		r.Post("/", bookingHandler.CreateBooking)

		// PATCH /api/bookings/{id}/cancel - free the booking's seats
		r.Patch("/{id}/cancel", bookingHandler.CancelBooking)

		// GET /api/bookings/user/{userId} - booking history, newest first
		r.Get("/user/{userId}", bookingHandler.GetUserBookings)
	})
}
