package wire

import (
	"cinex-backend/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireShow(r chi.Router, showHandler *adaptor.ShowHandler, bookingHandler *adaptor.BookingHandler) {
	r.Route("/api/shows", func(r chi.Router) {
		r.Post("/", showHandler.CreateShow)
		r.Get("/{id}", showHandler.GetShowByID)
		r.Put("/{id}", showHandler.UpdateShow)
		r.Delete("/{id}", showHandler.DeleteShow)

		// Availability query belongs to the booking coordinator
		r.Get("/{id}/booked-seats", bookingHandler.GetBookedSeats)
	})
}
