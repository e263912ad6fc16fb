package wire

import (
	"cinex-backend/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCinema(r chi.Router, cinemaHandler *adaptor.CinemaHandler) {
	r.Route("/api/cinemas", func(r chi.Router) {
		r.Get("/", cinemaHandler.GetCinemas)
		r.Get("/{id}", cinemaHandler.GetCinemaByID)
	})
}
