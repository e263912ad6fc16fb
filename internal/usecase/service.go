package usecase

import (
	"cinex-backend/internal/data/repository"
	"cinex-backend/pkg/mailer"

	"go.uber.org/zap"
)

type Service struct {
	Movie   MovieService
	Cinema  CinemaService
	Show    ShowService
	Booking BookingService
}

func NewService(repo *repository.Repository, m mailer.Mailer, log *zap.Logger) *Service {
	return &Service{
		Movie:   NewMovieService(repo, log),
		Cinema:  NewCinemaService(repo, log),
		Show:    NewShowService(repo, log),
		Booking: NewBookingService(repo, m, log),
	}
}
