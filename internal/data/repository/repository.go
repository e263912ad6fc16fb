package repository

import (
	"cinex-backend/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User        UserRepository
	Movie       MovieRepository
	MovieGenre  MovieGenreRepository
	Cinema      CinemaRepository
	Show        ShowRepository
	Booking     BookingRepository
	BookingSeat BookingSeatRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:        NewUserRepository(db, log),
		Movie:       NewMovieRepository(db, log),
		MovieGenre:  NewMovieGenreRepository(db, log),
		Cinema:      NewCinemaRepository(db, log),
		Show:        NewShowRepository(db, log),
		Booking:     NewBookingRepository(db, log),
		BookingSeat: NewBookingSeatRepository(db, log),
	}
}
