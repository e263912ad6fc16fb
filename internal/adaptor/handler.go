package adaptor

import (
	"errors"
	"net/http"

	"cinex-backend/internal/data/repository"
	"cinex-backend/internal/usecase"
	"cinex-backend/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Movie   *MovieHandler
	Cinema  *CinemaHandler
	Show    *ShowHandler
	Booking *BookingHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Movie:   NewMovieHandler(service.Movie, log),
		Cinema:  NewCinemaHandler(service.Cinema, log),
		Show:    NewShowHandler(service.Show, log),
		Booking: NewBookingHandler(service.Booking, log),
	}
}

// writeServiceError maps service errors onto HTTP responses via the
// sentinel and typed errors of the repository and service layers.
// Anything unrecognized is a storage or internal failure and stays 500.
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var conflict *repository.SeatConflictError

	switch {
	case errors.As(err, &conflict):
		log.Warn(operation+" failed - seat conflict",
			zap.Error(err),
			zap.Strings("seats", conflict.Seats))
		utils.ResponseConflict(w, err.Error(), map[string]any{"conflicting_seats": conflict.Seats})

	case errors.Is(err, repository.ErrAlreadyCancelled):
		log.Warn(operation+" failed - already cancelled", zap.Error(err))
		utils.ResponseConflict(w, err.Error(), nil)

	case errors.Is(err, repository.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrInvalidInput):
		log.Warn(operation+" failed - bad input", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
