package adaptor

import (
	"net/http"

	"cinex-backend/internal/usecase"
	"cinex-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CinemaHandler struct {
	service usecase.CinemaService
	log     *zap.Logger
}

func NewCinemaHandler(service usecase.CinemaService, log *zap.Logger) *CinemaHandler {
	return &CinemaHandler{
		service: service,
		log:     log.With(zap.String("handler", "cinema")),
	}
}

// GetCinemas handles GET /api/cinemas
func (h *CinemaHandler) GetCinemas(w http.ResponseWriter, r *http.Request) {
	cinemas, err := h.service.GetCinemas(r.Context())
	if err != nil {
		writeServiceError(w, h.log, err, "get cinemas")
		return
	}

	utils.ResponseSuccess(w, "success", cinemas)
}

// GetCinemaByID handles GET /api/cinemas/{id}
func (h *CinemaHandler) GetCinemaByID(w http.ResponseWriter, r *http.Request) {
	cinemaID := chi.URLParam(r, "id")
	if cinemaID == "" {
		utils.ResponseBadRequest(w, "Cinema ID is required", nil)
		return
	}

	cinema, err := h.service.GetCinemaByID(r.Context(), cinemaID)
	if err != nil {
		writeServiceError(w, h.log, err, "get cinema by ID")
		return
	}

	utils.ResponseSuccess(w, "success", cinema)
}
