package adaptor

import (
	"encoding/json"
	"net/http"

	"cinex-backend/internal/dto/request"
	"cinex-backend/internal/usecase"
	"cinex-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ShowHandler struct {
	service usecase.ShowService
	log     *zap.Logger
}

func NewShowHandler(service usecase.ShowService, log *zap.Logger) *ShowHandler {
	return &ShowHandler{
		service: service,
		log:     log.With(zap.String("handler", "show")),
	}
}

// GetShowByID handles GET /api/shows/{id}
func (h *ShowHandler) GetShowByID(w http.ResponseWriter, r *http.Request) {
	showID := chi.URLParam(r, "id")
	if showID == "" {
		utils.ResponseBadRequest(w, "Show ID is required", nil)
		return
	}

	show, err := h.service.GetShowByID(r.Context(), showID)
	if err != nil {
		writeServiceError(w, h.log, err, "get show by ID")
		return
	}

	utils.ResponseSuccess(w, "success", show)
}

// CreateShow handles POST /api/shows
func (h *ShowHandler) CreateShow(w http.ResponseWriter, r *http.Request) {
	var req request.ShowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	show, err := h.service.CreateShow(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create show")
		return
	}

	utils.ResponseCreated(w, "Show created successfully", show)
}

// UpdateShow handles PUT /api/shows/{id}
func (h *ShowHandler) UpdateShow(w http.ResponseWriter, r *http.Request) {
	showID := chi.URLParam(r, "id")
	if showID == "" {
		utils.ResponseBadRequest(w, "Show ID is required", nil)
		return
	}

	var req request.ShowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	show, err := h.service.UpdateShow(r.Context(), showID, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "update show")
		return
	}

	utils.ResponseSuccess(w, "Show updated successfully", show)
}

// DeleteShow handles DELETE /api/shows/{id}
func (h *ShowHandler) DeleteShow(w http.ResponseWriter, r *http.Request) {
	showID := chi.URLParam(r, "id")
	if showID == "" {
		utils.ResponseBadRequest(w, "Show ID is required", nil)
		return
	}

	if err := h.service.DeleteShow(r.Context(), showID); err != nil {
		writeServiceError(w, h.log, err, "delete show")
		return
	}

	utils.ResponseSuccess(w, "Show deleted successfully", map[string]string{"show_id": showID})
}
