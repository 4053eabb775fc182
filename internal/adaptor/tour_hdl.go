package adaptor

import (
	"errors"
	"net/http"

	"tour-booking/internal/dto/request"
	"tour-booking/internal/usecase"
	"tour-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TourHandler struct {
	service usecase.TourService
	log     *zap.Logger
}

func NewTourHandler(service usecase.TourService, log *zap.Logger) *TourHandler {
	return &TourHandler{
		service: service,
		log:     log.With(zap.String("handler", "tour")),
	}
}

// GetTours handles GET /api/v1/tours
func (h *TourHandler) GetTours(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	tours, err := h.service.GetTours(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, err, "get tours")
		return
	}

	utils.ResponseSuccess(w, "", tours)
}

// GetTour handles GET /api/v1/tours/{tourId}
func (h *TourHandler) GetTour(w http.ResponseWriter, r *http.Request) {
	tour, err := h.service.GetTourByID(r.Context(), chi.URLParam(r, "tourId"))
	if err != nil {
		h.handleServiceError(w, err, "get tour")
		return
	}

	utils.ResponseSuccess(w, "", map[string]any{"tour": tour})
}

func (h *TourHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrInvalidID):
		utils.ResponseBadRequest(w, err.Error(), nil)
	case errors.Is(err, usecase.ErrTourNotFound):
		utils.ResponseNotFound(w, "No tour found with that ID")
	default:
		h.log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
