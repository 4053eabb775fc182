package adaptor

import (
	"errors"
	"net/http"

	"tour-booking/internal/dto/response"
	"tour-booking/internal/usecase"
	"tour-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CheckoutHandler struct {
	service usecase.CheckoutService
	log     *zap.Logger
}

func NewCheckoutHandler(service usecase.CheckoutService, log *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		log:     log.With(zap.String("handler", "checkout")),
	}
}

// GetCheckoutSession handles GET /api/v1/tours/{tourId}/checkout-session
func (h *CheckoutHandler) GetCheckoutSession(w http.ResponseWriter, r *http.Request) {
	tourID := chi.URLParam(r, "tourId")
	caller := utils.GetPrincipalFromContext(r.Context())

	session, err := h.service.CreateCheckoutSession(r.Context(), tourID, utils.BaseURL(r), caller)
	if err != nil {
		h.handleServiceError(w, err, tourID)
		return
	}

	utils.WriteJSON(w, http.StatusOK, response.CheckoutSessionResponse{
		Status:  utils.StatusSuccess,
		Session: session,
	})
}

func (h *CheckoutHandler) handleServiceError(w http.ResponseWriter, err error, tourID string) {
	switch {
	case errors.Is(err, usecase.ErrInvalidID):
		utils.ResponseBadRequest(w, "Invalid tour ID", nil)
	case errors.Is(err, usecase.ErrTourNotFound):
		utils.ResponseNotFound(w, "Tour not found")
	default:
		h.log.Error("Failed to create checkout session", zap.Error(err), zap.String("tour_id", tourID))
		utils.ResponseInternalError(w, "Could not create checkout session")
	}
}
