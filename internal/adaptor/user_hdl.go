package adaptor

import (
	"errors"
	"net/http"

	"tour-booking/internal/dto/response"
	"tour-booking/internal/usecase"
	"tour-booking/pkg/utils"

	"go.uber.org/zap"
)

type UserHandler struct {
	service  usecase.UserService
	bookings usecase.BookingService
	log      *zap.Logger
}

func NewUserHandler(service usecase.UserService, bookings usecase.BookingService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service:  service,
		bookings: bookings,
		log:      log.With(zap.String("handler", "user")),
	}
}

// GetMe handles GET /api/v1/users/me
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	profile, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, err, "get profile")
		return
	}

	utils.ResponseSuccess(w, "", map[string]any{"user": profile})
}

// GetMyBookings handles GET /api/v1/users/me/bookings
func (h *UserHandler) GetMyBookings(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookings, err := h.bookings.GetMyBookings(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, err, "get my bookings")
		return
	}

	utils.ResponseList(w, len(bookings), response.BookingsEnvelope{Bookings: bookings})
}

func (h *UserHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	if errors.Is(err, usecase.ErrUserNotFound) {
		utils.ResponseNotFound(w, err.Error())
		return
	}

	h.log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
	utils.ResponseInternalError(w, "Internal server error")
}
