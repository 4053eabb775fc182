package adaptor

import (
	"tour-booking/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth     *AuthHandler
	User     *UserHandler
	Tour     *TourHandler
	Checkout *CheckoutHandler
	Booking  *BookingHandler
	Webhook  *WebhookHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(service.Auth, log),
		User:     NewUserHandler(service.User, service.Booking, log),
		Tour:     NewTourHandler(service.Tour, log),
		Checkout: NewCheckoutHandler(service.Checkout, log),
		Booking:  NewBookingHandler(service.Booking, log),
		Webhook:  NewWebhookHandler(service.Webhook, log),
	}
}
