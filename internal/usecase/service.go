package usecase

import (
	"tour-booking/internal/data/repository"
	"tour-booking/pkg/cache"
	"tour-booking/pkg/payment"
	"tour-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth     AuthService
	User     UserService
	Tour     TourService
	Checkout CheckoutService
	Booking  BookingService
	Webhook  WebhookService
}

// NewService wires every use case. ledger may be nil when no Redis is configured.
func NewService(
	repo *repository.Repository,
	processor payment.Processor,
	ledger cache.EventLedger,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	booking := NewBookingService(repo, log)

	return &Service{
		Auth:     NewAuthService(repo, config, log),
		User:     NewUserService(repo.User, log),
		Tour:     NewTourService(repo.Tour, log),
		Checkout: NewCheckoutService(repo.Tour, processor, config.Stripe.Currency, log),
		Booking:  booking,
		Webhook:  NewWebhookService(processor, booking, ledger, log),
	}
}
