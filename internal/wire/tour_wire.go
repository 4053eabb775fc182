package wire

import (
	"tour-booking/internal/adaptor"
	"tour-booking/internal/data/repository"
	"tour-booking/pkg/middleware"
	"tour-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireTour(
	r chi.Router,
	tourHandler *adaptor.TourHandler,
	checkoutHandler *adaptor.CheckoutHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Route("/api/v1/tours", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Get("/", tourHandler.GetTours)
		r.Get("/{tourId}", tourHandler.GetTour)

		// ==================== PROTECTED ROUTES ====================
		r.With(middleware.AuthSession(repo.Session, repo.User, log)).
			Get("/{tourId}/checkout-session", checkoutHandler.GetCheckoutSession)
	})
}
