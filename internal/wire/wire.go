// internal/wire/wire.go
package wire

import (
	"net/http"

	"tour-booking/internal/adaptor"
	"tour-booking/internal/data/repository"
	"tour-booking/internal/usecase"
	"tour-booking/pkg/cache"
	"tour-booking/pkg/metrics"
	"tour-booking/pkg/middleware"
	"tour-booking/pkg/payment"
	"tour-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the assembled HTTP surface.
type App struct {
	Router *chi.Mux
}

// Wiring builds services, handlers and routes. ledger may be nil.
func Wiring(
	repo *repository.Repository,
	processor payment.Processor,
	ledger cache.EventLedger,
	config *utils.Config,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, processor, ledger, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, config, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.RealIP(config.HTTP.TrustedProxies))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.HTTP.CORSAllowedOrigins))

	// Stripe signs the raw body; keep this route clear of the API stack.
	wireWebhook(r, handler.Webhook)

	limiter := middleware.NewRateLimiter(config.HTTP.RateLimitPerHour, logger)
	r.Group(func(r chi.Router) {
		r.Use(limiter.Handler)

		wireAuth(r, handler.Auth, repo, config, logger)
		wireUser(r, handler.User, repo, config, logger)
		wireTour(r, handler.Tour, handler.Checkout, repo, config, logger)
		wireBooking(r, handler.Booking, repo, config, logger)
	})

	r.Handle("/metrics", metrics.Handler())

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
