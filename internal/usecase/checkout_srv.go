package usecase

import (
	"context"
	"fmt"

	"tour-booking/internal/data/repository"
	"tour-booking/pkg/metrics"
	"tour-booking/pkg/payment"
	"tour-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

type CheckoutService interface {
	// CreateCheckoutSession opens a hosted payment page for one tour. baseURL
	// is "{proto}://{host}" of the incoming request; caller may be nil.
	CreateCheckoutSession(ctx context.Context, tourID, baseURL string, caller *utils.Principal) (*stripe.CheckoutSession, error)
}

type checkoutService struct {
	tourRepo  repository.TourRepository
	processor payment.Processor
	currency  string
	log       *zap.Logger
}

func NewCheckoutService(
	tourRepo repository.TourRepository,
	processor payment.Processor,
	currency string,
	log *zap.Logger,
) CheckoutService {
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}

	return &checkoutService{
		tourRepo:  tourRepo,
		processor: processor,
		currency:  currency,
		log:       log.With(zap.String("service", "checkout")),
	}
}

func (s *checkoutService) CreateCheckoutSession(ctx context.Context, tourID, baseURL string, caller *utils.Principal) (*stripe.CheckoutSession, error) {
	id, err := uuid.Parse(tourID)
	if err != nil {
		metrics.IncCheckout("invalid_id")
		return nil, fmt.Errorf("%w: tour %q", ErrInvalidID, tourID)
	}

	tour, err := s.tourRepo.FindByID(ctx, id)
	if err != nil {
		metrics.IncCheckout("failed")
		return nil, fmt.Errorf("load tour %s: %w", tourID, err)
	}
	if tour == nil {
		metrics.IncCheckout("tour_not_found")
		return nil, fmt.Errorf("%w: %s", ErrTourNotFound, tourID)
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:         stripe.String(baseURL + "/?alert=booking"),
		CancelURL:          stripe.String(baseURL + "/tour/" + tour.Slug),
		ClientReferenceID:  stripe.String(tour.ID.String()),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(s.currency),
					UnitAmount: stripe.Int64(utils.ToMinorUnits(tour.Price)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(tour.Name),
						Description: stripe.String(tour.Summary),
						Images:      stripe.StringSlice([]string{baseURL + "/img/tours/" + tour.ImageCover}),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.AddMetadata(payment.MetadataTour, tour.ID.String())

	if caller != nil {
		params.CustomerEmail = stripe.String(caller.Email)
		params.AddMetadata(payment.MetadataUser, caller.UserID.String())
	}

	session, err := s.processor.CreateCheckoutSession(ctx, params)
	if err != nil {
		metrics.IncCheckout("failed")
		s.log.Error("Failed to create checkout session",
			zap.Error(err),
			zap.String("tour_id", tourID),
		)
		return nil, err
	}

	metrics.IncCheckout("created")
	s.log.Info("Checkout session created",
		zap.String("tour_id", tourID),
		zap.String("session_id", session.ID),
	)

	return session, nil
}
