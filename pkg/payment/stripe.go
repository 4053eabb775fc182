package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
)

// EventCheckoutSessionCompleted is the only event type that creates a booking.
const EventCheckoutSessionCompleted = "checkout.session.completed"

// ErrInvalidSignature wraps every webhook verification failure.
var ErrInvalidSignature = errors.New("invalid webhook signature")

// Processor is the payment service as the booking flow sees it.
type Processor interface {
	CreateCheckoutSession(ctx context.Context, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	VerifyEvent(payload []byte, signature string) (stripe.Event, error)
}

type stripeProcessor struct {
	api           *client.API
	webhookSecret string
}

// NewStripeProcessor builds a Processor bound to one secret key; no global
// stripe.Key is touched.
func NewStripeProcessor(secretKey, webhookSecret string) Processor {
	api := &client.API{}
	api.Init(secretKey, nil)

	return &stripeProcessor{
		api:           api,
		webhookSecret: webhookSecret,
	}
}

func (p *stripeProcessor) CreateCheckoutSession(ctx context.Context, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	params.Context = ctx

	session, err := p.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("create stripe checkout session: %w", err)
	}
	return session, nil
}

// VerifyEvent checks the Stripe-Signature header against the raw payload.
// API version mismatches are tolerated: only the session fields are read.
func (p *stripeProcessor) VerifyEvent(payload []byte, signature string) (stripe.Event, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, p.webhookSecret, webhook.ConstructEventOptions{
		Tolerance:                webhook.DefaultTolerance,
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return stripe.Event{}, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	return event, nil
}
