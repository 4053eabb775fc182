package usecase

import (
	"context"
	"errors"
	"time"

	"tour-booking/internal/data/entity"
	"tour-booking/pkg/cache"
	"tour-booking/pkg/metrics"
	"tour-booking/pkg/payment"

	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

const markTimeout = 5 * time.Second

// WebhookOutcome describes what a verified event led to. A nil error with a
// non-empty Skipped means the event was acknowledged without a booking.
type WebhookOutcome struct {
	EventType string
	Booking   *entity.Booking
	Duplicate bool
	Skipped   string
}

type WebhookService interface {
	VerifyEvent(payload []byte, signature string) (stripe.Event, error)
	// HandleEvent returns an error only when the event should be redelivered.
	HandleEvent(ctx context.Context, event stripe.Event) (*WebhookOutcome, error)
}

type webhookService struct {
	processor payment.Processor
	booking   BookingService
	ledger    cache.EventLedger
	log       *zap.Logger
}

// NewWebhookService builds the receiver logic. ledger may be nil.
func NewWebhookService(
	processor payment.Processor,
	booking BookingService,
	ledger cache.EventLedger,
	log *zap.Logger,
) WebhookService {
	return &webhookService{
		processor: processor,
		booking:   booking,
		ledger:    ledger,
		log:       log.With(zap.String("service", "webhook")),
	}
}

func (s *webhookService) VerifyEvent(payload []byte, signature string) (stripe.Event, error) {
	event, err := s.processor.VerifyEvent(payload, signature)
	if err != nil {
		metrics.IncWebhook("unknown", "invalid_signature")
		s.log.Warn("Rejected webhook with invalid signature", zap.Error(err))
		return stripe.Event{}, err
	}
	return event, nil
}

func (s *webhookService) HandleEvent(ctx context.Context, event stripe.Event) (*WebhookOutcome, error) {
	eventType := string(event.Type)
	outcome := &WebhookOutcome{EventType: eventType}

	if eventType != payment.EventCheckoutSessionCompleted {
		metrics.IncWebhook(eventType, "ignored")
		s.log.Debug("Ignoring webhook event", zap.String("event_id", event.ID), zap.String("type", eventType))
		return outcome, nil
	}

	if s.seen(ctx, event.ID) {
		metrics.IncWebhook(eventType, "replayed")
		s.log.Info("Webhook event already handled", zap.String("event_id", event.ID))
		outcome.Duplicate = true
		return outcome, nil
	}

	session, err := payment.DecodeCheckoutSession(event)
	if err != nil {
		metrics.IncWebhook(eventType, "skipped")
		s.log.Warn("Skipping undecodable checkout session", zap.Error(err), zap.String("event_id", event.ID))
		outcome.Skipped = "undecodable checkout session"
		s.mark(event.ID)
		return outcome, nil
	}

	booking, err := s.booking.CreateBookingFromSession(ctx, session)
	switch {
	case err == nil:
		metrics.IncWebhook(eventType, "booked")
		outcome.Booking = booking
		s.mark(event.ID)
		return outcome, nil

	case errors.Is(err, ErrDuplicateSession):
		metrics.IncWebhook(eventType, "duplicate")
		outcome.Duplicate = true
		s.mark(event.ID)
		return outcome, nil

	case errors.Is(err, ErrMissingMetadata), errors.Is(err, ErrInvalidMetadata):
		metrics.IncWebhook(eventType, "skipped")
		s.log.Warn("Skipping checkout session without usable metadata",
			zap.Error(err),
			zap.String("event_id", event.ID),
			zap.String("session_id", session.ID),
		)
		if errors.Is(err, ErrMissingMetadata) {
			outcome.Skipped = "missing metadata"
		} else {
			outcome.Skipped = "invalid metadata"
		}
		s.mark(event.ID)
		return outcome, nil

	default:
		metrics.IncWebhook(eventType, "failed")
		s.log.Error("Failed to create booking from checkout session",
			zap.Error(err),
			zap.String("event_id", event.ID),
			zap.String("session_id", session.ID),
		)
		return nil, err
	}
}

// seen reports whether the event already settled. Ledger outages fall
// through to the database uniqueness guard.
func (s *webhookService) seen(ctx context.Context, eventID string) bool {
	if s.ledger == nil || eventID == "" {
		return false
	}

	seen, err := s.ledger.Seen(ctx, eventID)
	if err != nil {
		s.log.Warn("Event ledger unavailable", zap.Error(err), zap.String("event_id", eventID))
		return false
	}
	return seen
}

// mark records a final outcome. Failed or interrupted writes are never
// marked, so the redelivery reaches the booking store again.
func (s *webhookService) mark(eventID string) {
	if s.ledger == nil || eventID == "" {
		return
	}

	// The request context may already be cancelled.
	ctx, cancel := context.WithTimeout(context.Background(), markTimeout)
	defer cancel()

	if err := s.ledger.Mark(ctx, eventID); err != nil {
		s.log.Warn("Failed to mark webhook event", zap.Error(err), zap.String("event_id", eventID))
	}
}
