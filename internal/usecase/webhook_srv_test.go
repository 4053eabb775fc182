package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"tour-booking/internal/data/repository"
	"tour-booking/pkg/cache"
	"tour-booking/pkg/payment"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

func checkoutEvent(t *testing.T, eventID string, metadata map[string]string, amount int64) stripe.Event {
	t.Helper()

	raw, err := json.Marshal(map[string]any{
		"id":           "cs_test_" + eventID,
		"object":       "checkout.session",
		"amount_total": amount,
		"metadata":     metadata,
	})
	require.NoError(t, err)

	return stripe.Event{
		ID:   eventID,
		Type: payment.EventCheckoutSessionCompleted,
		Data: &stripe.EventData{Raw: raw},
	}
}

func newWebhookService(t *testing.T, bookings *mockBookingRepo, withLedger bool) WebhookService {
	t.Helper()

	var ledger cache.EventLedger
	if withLedger {
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { client.Close() })
		ledger = cache.NewRedisEventLedger(client, time.Hour)
	}

	log := zap.NewNop()
	booking := NewBookingService(&repository.Repository{Booking: bookings}, log)
	return NewWebhookService(new(mockProcessor), booking, ledger, log)
}

func TestWebhookService_HandleEvent(t *testing.T) {
	ctx := context.Background()
	metadata := map[string]string{
		payment.MetadataTour: uuid.NewString(),
		payment.MetadataUser: uuid.NewString(),
	}

	t.Run("completed session creates one booking", func(t *testing.T) {
		bookings := new(mockBookingRepo)
		svc := newWebhookService(t, bookings, false)

		bookings.On("CreateForSession", ctx, mock.Anything).Return(true, nil).Once()

		outcome, err := svc.HandleEvent(ctx, checkoutEvent(t, "evt_1", metadata, 4500))
		require.NoError(t, err)
		require.NotNil(t, outcome.Booking)
		assert.Equal(t, 45.0, outcome.Booking.Price)
		assert.Empty(t, outcome.Skipped)
		bookings.AssertExpectations(t)
	})

	t.Run("other event types are acknowledged untouched", func(t *testing.T) {
		bookings := new(mockBookingRepo)
		svc := newWebhookService(t, bookings, true)

		outcome, err := svc.HandleEvent(ctx, stripe.Event{ID: "evt_2", Type: "payment_intent.created"})
		require.NoError(t, err)
		assert.Nil(t, outcome.Booking)
		assert.Equal(t, "payment_intent.created", outcome.EventType)
		bookings.AssertNotCalled(t, "CreateForSession", mock.Anything, mock.Anything)
	})

	t.Run("missing metadata is skipped", func(t *testing.T) {
		bookings := new(mockBookingRepo)
		svc := newWebhookService(t, bookings, false)

		outcome, err := svc.HandleEvent(ctx, checkoutEvent(t, "evt_3", map[string]string{payment.MetadataTour: uuid.NewString()}, 4500))
		require.NoError(t, err)
		assert.Equal(t, "missing metadata", outcome.Skipped)
		bookings.AssertNotCalled(t, "CreateForSession", mock.Anything, mock.Anything)
	})

	t.Run("invalid metadata is skipped", func(t *testing.T) {
		bookings := new(mockBookingRepo)
		svc := newWebhookService(t, bookings, false)

		outcome, err := svc.HandleEvent(ctx, checkoutEvent(t, "evt_4", map[string]string{
			payment.MetadataTour: "abc",
			payment.MetadataUser: "def",
		}, 4500))
		require.NoError(t, err)
		assert.Equal(t, "invalid metadata", outcome.Skipped)
	})

	t.Run("duplicate session is acknowledged", func(t *testing.T) {
		bookings := new(mockBookingRepo)
		svc := newWebhookService(t, bookings, false)

		bookings.On("CreateForSession", ctx, mock.Anything).Return(false, nil)

		outcome, err := svc.HandleEvent(ctx, checkoutEvent(t, "evt_5", metadata, 4500))
		require.NoError(t, err)
		assert.True(t, outcome.Duplicate)
		assert.Nil(t, outcome.Booking)
	})

	t.Run("ledger short-circuits a redelivered event", func(t *testing.T) {
		bookings := new(mockBookingRepo)
		svc := newWebhookService(t, bookings, true)

		bookings.On("CreateForSession", ctx, mock.Anything).Return(true, nil).Once()

		event := checkoutEvent(t, "evt_6", metadata, 4500)
		first, err := svc.HandleEvent(ctx, event)
		require.NoError(t, err)
		assert.NotNil(t, first.Booking)

		second, err := svc.HandleEvent(ctx, event)
		require.NoError(t, err)
		assert.True(t, second.Duplicate)
		bookings.AssertNumberOfCalls(t, "CreateForSession", 1)
	})

	t.Run("failed write is retried on redelivery", func(t *testing.T) {
		bookings := new(mockBookingRepo)
		svc := newWebhookService(t, bookings, true)

		bookings.On("CreateForSession", ctx, mock.Anything).Return(false, errors.New("db down")).Once()
		bookings.On("CreateForSession", ctx, mock.Anything).Return(true, nil).Once()

		event := checkoutEvent(t, "evt_7", metadata, 4500)
		_, err := svc.HandleEvent(ctx, event)
		require.Error(t, err)

		outcome, err := svc.HandleEvent(ctx, event)
		require.NoError(t, err)
		assert.NotNil(t, outcome.Booking)
		bookings.AssertExpectations(t)
	})

	t.Run("interrupted write is retried on redelivery", func(t *testing.T) {
		bookings := new(mockBookingRepo)
		svc := newWebhookService(t, bookings, true)

		bookings.On("CreateForSession", ctx, mock.Anything).
			Run(func(mock.Arguments) { panic("connection reset") }).
			Return(false, nil).Once()
		bookings.On("CreateForSession", ctx, mock.Anything).Return(true, nil).Once()

		event := checkoutEvent(t, "evt_8", metadata, 4500)
		assert.Panics(t, func() { _, _ = svc.HandleEvent(ctx, event) })

		outcome, err := svc.HandleEvent(ctx, event)
		require.NoError(t, err)
		assert.False(t, outcome.Duplicate)
		require.NotNil(t, outcome.Booking)
		assert.Equal(t, 45.0, outcome.Booking.Price)
		bookings.AssertExpectations(t)
	})

	t.Run("skipped event is not reprocessed", func(t *testing.T) {
		bookings := new(mockBookingRepo)
		svc := newWebhookService(t, bookings, true)

		event := checkoutEvent(t, "evt_9", map[string]string{}, 4500)
		first, err := svc.HandleEvent(ctx, event)
		require.NoError(t, err)
		assert.Equal(t, "missing metadata", first.Skipped)

		second, err := svc.HandleEvent(ctx, event)
		require.NoError(t, err)
		assert.True(t, second.Duplicate)
		bookings.AssertNotCalled(t, "CreateForSession", mock.Anything, mock.Anything)
	})
}

func TestWebhookService_VerifyEvent(t *testing.T) {
	processor := new(mockProcessor)
	log := zap.NewNop()
	svc := NewWebhookService(processor, NewBookingService(&repository.Repository{}, log), nil, log)

	payload := []byte(`{"id":"evt_1"}`)
	processor.On("VerifyEvent", payload, "bad").
		Return(stripe.Event{}, fmt.Errorf("%w: no signatures found", payment.ErrInvalidSignature))

	_, err := svc.VerifyEvent(payload, "bad")
	assert.ErrorIs(t, err, payment.ErrInvalidSignature)
}
