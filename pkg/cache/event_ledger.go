package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const eventKeyPrefix = "webhook_event:"

// EventLedger remembers which payment-service events were already settled,
// so a redelivery short-circuits before reaching the booking store. An event
// is only marked once its outcome is final.
type EventLedger interface {
	// Seen reports whether the event was marked before.
	Seen(ctx context.Context, eventID string) (bool, error)
	// Mark records the event as settled.
	Mark(ctx context.Context, eventID string) error
}

type redisEventLedger struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisEventLedger(client *redis.Client, ttl time.Duration) EventLedger {
	return &redisEventLedger{
		client: client,
		ttl:    ttl,
	}
}

func (l *redisEventLedger) Seen(ctx context.Context, eventID string) (bool, error) {
	err := l.client.Get(ctx, eventKeyPrefix+eventID).Err()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, redis.Nil):
		return false, nil
	default:
		return false, fmt.Errorf("look up event %s: %w", eventID, err)
	}
}

func (l *redisEventLedger) Mark(ctx context.Context, eventID string) error {
	err := l.client.Set(ctx, eventKeyPrefix+eventID, time.Now().UTC().Format(time.RFC3339), l.ttl).Err()
	if err != nil {
		return fmt.Errorf("mark event %s: %w", eventID, err)
	}
	return nil
}
