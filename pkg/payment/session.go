package payment

import (
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v76"
)

// Metadata keys written at checkout and read back by the webhook.
const (
	MetadataTour = "tour"
	MetadataUser = "user"
)

// DecodeCheckoutSession extracts the session object carried by an event.
func DecodeCheckoutSession(event stripe.Event) (*stripe.CheckoutSession, error) {
	if event.Data == nil || len(event.Data.Raw) == 0 {
		return nil, fmt.Errorf("event %s carries no data object", event.ID)
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return nil, fmt.Errorf("decode checkout session from event %s: %w", event.ID, err)
	}
	return &session, nil
}
