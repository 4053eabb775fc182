package wire

import (
	"tour-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireWebhook(r chi.Router, webhookHandler *adaptor.WebhookHandler) {
	r.Post("/webhook-checkout", webhookHandler.Checkout)
}
