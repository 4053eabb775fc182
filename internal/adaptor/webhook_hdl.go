package adaptor

import (
	"io"
	"net/http"

	"tour-booking/internal/usecase"
	"tour-booking/pkg/utils"

	"go.uber.org/zap"
)

const (
	maxWebhookBodyBytes = 64 << 10
	signatureHeader     = "Stripe-Signature"
)

type webhookAck struct {
	Received bool   `json:"received"`
	Skipped  string `json:"skipped,omitempty"`
}

type WebhookHandler struct {
	service usecase.WebhookService
	log     *zap.Logger
}

func NewWebhookHandler(service usecase.WebhookService, log *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		service: service,
		log:     log.With(zap.String("handler", "webhook")),
	}
}

// Checkout handles POST /webhook-checkout. The body must reach signature
// verification byte for byte, so it is read raw.
func (h *WebhookHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBodyBytes))
	if err != nil {
		http.Error(w, "Webhook Error: "+err.Error(), http.StatusBadRequest)
		return
	}

	event, err := h.service.VerifyEvent(payload, r.Header.Get(signatureHeader))
	if err != nil {
		http.Error(w, "Webhook Error: "+err.Error(), http.StatusBadRequest)
		return
	}

	outcome, err := h.service.HandleEvent(r.Context(), event)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to create booking"})
		return
	}

	if outcome.Booking != nil {
		h.log.Info("Booking recorded from webhook",
			zap.String("event_id", event.ID),
			zap.String("booking_id", outcome.Booking.ID.String()),
		)
	}

	utils.WriteJSON(w, http.StatusOK, webhookAck{Received: true, Skipped: outcome.Skipped})
}
