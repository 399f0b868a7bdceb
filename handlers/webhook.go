package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"cabanero/services/reservation"

	"github.com/gin-gonic/gin"
	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

// Stripe caps event payloads well below this.
const maxWebhookBody = 65536

// StripeWebhookHandler receives checkout events. Signature verification is
// the only thing that lets a request confirm a reservation without an
// authenticated session.
type StripeWebhookHandler struct {
	Svc            reservation.ReservationService
	EndpointSecret string
	Logger         *zap.Logger
}

func NewStripeWebhookHandler(svc reservation.ReservationService, endpointSecret string, logger *zap.Logger) *StripeWebhookHandler {
	return &StripeWebhookHandler{Svc: svc, EndpointSecret: endpointSecret, Logger: logger}
}

// Handle processes POST /webhooks/stripe/. Stripe retries on non-2xx, so
// events we cannot act on (unknown reservation, already cancelled) are
// acknowledged rather than bounced forever.
func (h *StripeWebhookHandler) Handle(c *gin.Context) {
	payload, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBody))
	if err != nil {
		h.Logger.Warn("failed to read webhook body", zap.Error(err))
		c.Status(http.StatusBadRequest)
		return
	}

	event, err := webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), h.EndpointSecret)
	if err != nil {
		h.Logger.Warn("webhook signature verification failed", zap.Error(err))
		c.Status(http.StatusBadRequest)
		return
	}

	if event.Type != "checkout.session.completed" {
		c.Status(http.StatusOK)
		return
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		h.Logger.Error("malformed checkout.session.completed payload", zap.Error(err))
		c.Status(http.StatusBadRequest)
		return
	}

	reservaID := sess.Metadata["reserva_id"]
	if reservaID == "" {
		// Session not created by this service; nothing to confirm.
		h.Logger.Warn("checkout session without reserva_id metadata", zap.String("sessionId", sess.ID))
		c.Status(http.StatusOK)
		return
	}

	if _, err := h.Svc.Confirm(c.Request.Context(), reservaID); err != nil {
		switch reservation.CodeOf(err) {
		case reservation.CodeNotFound, reservation.CodeInvalidState:
			h.Logger.Warn("webhook confirmation skipped",
				zap.String("reservationId", reservaID), zap.Error(err))
		default:
			h.Logger.Error("webhook confirmation failed",
				zap.String("reservationId", reservaID), zap.Error(err))
			c.Status(http.StatusInternalServerError)
			return
		}
	}

	c.Status(http.StatusOK)
}
