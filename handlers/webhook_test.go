package handlers

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cabanero/models"
	"cabanero/services/reservation"

	"github.com/gin-gonic/gin"
	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testEndpointSecret = "whsec_test_secret"

func newWebhookRouter(svc reservation.ReservationService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewStripeWebhookHandler(svc, testEndpointSecret, zap.NewNop())

	r := gin.New()
	r.POST("/webhooks/stripe/", h.Handle)
	return r
}

func checkoutEventPayload(eventType, sessionID, reservaID string) []byte {
	metadata := ""
	if reservaID != "" {
		metadata = fmt.Sprintf(`"metadata":{"reserva_id":%q},`, reservaID)
	}
	return []byte(fmt.Sprintf(
		`{"id":"evt_1","api_version":%q,"type":%q,"data":{"object":{%s"id":%q}}}`,
		stripe.APIVersion, eventType, metadata, sessionID))
}

func signedWebhookRequest(payload []byte, secret string) *http.Request {
	ts := time.Now()
	sig := webhook.ComputeSignature(ts, payload, secret)
	req := httptest.NewRequest(http.MethodPost, "/webhooks/stripe/", bytes.NewReader(payload))
	req.Header.Set("Stripe-Signature",
		fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(sig)))
	return req
}

func TestStripeWebhookConfirmsOnCompletedCheckout(t *testing.T) {
	var confirmed []string
	svc := &stubService{
		confirm: func(_ context.Context, id string) (*models.Reservation, error) {
			confirmed = append(confirmed, id)
			return &models.Reservation{ID: id, Estado: models.ReservationConfirmed}, nil
		},
	}
	r := newWebhookRouter(svc)

	payload := checkoutEventPayload("checkout.session.completed", "cs_1", "res-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, signedWebhookRequest(payload, testEndpointSecret))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"res-1"}, confirmed)
}

func TestStripeWebhookRejectsBadSignature(t *testing.T) {
	svc := &stubService{
		confirm: func(context.Context, string) (*models.Reservation, error) {
			t.Fatal("confirm must not run for an unverified payload")
			return nil, nil
		},
	}
	r := newWebhookRouter(svc)
	payload := checkoutEventPayload("checkout.session.completed", "cs_1", "res-1")

	t.Run("signed with the wrong secret", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, signedWebhookRequest(payload, "whsec_other"))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing signature header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/webhooks/stripe/", bytes.NewReader(payload))
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestStripeWebhookIgnoresOtherEvents(t *testing.T) {
	svc := &stubService{
		confirm: func(context.Context, string) (*models.Reservation, error) {
			t.Fatal("confirm must not run for unrelated events")
			return nil, nil
		},
	}
	r := newWebhookRouter(svc)

	payload := checkoutEventPayload("payment_intent.succeeded", "pi_1", "res-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, signedWebhookRequest(payload, testEndpointSecret))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStripeWebhookAcknowledgesSessionWithoutReservation(t *testing.T) {
	svc := &stubService{
		confirm: func(context.Context, string) (*models.Reservation, error) {
			t.Fatal("confirm must not run without a reserva_id")
			return nil, nil
		},
	}
	r := newWebhookRouter(svc)

	payload := checkoutEventPayload("checkout.session.completed", "cs_foreign", "")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, signedWebhookRequest(payload, testEndpointSecret))

	// No reserva_id means the session belongs to another system; Stripe must
	// not keep retrying it.
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStripeWebhookAcknowledgesUnactionableConfirm(t *testing.T) {
	tests := []struct {
		name       string
		confirmErr error
		wantStatus int
	}{
		{
			name:       "cancelled reservation is acknowledged",
			confirmErr: reservation.NewInvalidStateError("una reserva cancelada no puede confirmarse"),
			wantStatus: http.StatusOK,
		},
		{
			name:       "unknown reservation is acknowledged",
			confirmErr: reservation.NewNotFoundError("reserva no encontrada"),
			wantStatus: http.StatusOK,
		},
		{
			name:       "backend failure bounces for retry",
			confirmErr: errors.New("mongo timeout"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubService{
				confirm: func(context.Context, string) (*models.Reservation, error) {
					return nil, tt.confirmErr
				},
			}
			r := newWebhookRouter(svc)

			payload := checkoutEventPayload("checkout.session.completed", "cs_1", "res-1")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, signedWebhookRequest(payload, testEndpointSecret))
			require.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
