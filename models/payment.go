package models

import "time"

// PaymentSession is one checkout attempt against a reservation. It is
// consumed once by redirecting the client to CheckoutURL; the outcome comes
// back out-of-band (webhook or verified landing-page callback).
type PaymentSession struct {
	ReservationID string    `json:"reservation_id"`
	SessionID     string    `json:"session_id"`
	CheckoutURL   string    `json:"checkout_url"`
	CreatedAt     time.Time `json:"created_at"`
}
