package reservation

import (
	"context"
	"fmt"
	"math"
	"time"

	"cabanero/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
)

// StripeGateway implements PaymentGateway against Stripe checkout sessions.
// The global stripe.Key is set once at startup.
type StripeGateway struct {
	Currency string
}

func NewStripeGateway(currency string) *StripeGateway {
	return &StripeGateway{Currency: currency}
}

// CreateCheckoutSession builds a single-payment checkout session for the
// reservation's total, tagged with the reservation id so the webhook and the
// verification path can tie the payment back.
func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, res *models.Reservation, successURL, cancelURL string) (*models.PaymentSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(g.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(fmt.Sprintf("Reserva #%s", res.ID)),
					},
					// Amount in the currency's minor unit (centavos).
					UnitAmount: stripe.Int64(int64(math.Round(res.PrecioFinal * 100))),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(successURL),
		CancelURL:  stripe.String(cancelURL),
	}
	params.Context = ctx
	params.AddMetadata("reserva_id", res.ID)

	sess, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe checkout session creation failed: %w", err)
	}

	return &models.PaymentSession{
		ReservationID: res.ID,
		SessionID:     sess.ID,
		CheckoutURL:   sess.URL,
		CreatedAt:     time.Now(),
	}, nil
}

// VerifySession re-fetches a checkout session from Stripe and reports whether
// it was paid and which reservation it belongs to.
func (g *StripeGateway) VerifySession(ctx context.Context, sessionID string) (*PaymentVerification, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	sess, err := session.Get(sessionID, params)
	if err != nil {
		return nil, fmt.Errorf("stripe checkout session lookup failed: %w", err)
	}

	return &PaymentVerification{
		ReservationID: sess.Metadata["reserva_id"],
		Paid:          sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
	}, nil
}
