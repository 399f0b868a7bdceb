package reservation

import (
	"context"

	"cabanero/models"
	"cabanero/utils"

	"go.uber.org/zap"
)

// PaymentVerification is the processor's answer about a checkout session.
type PaymentVerification struct {
	ReservationID string
	Paid          bool
}

// PaymentGateway abstracts the payment processor. CreateCheckoutSession
// builds one payable session for a reservation; VerifySession asks the
// processor whether that session was actually paid. The success redirect is
// never trusted on its own.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, res *models.Reservation, successURL, cancelURL string) (*models.PaymentSession, error)
	VerifySession(ctx context.Context, sessionID string) (*PaymentVerification, error)
}

// InitiatePayment creates a checkout session for a pendiente reservation and
// returns the redirect URL. The reservation stays pendiente; a failed attempt
// may be retried, each retry creating a fresh session.
func (s *DefaultReservationService) InitiatePayment(ctx context.Context, id, successURL, cancelURL string) (*models.PaymentSession, error) {
	logger := utils.GetLogger()

	if successURL == "" || cancelURL == "" {
		return nil, NewValidationError("se requieren success_url y cancel_url")
	}

	res, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if res.Estado != models.ReservationPending {
		return nil, NewInvalidStateError("solo una reserva pendiente puede pagarse")
	}

	ps, err := s.Gateway.CreateCheckoutSession(ctx, res, successURL, cancelURL)
	if err != nil {
		logger.Error("checkout session creation failed",
			zap.String("reservationID", id), zap.Error(err))
		return nil, NewPaymentInitError("no se pudo iniciar el pago, intente de nuevo")
	}

	if err := s.Repo.SetCheckoutSession(ctx, res.ID, ps.SessionID); err != nil {
		// The session is already live at the processor; losing the reference
		// only degrades traceability.
		logger.Error("failed to record checkout session",
			zap.String("reservationID", id), zap.Error(err))
	}

	logger.Info("payment initiated",
		zap.String("reservationID", id), zap.String("sessionID", ps.SessionID))
	return ps, nil
}

// VerifyAndConfirm confirms a reservation from the success landing page. The
// session is re-fetched from the processor and must be paid and bound to this
// reservation; the client's query parameters carry no authority.
func (s *DefaultReservationService) VerifyAndConfirm(ctx context.Context, id, sessionID string) (*models.Reservation, error) {
	if sessionID == "" {
		return nil, NewValidationError("se requiere session_id")
	}

	v, err := s.Gateway.VerifySession(ctx, sessionID)
	if err != nil {
		utils.GetLogger().Error("payment verification failed",
			zap.String("reservationID", id), zap.Error(err))
		return nil, NewPaymentInitError("no se pudo verificar el pago")
	}
	if v.ReservationID != id {
		return nil, NewValidationError("la sesión de pago no corresponde a esta reserva")
	}
	if !v.Paid {
		return nil, NewValidationError("el pago no se ha completado")
	}

	return s.Confirm(ctx, id)
}
