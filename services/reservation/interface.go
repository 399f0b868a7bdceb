package reservation

import (
	"context"
	"time"

	cabinRepo "cabanero/database/repository/cabin"
	reservationRepo "cabanero/database/repository/reservation"
	"cabanero/models"
)

// AvailabilityResult is the outcome of a point-in-time availability check.
// Available=true means no conflict existed at check time; it is not a hold.
type AvailabilityResult struct {
	Available bool   `json:"available"`
	Reason    string `json:"message,omitempty"`
}

// CreateReservationRequest carries the client's reservation form. QuotedTotal
// is the price the client saw; it is advisory only and never used for
// pricing.
type CreateReservationRequest struct {
	CabanaID    string
	ClienteID   string
	FechaInicio string
	FechaFin    string
	Huespedes   int
	Comentarios string
	QuotedTotal float64
}

// ReservationService owns the reservation lifecycle. It is the sole writer of
// a reservation's estado.
type ReservationService interface {
	CheckAvailability(ctx context.Context, cabanaID, fechaInicio, fechaFin string) (AvailabilityResult, error)
	Quote(ctx context.Context, cabanaID, fechaInicio, fechaFin string) (*models.StayQuote, error)
	Create(ctx context.Context, req CreateReservationRequest) (*models.Reservation, error)
	GetByID(ctx context.Context, id string) (*models.Reservation, error)
	ListByTeam(ctx context.Context, teamID string) ([]models.Reservation, error)
	InitiatePayment(ctx context.Context, id, successURL, cancelURL string) (*models.PaymentSession, error)
	VerifyAndConfirm(ctx context.Context, id, sessionID string) (*models.Reservation, error)
	Confirm(ctx context.Context, id string) (*models.Reservation, error)
	Cancel(ctx context.Context, id string) (*models.Reservation, error)
	Expire(ctx context.Context, id string) error
}

// ExpiryScheduler enqueues the delayed reclamation of a reservation left in
// pendiente after an abandoned checkout.
type ExpiryScheduler interface {
	ScheduleExpiry(reservationID string, fireAt time.Time) error
}

// DefaultReservationService implements ReservationService.
type DefaultReservationService struct {
	CabinRepo cabinRepo.CabinRepository
	Repo      reservationRepo.ReservationRepository
	Gateway   PaymentGateway
	Scheduler ExpiryScheduler
	// TTL for pendiente reservations; zero means DefaultPendingTTL.
	PendingTTL time.Duration
}

// DefaultPendingTTL matches Stripe's default checkout-session expiry.
const DefaultPendingTTL = 24 * time.Hour

func (s *DefaultReservationService) pendingTTL() time.Duration {
	if s.PendingTTL > 0 {
		return s.PendingTTL
	}
	return DefaultPendingTTL
}
