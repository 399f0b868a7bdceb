package reservationRepo

import (
	"context"
	"errors"

	"cabanero/models"
)

var (
	// ErrNotFound is returned when no reservation matches the given id.
	ErrNotFound = errors.New("reservation not found")
	// ErrOverlap is returned by CreateIfAvailable when a conflicting
	// pendiente/confirmada reservation already covers part of the interval.
	ErrOverlap = errors.New("overlapping reservation exists")
)

// ReservationRepository persists reservations. Estado changes go through
// UpdateEstado, which only matches documents currently in one of the expected
// states, so the service layer stays the sole writer of lifecycle state.
type ReservationRepository interface {
	// CreateIfAvailable re-checks the overlap condition and inserts the
	// reservation atomically; the loser of a concurrent race gets ErrOverlap
	// and no document is written.
	CreateIfAvailable(ctx context.Context, res *models.Reservation) error
	GetByID(ctx context.Context, id string) (*models.Reservation, error)
	// CountOverlapping counts pendiente/confirmada reservations for the
	// cabaña whose [fecha_inicio, fecha_fin) interval overlaps the given one.
	CountOverlapping(ctx context.Context, cabanaID, fechaInicio, fechaFin string) (int64, error)
	// UpdateEstado transitions estado to `to` only if the current value is in
	// `from`. It reports whether a document was matched.
	UpdateEstado(ctx context.Context, id string, from []string, to string) (bool, error)
	SetCheckoutSession(ctx context.Context, id, sessionID string) error
	ListByCabanas(ctx context.Context, cabanaIDs []string) ([]models.Reservation, error)
}
