package reservation

import (
	"context"

	"cabanero/models"
	"cabanero/utils"

	"go.uber.org/zap"
)

// Confirm moves a reservation from pendiente to confirmada. Confirming an
// already confirmed reservation is a no-op; confirming a cancelled one is an
// invalid transition. Callers must only invoke this after the payment has
// been independently verified with the processor.
func (s *DefaultReservationService) Confirm(ctx context.Context, id string) (*models.Reservation, error) {
	res, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch res.Estado {
	case models.ReservationConfirmed:
		return res, nil
	case models.ReservationCancelled:
		return nil, NewInvalidStateError("una reserva cancelada no puede confirmarse")
	}

	ok, err := s.Repo.UpdateEstado(ctx, id, []string{models.ReservationPending}, models.ReservationConfirmed)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Lost a race with another transition; re-read to decide.
		res, err = s.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if res.Estado == models.ReservationConfirmed {
			return res, nil
		}
		return nil, NewInvalidStateError("una reserva cancelada no puede confirmarse")
	}

	res.Estado = models.ReservationConfirmed
	utils.GetLogger().Info("reservation confirmed", zap.String("reservationID", id))
	return res, nil
}

// Cancel moves a pendiente or confirmada reservation to cancelada. Cancelling
// an already cancelled reservation returns the unchanged record; cancelada is
// terminal.
func (s *DefaultReservationService) Cancel(ctx context.Context, id string) (*models.Reservation, error) {
	res, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if res.Estado == models.ReservationCancelled {
		return res, nil
	}

	ok, err := s.Repo.UpdateEstado(ctx, id,
		[]string{models.ReservationPending, models.ReservationConfirmed},
		models.ReservationCancelled)
	if err != nil {
		return nil, err
	}
	if !ok {
		res, err = s.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return res, nil
	}

	res.Estado = models.ReservationCancelled
	utils.GetLogger().Info("reservation cancelled", zap.String("reservationID", id))
	return res, nil
}

// Expire reclaims a reservation abandoned at checkout: pendiente becomes
// cancelada, anything else is left untouched. Invoked by the delayed task
// worker, never by clients.
func (s *DefaultReservationService) Expire(ctx context.Context, id string) error {
	ok, err := s.Repo.UpdateEstado(ctx, id, []string{models.ReservationPending}, models.ReservationCancelled)
	if err != nil {
		return err
	}
	if ok {
		utils.GetLogger().Info("pending reservation expired", zap.String("reservationID", id))
	}
	return nil
}
