package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	cabinRepo "cabanero/database/repository/cabin"
	reservationRepo "cabanero/database/repository/reservation"
	"cabanero/models"
	"cabanero/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Create validates the request, re-checks availability server-side, prices
// the stay from the registry's nightly rate and persists the reservation in
// pendiente. The overlap re-check and the insert run in one transaction, so
// of two racing creates exactly one wins; the loser gets a conflict error and
// no document is written.
func (s *DefaultReservationService) Create(ctx context.Context, req CreateReservationRequest) (*models.Reservation, error) {
	logger := utils.GetLogger()

	checkIn, checkOut, err := parseInterval(req.FechaInicio, req.FechaFin)
	if err != nil {
		return nil, err
	}
	if req.ClienteID == "" {
		return nil, NewValidationError("se requiere el cliente")
	}

	cabin, err := s.CabinRepo.GetByID(ctx, req.CabanaID)
	if err != nil {
		if errors.Is(err, cabinRepo.ErrNotFound) {
			return nil, NewNotFoundError("cabaña no encontrada")
		}
		return nil, fmt.Errorf("cabin lookup failed: %w", err)
	}

	if req.Huespedes < 1 || req.Huespedes > cabin.Capacidad {
		return nil, NewValidationError(
			fmt.Sprintf("el número de huéspedes debe estar entre 1 y %d", cabin.Capacidad))
	}
	if cabin.Estado != models.CabinAvailable {
		return nil, NewConflictError("la cabaña no está disponible actualmente")
	}

	// Server-authoritative price; the client's displayed total is advisory.
	quote := ComputeStay(checkIn, checkOut, cabin.CostoPorNoche)
	if quote == nil {
		return nil, NewValidationError("la estancia debe ser de al menos una noche")
	}
	if req.QuotedTotal > 0 && req.QuotedTotal != quote.Total {
		logger.Warn("client-quoted total diverges from server price",
			zap.String("cabanaID", cabin.ID),
			zap.Float64("client", req.QuotedTotal),
			zap.Float64("server", quote.Total))
	}

	now := time.Now()
	res := &models.Reservation{
		ID:          uuid.New().String(),
		CabanaID:    cabin.ID,
		ClienteID:   req.ClienteID,
		FechaInicio: req.FechaInicio,
		FechaFin:    req.FechaFin,
		Huespedes:   req.Huespedes,
		Comentarios: req.Comentarios,
		Noches:      quote.Noches,
		PrecioFinal: quote.Total,
		Estado:      models.ReservationPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.Repo.CreateIfAvailable(ctx, res); err != nil {
		if errors.Is(err, reservationRepo.ErrOverlap) {
			return nil, NewConflictError(msgUnavailableDates)
		}
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}

	if s.Scheduler != nil {
		if err := s.Scheduler.ScheduleExpiry(res.ID, now.Add(s.pendingTTL())); err != nil {
			// The reservation stands; a missed expiry only delays reclamation.
			logger.Error("failed to schedule reservation expiry",
				zap.String("reservationID", res.ID), zap.Error(err))
		}
	}

	logger.Info("reservation created",
		zap.String("reservationID", res.ID),
		zap.String("cabanaID", cabin.ID),
		zap.Int("noches", quote.Noches),
		zap.Float64("precioFinal", quote.Total))
	return res, nil
}

// GetByID returns a reservation by id.
func (s *DefaultReservationService) GetByID(ctx context.Context, id string) (*models.Reservation, error) {
	res, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrNotFound) {
			return nil, NewNotFoundError("reserva no encontrada")
		}
		return nil, err
	}
	return res, nil
}

// ListByTeam returns every reservation placed against a team's cabañas.
func (s *DefaultReservationService) ListByTeam(ctx context.Context, teamID string) ([]models.Reservation, error) {
	cabins, err := s.CabinRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("team cabin lookup failed: %w", err)
	}
	ids := make([]string, 0, len(cabins))
	for _, c := range cabins {
		ids = append(ids, c.ID)
	}
	return s.Repo.ListByCabanas(ctx, ids)
}
