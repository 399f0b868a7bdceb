package reservation

import (
	"context"
	"errors"

	cabinRepo "cabanero/database/repository/cabin"
	"cabanero/models"
	"cabanero/utils"

	"go.uber.org/zap"
)

const msgUnavailableDates = "la cabaña no está disponible para las fechas seleccionadas"

// CheckAvailability reports whether a cabaña is free for the half-open
// interval [fechaInicio, fechaFin). A cabaña under mantenimiento or marked
// ocupada is unavailable regardless of its calendar. Backend failures fail
// closed: the interval is reported unavailable with a generic reason.
func (s *DefaultReservationService) CheckAvailability(ctx context.Context, cabanaID, fechaInicio, fechaFin string) (AvailabilityResult, error) {
	logger := utils.GetLogger()

	if _, _, err := parseInterval(fechaInicio, fechaFin); err != nil {
		return AvailabilityResult{}, err
	}

	cabin, err := s.CabinRepo.GetByID(ctx, cabanaID)
	if err != nil {
		if errors.Is(err, cabinRepo.ErrNotFound) {
			return AvailabilityResult{}, NewNotFoundError("cabaña no encontrada")
		}
		logger.Error("availability: cabin lookup failed",
			zap.String("cabanaID", cabanaID), zap.Error(err))
		return AvailabilityResult{Available: false, Reason: "no se pudo verificar la disponibilidad"}, nil
	}

	if cabin.Estado != models.CabinAvailable {
		return AvailabilityResult{Available: false, Reason: "la cabaña no está disponible actualmente"}, nil
	}

	n, err := s.Repo.CountOverlapping(ctx, cabanaID, fechaInicio, fechaFin)
	if err != nil {
		logger.Error("availability: overlap query failed",
			zap.String("cabanaID", cabanaID), zap.Error(err))
		return AvailabilityResult{Available: false, Reason: "no se pudo verificar la disponibilidad"}, nil
	}
	if n > 0 {
		return AvailabilityResult{Available: false, Reason: msgUnavailableDates}, nil
	}

	return AvailabilityResult{Available: true}, nil
}

// Quote returns the server-side stay quote for a cabaña and interval.
func (s *DefaultReservationService) Quote(ctx context.Context, cabanaID, fechaInicio, fechaFin string) (*models.StayQuote, error) {
	checkIn, checkOut, err := parseInterval(fechaInicio, fechaFin)
	if err != nil {
		return nil, err
	}

	cabin, err := s.CabinRepo.GetByID(ctx, cabanaID)
	if err != nil {
		if errors.Is(err, cabinRepo.ErrNotFound) {
			return nil, NewNotFoundError("cabaña no encontrada")
		}
		return nil, err
	}

	quote := ComputeStay(checkIn, checkOut, cabin.CostoPorNoche)
	if quote == nil {
		return nil, NewValidationError("la estancia debe ser de al menos una noche")
	}
	return quote, nil
}
