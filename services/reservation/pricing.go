package reservation

import (
	"math"
	"time"

	"cabanero/models"
)

// ComputeStay derives the quote for a stay: nights is the calendar-day
// difference rounded up, total is nights times the nightly rate. Returns nil
// when checkOut is not after checkIn; a same-day checkout yields no quote.
//
// This is the single pricing function for the whole system. The quote
// endpoint and the authoritative create both call it, so the price shown to
// the client and the price charged can never diverge.
func ComputeStay(checkIn, checkOut time.Time, nightlyRate float64) *models.StayQuote {
	if !checkOut.After(checkIn) {
		return nil
	}
	nights := int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
	if nights < 1 {
		return nil
	}
	return &models.StayQuote{
		Noches: nights,
		Total:  float64(nights) * nightlyRate,
	}
}

// parseInterval parses two wire dates and enforces checkIn < checkOut.
func parseInterval(fechaInicio, fechaFin string) (time.Time, time.Time, error) {
	checkIn, err := time.Parse(models.DateLayout, fechaInicio)
	if err != nil {
		return time.Time{}, time.Time{}, NewValidationError("formato de fecha inválido, use YYYY-MM-DD")
	}
	checkOut, err := time.Parse(models.DateLayout, fechaFin)
	if err != nil {
		return time.Time{}, time.Time{}, NewValidationError("formato de fecha inválido, use YYYY-MM-DD")
	}
	if !checkOut.After(checkIn) {
		return time.Time{}, time.Time{}, NewValidationError("la fecha de salida debe ser posterior a la fecha de entrada")
	}
	return checkIn, checkOut, nil
}
