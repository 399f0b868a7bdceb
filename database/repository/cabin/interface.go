package cabinRepo

import (
	"context"
	"errors"

	"cabanero/models"
)

// ErrNotFound is returned when no cabaña matches the given id.
var ErrNotFound = errors.New("cabin not found")

// CabinRepository is the read-only registry of cabañas. The reservation
// engine never writes here; cabaña CRUD belongs to the team back office.
type CabinRepository interface {
	GetByID(ctx context.Context, id string) (*models.Cabin, error)
	List(ctx context.Context) ([]models.Cabin, error)
	ListByTeam(ctx context.Context, teamID string) ([]models.Cabin, error)
}
