package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/stocktrack/services/inventory/domain/models"
)

// LocationRepository is the persistence interface for the Location aggregate.
type LocationRepository interface {
	// Save persists a new Location.
	Save(ctx context.Context, loc *models.Location) error

	// GetByID retrieves a Location. Returns ErrLocationNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Location, error)

	// GetByIDs retrieves the locations for the given ids, keyed by id.
	// Missing ids are simply absent from the map.
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*models.Location, error)

	// FindAll retrieves every location, newest first.
	FindAll(ctx context.Context) ([]*models.Location, error)

	// Update persists changes to an existing Location.
	// Returns ErrLocationNotFound if absent.
	Update(ctx context.Context, loc *models.Location) error

	// Delete removes a location. Items referencing it fall back to the
	// pending pool via the FK's ON DELETE SET NULL.
	// Returns ErrLocationNotFound if absent.
	Delete(ctx context.Context, id uuid.UUID) error
}
