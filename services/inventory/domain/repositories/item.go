package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/stocktrack/services/inventory/domain/models"
)

// ItemFilter narrows list queries. Zero value means no filtering; results are
// always ordered by scanned_at descending (newest check-ins first).
type ItemFilter struct {
	// Unassigned restricts to items with no location (the pending pool).
	Unassigned bool

	// Barcode restricts to items carrying this exact barcode.
	Barcode string
}

// ItemRepository is the persistence interface for the Item aggregate.
// The domain layer owns this interface; infrastructure implements it.
type ItemRepository interface {
	// Save persists a new Item and publishes ItemCheckedInEvent in the same
	// transaction.
	Save(ctx context.Context, item *models.Item) error

	// GetByID retrieves an Item. Returns ErrItemNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error)

	// Find retrieves items matching the filter, newest first.
	Find(ctx context.Context, filter ItemFilter) ([]*models.Item, error)

	// Update persists changes to an existing Item. assigned marks that the
	// update attached a new location; the repository then publishes
	// ItemAssignedEvent in the same transaction. Clearing a location is not
	// an assignment. Returns ErrItemNotFound if absent.
	Update(ctx context.Context, item *models.Item, assigned bool) error

	// Delete removes an item by ID. Returns ErrItemNotFound if absent.
	Delete(ctx context.Context, id uuid.UUID) error
}
