// Package services contains stateless domain services for the inventory
// bounded context. Domain services enforce business rules that operate purely
// on domain types and have zero external dependencies beyond stdlib and the
// domain layer.
package services

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/ghuser/stocktrack/services/inventory/domain/models"
)

// ValidateItemForCheckIn performs cross-field validation on a fully-constructed
// Item aggregate before it is persisted. It assumes the Item was built via
// models.NewItem (so defaults are already applied) and adds business-level
// checks that span multiple fields.
func ValidateItemForCheckIn(item *models.Item) error {
	if item == nil {
		return fmt.Errorf("item cannot be nil")
	}

	if item.ID == uuid.Nil {
		return fmt.Errorf("id must be set")
	}

	if item.Barcode == "" {
		return fmt.Errorf("barcode must be set")
	}

	if item.Name == "" {
		return fmt.Errorf("name must be set")
	}

	if item.Quantity < 1 {
		return fmt.Errorf("quantity must be at least 1")
	}

	if item.ScannedAt.IsZero() {
		return fmt.Errorf("scanned_at must be set")
	}

	return nil
}
