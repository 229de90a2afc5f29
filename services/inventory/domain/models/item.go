package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Item is the core aggregate for this bounded context: one check-in event for
// a physical product. Metadata is schemaless and carried through untouched.
type Item struct {
	ID         uuid.UUID
	Barcode    Barcode
	Name       string
	Quantity   Quantity
	ScannedAt  time.Time
	Metadata   map[string]any
	LocationID *uuid.UUID // nil = pending (not yet assigned to a storage location)
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// DefaultItemName derives the placeholder name for a check-in that supplied
// no name: "Item {barcode}".
func DefaultItemName(barcode Barcode) string {
	return fmt.Sprintf("Item %s", barcode)
}

// NewItem constructs a valid Item aggregate with generated ID and current
// timestamps, applying the check-in defaults: empty name becomes
// DefaultItemName, zero quantity becomes DefaultQuantity, scannedAt is set
// server-side. A freshly checked-in item is always unassigned.
func NewItem(barcode Barcode, name string, quantity Quantity, metadata map[string]any) (*Item, error) {
	if name == "" {
		name = DefaultItemName(barcode)
	}
	if quantity == 0 {
		quantity = DefaultQuantity
	}
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1")
	}
	now := time.Now().UTC()
	return &Item{
		ID:        uuid.New(),
		Barcode:   barcode,
		Name:      name,
		Quantity:  quantity,
		ScannedAt: now,
		Metadata:  metadata,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Pending reports whether the item still awaits a storage location.
func (i *Item) Pending() bool {
	return i.LocationID == nil
}

// AssignLocation moves the item to the given storage location.
func (i *Item) AssignLocation(locationID uuid.UUID) {
	id := locationID
	i.LocationID = &id
	i.UpdatedAt = time.Now().UTC()
}

// ClearLocation returns the item to the pending pool.
func (i *Item) ClearLocation() {
	i.LocationID = nil
	i.UpdatedAt = time.Now().UTC()
}
