package events

import (
	"time"

	"github.com/google/uuid"
)

// Watermill topics for the inventory bounded context.
const (
	// TopicItemCheckedIn is published when an item is checked in.
	TopicItemCheckedIn = "item.checked_in"

	// TopicItemAssigned is published when an item is assigned to a location.
	TopicItemAssigned = "item.assigned"
)

// ItemCheckedInEvent is published after a new Item is persisted.
// Consumers subscribe via EventBus.Subscribe(ctx, events.TopicItemCheckedIn).
type ItemCheckedInEvent struct {
	EventID    uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version    int       `json:"version"`  // Schema version; increment on breaking changes
	ItemID     uuid.UUID `json:"item_id"`
	Barcode    string    `json:"barcode"`
	Name       string    `json:"name"`
	Quantity   int       `json:"quantity"`
	ScannedAt  time.Time `json:"scanned_at"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ItemAssignedEvent is published after an item is moved to a storage location.
type ItemAssignedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	ItemID     uuid.UUID `json:"item_id"`
	LocationID uuid.UUID `json:"location_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
