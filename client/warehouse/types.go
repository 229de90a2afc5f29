// Package warehouse is the typed Go client for the inventory API. It mirrors
// the wire shapes of the server handlers and normalizes the polymorphic
// location field at the decode boundary.
package warehouse

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// LocationRefKind enumerates the shapes the item "location" field can take.
type LocationRefKind int

const (
	// LocationUnassigned means the item is pending (location null).
	LocationUnassigned LocationRefKind = iota

	// LocationReference means only the location id is known.
	LocationReference

	// LocationExpanded means the full location object was served inline.
	LocationExpanded
)

// Location is a storage place in the warehouse.
type Location struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// LocationRef is a tagged union over the three wire forms of an item's
// location: null, a bare id string, or the expanded object. Code past the
// decode boundary switches on Kind instead of re-sniffing JSON.
type LocationRef struct {
	Kind     LocationRefKind
	ID       uuid.UUID // set for Reference and Expanded
	Location *Location // set for Expanded only
}

// Unassigned reports whether the item has no location.
func (r LocationRef) Unassigned() bool {
	return r.Kind == LocationUnassigned
}

// UnmarshalJSON normalizes null, an id string, or a location object.
func (r *LocationRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = LocationRef{Kind: LocationUnassigned}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode location reference: %w", err)
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return fmt.Errorf("parse location id: %w", err)
		}
		*r = LocationRef{Kind: LocationReference, ID: id}
		return nil
	}
	var loc Location
	if err := json.Unmarshal(data, &loc); err != nil {
		return fmt.Errorf("decode location object: %w", err)
	}
	*r = LocationRef{Kind: LocationExpanded, ID: loc.ID, Location: &loc}
	return nil
}

// MarshalJSON emits null for unassigned and the id string otherwise, which is
// the shape the update endpoint accepts.
func (r LocationRef) MarshalJSON() ([]byte, error) {
	if r.Kind == LocationUnassigned {
		return []byte("null"), nil
	}
	return json.Marshal(r.ID.String())
}

// Item is a checked-in item as served by the API.
type Item struct {
	ID        uuid.UUID      `json:"id"`
	Barcode   string         `json:"barcode"`
	Name      string         `json:"name"`
	Quantity  int            `json:"quantity"`
	ScannedAt time.Time      `json:"scannedAt"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Location  LocationRef    `json:"location"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// FieldError is one entry of a validation failure response.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError is a non-2xx response decoded from the error body.
type APIError struct {
	Status  int
	Message string
	Fields  []FieldError
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("api error %d: %s (%d field errors)", e.Status, e.Message, len(e.Fields))
	}
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// NotFound reports whether the error is a 404.
func (e *APIError) NotFound() bool {
	return e.Status == 404
}
