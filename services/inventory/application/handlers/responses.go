package handlers

import (
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/stocktrack/services/inventory/domain/models"
)

// LocationResponse is the wire shape of a storage location.
type LocationResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ItemResponse is the wire shape of a checked-in item. Location is null while
// the item is pending and the full location object once assigned.
type ItemResponse struct {
	ID        uuid.UUID         `json:"id"`
	Barcode   string            `json:"barcode"`
	Name      string            `json:"name"`
	Quantity  int               `json:"quantity"`
	ScannedAt time.Time         `json:"scannedAt"`
	Metadata  map[string]any    `json:"metadata,omitempty"`
	Location  *LocationResponse `json:"location"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// MessageResponse is returned by delete endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}

func toLocationResponse(loc *models.Location) *LocationResponse {
	if loc == nil {
		return nil
	}
	return &LocationResponse{
		ID:          loc.ID,
		Name:        loc.Name.String(),
		Description: loc.Description,
		ImageURL:    loc.ImageURL,
		CreatedAt:   loc.CreatedAt,
		UpdatedAt:   loc.UpdatedAt,
	}
}

// toItemResponse expands the item's location from the given lookup map.
// An assigned location missing from the map (deleted concurrently) is served
// as null rather than failing the request.
func toItemResponse(item *models.Item, locations map[uuid.UUID]*models.Location) ItemResponse {
	resp := ItemResponse{
		ID:        item.ID,
		Barcode:   item.Barcode.String(),
		Name:      item.Name,
		Quantity:  item.Quantity.Int(),
		ScannedAt: item.ScannedAt,
		Metadata:  item.Metadata,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
	if item.LocationID != nil {
		resp.Location = toLocationResponse(locations[*item.LocationID])
	}
	return resp
}
