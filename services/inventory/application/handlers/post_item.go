package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ghuser/stocktrack/pkg/errhttp"
	"github.com/ghuser/stocktrack/pkg/httpx"
	pkgvalidator "github.com/ghuser/stocktrack/pkg/validator"
	appsvcs "github.com/ghuser/stocktrack/services/inventory/application/services"
	"github.com/ghuser/stocktrack/services/inventory/domain/models"
)

// CreateItemRequest is the request body for POST /api/items.
// Name defaults to "Item {barcode}" and quantity to 1 when omitted.
type CreateItemRequest struct {
	Barcode  string         `json:"barcode" validate:"required,max=128"`
	Name     string         `json:"name" validate:"omitempty,max=255"`
	Quantity *int           `json:"quantity" validate:"omitempty,min=1"`
	Metadata map[string]any `json:"metadata"`
	Location *uuid.UUID     `json:"location"`
}

// PostItemHandler handles POST /api/items (check-in).
type PostItemHandler struct {
	svc *appsvcs.Services
}

// NewPostItemHandler returns a PostItemHandler backed by the given services.
func NewPostItemHandler(svc *appsvcs.Services) *PostItemHandler {
	return &PostItemHandler{svc: svc}
}

// Execute checks in a new item.
func (h *PostItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateItemRequest](w, r)
	if !ok {
		return
	}

	params := appsvcs.CheckInParams{
		Barcode:    req.Barcode,
		Name:       req.Name,
		Metadata:   req.Metadata,
		LocationID: req.Location,
	}
	if req.Quantity != nil {
		params.Quantity = *req.Quantity
	}

	item, err := h.svc.Items.CheckIn(r.Context(), params)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	locations, err := h.svc.Items.ExpandLocations(r.Context(), []*models.Item{item})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toItemResponse(item, locations))
}
