package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/stocktrack/pkg/errhttp"
	"github.com/ghuser/stocktrack/pkg/httpx"
	pkgvalidator "github.com/ghuser/stocktrack/pkg/validator"
	appsvcs "github.com/ghuser/stocktrack/services/inventory/application/services"
	inventorydomain "github.com/ghuser/stocktrack/services/inventory/domain"
	"github.com/ghuser/stocktrack/services/inventory/domain/models"
)

// OptionalUUID distinguishes an absent JSON field from an explicit null.
// "location": null moves an item back to the pending pool; omitting the field
// leaves the assignment untouched.
type OptionalUUID struct {
	Set   bool
	Value *uuid.UUID
}

// UnmarshalJSON marks the field as present and parses null or a uuid string.
func (o *OptionalUUID) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("location must be a uuid string or null")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return fmt.Errorf("location must be a valid uuid: %w", err)
	}
	o.Value = &id
	return nil
}

// UpdateItemRequest is the request body for PUT /api/items/{id}.
// All fields are optional; omitted fields are left unchanged.
type UpdateItemRequest struct {
	Barcode  *string        `json:"barcode" validate:"omitempty,max=128"`
	Name     *string        `json:"name" validate:"omitempty,max=255"`
	Quantity *int           `json:"quantity" validate:"omitempty,min=1"`
	Metadata map[string]any `json:"metadata"`
	Location OptionalUUID   `json:"location"`
}

// PutItemHandler handles PUT /api/items/{id} (partial update, including
// location assignment).
type PutItemHandler struct {
	svc *appsvcs.Services
}

// NewPutItemHandler returns a PutItemHandler backed by the given services.
func NewPutItemHandler(svc *appsvcs.Services) *PutItemHandler {
	return &PutItemHandler{svc: svc}
}

// Execute updates an item and returns it with the location expanded.
func (h *PutItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		errhttp.WriteError(w, inventorydomain.ErrItemNotFound)
		return
	}

	req, ok := pkgvalidator.ValidateRequest[UpdateItemRequest](w, r)
	if !ok {
		return
	}

	item, err := h.svc.Items.Update(r.Context(), id, appsvcs.UpdateItemParams{
		Barcode:     req.Barcode,
		Name:        req.Name,
		Quantity:    req.Quantity,
		Metadata:    req.Metadata,
		LocationSet: req.Location.Set,
		LocationID:  req.Location.Value,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	locations, err := h.svc.Items.ExpandLocations(r.Context(), []*models.Item{item})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toItemResponse(item, locations))
}
