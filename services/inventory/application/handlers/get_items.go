package handlers

import (
	"net/http"

	"github.com/ghuser/stocktrack/pkg/errhttp"
	"github.com/ghuser/stocktrack/pkg/httpx"
	appsvcs "github.com/ghuser/stocktrack/services/inventory/application/services"
	"github.com/ghuser/stocktrack/services/inventory/domain/repositories"
)

// GetItemsHandler handles GET /api/items with optional filters:
//
//	?unassigned=true  - only items without a location (the pending pool)
//	?status=pending   - same filter, alternate spelling
//	?barcode=...      - only items with this exact barcode
type GetItemsHandler struct {
	svc *appsvcs.Services
}

// NewGetItemsHandler returns a GetItemsHandler backed by the given services.
func NewGetItemsHandler(svc *appsvcs.Services) *GetItemsHandler {
	return &GetItemsHandler{svc: svc}
}

// Execute lists items newest-first with locations expanded.
func (h *GetItemsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repositories.ItemFilter{
		Unassigned: q.Get("unassigned") == "true" || q.Get("status") == "pending",
		Barcode:    q.Get("barcode"),
	}

	items, err := h.svc.Items.List(r.Context(), filter)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	locations, err := h.svc.Items.ExpandLocations(r.Context(), items)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	resp := make([]ItemResponse, len(items))
	for i, item := range items {
		resp[i] = toItemResponse(item, locations)
	}
	httpx.JSON(w, http.StatusOK, resp)
}
