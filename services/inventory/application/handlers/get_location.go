package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/stocktrack/pkg/errhttp"
	"github.com/ghuser/stocktrack/pkg/httpx"
	appsvcs "github.com/ghuser/stocktrack/services/inventory/application/services"
	inventorydomain "github.com/ghuser/stocktrack/services/inventory/domain"
)

// GetLocationHandler handles GET /api/locations/{id}.
type GetLocationHandler struct {
	svc *appsvcs.Services
}

// NewGetLocationHandler returns a GetLocationHandler backed by the given services.
func NewGetLocationHandler(svc *appsvcs.Services) *GetLocationHandler {
	return &GetLocationHandler{svc: svc}
}

// Execute fetches one storage location.
func (h *GetLocationHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		errhttp.WriteError(w, inventorydomain.ErrLocationNotFound)
		return
	}

	loc, err := h.svc.Locations.GetByID(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toLocationResponse(loc))
}
