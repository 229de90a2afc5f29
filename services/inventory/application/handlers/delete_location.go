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

// DeleteLocationHandler handles DELETE /api/locations/{id}.
type DeleteLocationHandler struct {
	svc *appsvcs.Services
}

// NewDeleteLocationHandler returns a DeleteLocationHandler backed by the given services.
func NewDeleteLocationHandler(svc *appsvcs.Services) *DeleteLocationHandler {
	return &DeleteLocationHandler{svc: svc}
}

// Execute deletes a storage location. Items assigned to it drop back to the
// pending pool.
func (h *DeleteLocationHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		errhttp.WriteError(w, inventorydomain.ErrLocationNotFound)
		return
	}

	if err := h.svc.Locations.Delete(r.Context(), id); err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, MessageResponse{Message: "Location deleted"})
}
