package handlers

import (
	"net/http"

	"github.com/ghuser/stocktrack/pkg/errhttp"
	"github.com/ghuser/stocktrack/pkg/httpx"
	appsvcs "github.com/ghuser/stocktrack/services/inventory/application/services"
)

// GetLocationsHandler handles GET /api/locations.
type GetLocationsHandler struct {
	svc *appsvcs.Services
}

// NewGetLocationsHandler returns a GetLocationsHandler backed by the given services.
func NewGetLocationsHandler(svc *appsvcs.Services) *GetLocationsHandler {
	return &GetLocationsHandler{svc: svc}
}

// Execute lists all storage locations, newest first.
func (h *GetLocationsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	locs, err := h.svc.Locations.List(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	resp := make([]*LocationResponse, len(locs))
	for i, loc := range locs {
		resp[i] = toLocationResponse(loc)
	}
	httpx.JSON(w, http.StatusOK, resp)
}
