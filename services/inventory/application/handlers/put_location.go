package handlers

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/stocktrack/pkg/errhttp"
	"github.com/ghuser/stocktrack/pkg/httpx"
	pkgvalidator "github.com/ghuser/stocktrack/pkg/validator"
	appsvcs "github.com/ghuser/stocktrack/services/inventory/application/services"
	inventorydomain "github.com/ghuser/stocktrack/services/inventory/domain"
)

// UpdateLocationRequest is the request body for PUT /api/locations/{id}.
// Omitted fields are left unchanged.
type UpdateLocationRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=255"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

// PutLocationHandler handles PUT /api/locations/{id}.
type PutLocationHandler struct {
	svc *appsvcs.Services
}

// NewPutLocationHandler returns a PutLocationHandler backed by the given services.
func NewPutLocationHandler(svc *appsvcs.Services) *PutLocationHandler {
	return &PutLocationHandler{svc: svc}
}

// Execute updates a storage location. A new photo replaces the stored one.
func (h *PutLocationHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		errhttp.WriteError(w, inventorydomain.ErrLocationNotFound)
		return
	}

	var (
		req   *UpdateLocationRequest
		image io.Reader
	)

	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "Invalid multipart form")
			return
		}
		req = &UpdateLocationRequest{}
		if vals, ok := r.MultipartForm.Value["name"]; ok && len(vals) > 0 {
			req.Name = &vals[0]
		}
		if vals, ok := r.MultipartForm.Value["description"]; ok && len(vals) > 0 {
			req.Description = &vals[0]
		}
		if !pkgvalidator.ValidateInto(w, req) {
			return
		}
		file, ok := formImage(w, r)
		if file == nil && !ok {
			return
		}
		if file != nil {
			defer file.Close() //nolint:errcheck
			image = file
		}
	} else {
		var ok bool
		req, ok = pkgvalidator.ValidateRequest[UpdateLocationRequest](w, r)
		if !ok {
			return
		}
	}

	loc, err := h.svc.Locations.Update(r.Context(), id, appsvcs.UpdateLocationParams{
		Name:        req.Name,
		Description: req.Description,
		Image:       image,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toLocationResponse(loc))
}
