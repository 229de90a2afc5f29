package handlers

import (
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/ghuser/stocktrack/pkg/errhttp"
	"github.com/ghuser/stocktrack/pkg/httpx"
	pkgvalidator "github.com/ghuser/stocktrack/pkg/validator"
	appsvcs "github.com/ghuser/stocktrack/services/inventory/application/services"
)

const maxUploadMemory = 10 << 20 // 10 MB, matches the router body cap

// CreateLocationRequest is the request body for POST /api/locations.
// Sent as JSON, or as multipart/form-data when a photo is attached.
type CreateLocationRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"omitempty,max=2000"`
}

// PostLocationHandler handles POST /api/locations.
type PostLocationHandler struct {
	svc *appsvcs.Services
}

// NewPostLocationHandler returns a PostLocationHandler backed by the given services.
func NewPostLocationHandler(svc *appsvcs.Services) *PostLocationHandler {
	return &PostLocationHandler{svc: svc}
}

// Execute creates a storage location, processing and storing the photo when
// one is attached.
func (h *PostLocationHandler) Execute(w http.ResponseWriter, r *http.Request) {
	var (
		req   *CreateLocationRequest
		image io.Reader
	)

	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "Invalid multipart form")
			return
		}
		req = &CreateLocationRequest{
			Name:        r.FormValue("name"),
			Description: r.FormValue("description"),
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
		req, ok = pkgvalidator.ValidateRequest[CreateLocationRequest](w, r)
		if !ok {
			return
		}
	}

	loc, err := h.svc.Locations.Create(r.Context(), appsvcs.CreateLocationParams{
		Name:        req.Name,
		Description: req.Description,
		Image:       image,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toLocationResponse(loc))
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

// formImage extracts the optional "image" part. Returns (nil, true) when the
// part is absent, (nil, false) after writing an error response.
func formImage(w http.ResponseWriter, r *http.Request) (multipart.File, bool) {
	file, _, err := r.FormFile("image")
	if err == http.ErrMissingFile {
		return nil, true
	}
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid image upload")
		return nil, false
	}
	return file, true
}
