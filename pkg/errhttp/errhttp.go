// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/stocktrack/pkg/httpx"
	inventorydomain "github.com/ghuser/stocktrack/services/inventory/domain"
	salesorderdomain "github.com/ghuser/stocktrack/services/salesorder/domain"
)

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors.
//
// Not-found errors deliberately use the bare sentinel message ("Item not
// found", "Location not found") rather than the wrapped chain — clients key
// off those exact strings.
func WriteError(w http.ResponseWriter, err error) {
	status := mapErrorToStatus(err)
	msg := err.Error()
	switch {
	case errors.Is(err, inventorydomain.ErrItemNotFound):
		msg = inventorydomain.ErrItemNotFound.Error()
	case errors.Is(err, inventorydomain.ErrLocationNotFound):
		msg = inventorydomain.ErrLocationNotFound.Error()
	}
	httpx.JSONError(w, status, msg)
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, inventorydomain.ErrItemNotFound),
		errors.Is(err, inventorydomain.ErrLocationNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, inventorydomain.ErrInvalidBarcode),
		errors.Is(err, inventorydomain.ErrInvalidQuantity),
		errors.Is(err, inventorydomain.ErrInvalidLocationName),
		errors.Is(err, inventorydomain.ErrUnsupportedImage):
		return http.StatusBadRequest // 400
	case errors.Is(err, salesorderdomain.ErrNoSession),
		errors.Is(err, salesorderdomain.ErrSessionExpired),
		errors.Is(err, salesorderdomain.ErrLoginFailed):
		return http.StatusUnauthorized // 401
	case errors.Is(err, salesorderdomain.ErrUpstream):
		return http.StatusBadGateway // 502
	default:
		return http.StatusInternalServerError // 500
	}
}
