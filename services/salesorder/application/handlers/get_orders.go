package handlers

import (
	"net/http"

	"github.com/ghuser/stocktrack/pkg/auth"
	"github.com/ghuser/stocktrack/pkg/errhttp"
	"github.com/ghuser/stocktrack/pkg/httpx"
	appsvcs "github.com/ghuser/stocktrack/services/salesorder/application/services"
	salesorderdomain "github.com/ghuser/stocktrack/services/salesorder/domain"
)

// GetOrdersHandler handles GET /api/sales-orders, proxying to the upstream
// with the caller's session. Query parameters pass through untouched.
type GetOrdersHandler struct {
	svc *appsvcs.Services
}

// NewGetOrdersHandler returns a GetOrdersHandler backed by the given services.
func NewGetOrdersHandler(svc *appsvcs.Services) *GetOrdersHandler {
	return &GetOrdersHandler{svc: svc}
}

// Execute fetches sales orders for the authenticated session.
func (h *GetOrdersHandler) Execute(w http.ResponseWriter, r *http.Request) {
	session, err := auth.SessionFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, salesorderdomain.ErrNoSession)
		return
	}

	orders, err := h.svc.Orders.Fetch(r.Context(), session.ID, r.URL.Query())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, orders)
}
