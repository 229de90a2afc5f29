package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/sessions"

	"github.com/ghuser/stocktrack/pkg/auth"
	"github.com/ghuser/stocktrack/pkg/errhttp"
	"github.com/ghuser/stocktrack/pkg/httpx"
	"github.com/ghuser/stocktrack/pkg/logger"
	pkgvalidator "github.com/ghuser/stocktrack/pkg/validator"
	appsvcs "github.com/ghuser/stocktrack/services/salesorder/application/services"
)

// LoginRequest is the request body for POST /api/auth/login.
type LoginRequest struct {
	LoginID  string `json:"loginId" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is returned on successful login. ExpiresAt is null when the
// upstream reports no expiry.
type LoginResponse struct {
	SessionID string     `json:"sessionId"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

// PostLoginHandler handles POST /api/auth/login.
type PostLoginHandler struct {
	svc   *appsvcs.Services
	store sessions.Store
	log   logger.Logger
}

// NewPostLoginHandler returns a PostLoginHandler backed by the given services
// and session store.
func NewPostLoginHandler(svc *appsvcs.Services, store sessions.Store, log logger.Logger) *PostLoginHandler {
	return &PostLoginHandler{svc: svc, store: store, log: log}
}

// Execute authenticates against the upstream and stores the session cookie.
func (h *PostLoginHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[LoginRequest](w, r)
	if !ok {
		return
	}

	session, err := h.svc.Orders.Login(r.Context(), req.LoginID, req.Password)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	if err := auth.SaveSession(h.store, w, r, session.ID, session.ExpiresAt); err != nil {
		h.log.ErrorContext(r.Context(), "save session", "error", err)
		httpx.JSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	resp := LoginResponse{SessionID: session.ID}
	if !session.ExpiresAt.IsZero() {
		resp.ExpiresAt = &session.ExpiresAt
	}
	httpx.JSON(w, http.StatusOK, resp)
}
