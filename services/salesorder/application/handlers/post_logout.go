package handlers

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/ghuser/stocktrack/pkg/auth"
	"github.com/ghuser/stocktrack/pkg/httpx"
	"github.com/ghuser/stocktrack/pkg/logger"
)

// PostLogoutHandler handles POST /api/auth/logout.
type PostLogoutHandler struct {
	store sessions.Store
	log   logger.Logger
}

// NewPostLogoutHandler returns a PostLogoutHandler using the given session store.
func NewPostLogoutHandler(store sessions.Store, log logger.Logger) *PostLogoutHandler {
	return &PostLogoutHandler{store: store, log: log}
}

// Execute clears the session cookie. Logging out without a session succeeds.
func (h *PostLogoutHandler) Execute(w http.ResponseWriter, r *http.Request) {
	if err := auth.ClearSession(h.store, w, r); err != nil {
		h.log.WarnContext(r.Context(), "clear session", "error", err)
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}
