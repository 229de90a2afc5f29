package auth

import (
	"net/http"
	"time"

	"github.com/gorilla/sessions"

	"github.com/ghuser/stocktrack/pkg/httpx"
	"github.com/ghuser/stocktrack/pkg/logger"
)

const sessionName = "stocktrack_session"
const (
	sessionIDKey        = "sales_session_id"
	sessionExpiresAtKey = "sales_session_expires_at" // unix milliseconds, 0 = no expiry
)

// RequireSession is a chi middleware that enforces an authenticated
// sales-order session. It reads the session cookie, extracts the upstream
// session id, and injects it into the request context. An expired session is
// deleted and treated the same as a missing one.
// Returns 401 Unauthorized so the caller can redirect to login.
//
// After this middleware, handlers can safely call auth.SessionFromCtx(r.Context()).
func RequireSession(store sessions.Store, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := store.Get(r, sessionName)
			if err != nil {
				log.WarnContext(r.Context(), "invalid session cookie", "error", err)
				httpx.JSONError(w, http.StatusUnauthorized, "No session found")
				return
			}

			sessionID, ok := session.Values[sessionIDKey].(string)
			if !ok || sessionID == "" {
				httpx.JSONError(w, http.StatusUnauthorized, "No session found")
				return
			}

			var expiresAt time.Time
			if ms, ok := session.Values[sessionExpiresAtKey].(int64); ok && ms > 0 {
				expiresAt = time.UnixMilli(ms)
				if time.Now().After(expiresAt) {
					// Purge the expired session so the next request starts clean.
					session.Options.MaxAge = -1
					if err := session.Save(r, w); err != nil {
						log.WarnContext(r.Context(), "purge expired session", "error", err)
					}
					httpx.JSONError(w, http.StatusUnauthorized, "Session expired")
					return
				}
			}

			ctx := WithSession(r.Context(), Session{ID: sessionID, ExpiresAt: expiresAt})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SaveSession writes the upstream sales-order session into the cookie session.
// expiresAt may be zero when the upstream does not report an expiry.
func SaveSession(store sessions.Store, w http.ResponseWriter, r *http.Request, sessionID string, expiresAt time.Time) error {
	session, err := store.Get(r, sessionName)
	if err != nil {
		// Tampered or stale cookie; Get returns a usable fresh session anyway.
		session, _ = store.New(r, sessionName)
	}
	session.Values[sessionIDKey] = sessionID
	var ms int64
	if !expiresAt.IsZero() {
		ms = expiresAt.UnixMilli()
	}
	session.Values[sessionExpiresAtKey] = ms
	return session.Save(r, w)
}

// ClearSession deletes the session cookie and its server-side state.
func ClearSession(store sessions.Store, w http.ResponseWriter, r *http.Request) error {
	session, err := store.Get(r, sessionName)
	if err != nil {
		return nil
	}
	session.Options.MaxAge = -1
	return session.Save(r, w)
}
