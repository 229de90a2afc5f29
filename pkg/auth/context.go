package auth

import (
	"context"
	"errors"
	"time"
)

// Session is the sales-order integration session carried in request context.
type Session struct {
	ID        string
	ExpiresAt time.Time // zero when the upstream reported no expiry
}

// contextKey is an unexported type to prevent key collisions in context.
type contextKey string

const sessionCtxKey contextKey = "sales_session"

// ErrSessionNotFound is returned when no session exists in the request context.
// Handlers should return 401 when this error occurs.
var ErrSessionNotFound = errors.New("session not found in context")

// SessionFromCtx extracts the authenticated sales-order session from the
// request context. Returns ErrSessionNotFound for unauthenticated requests.
func SessionFromCtx(ctx context.Context) (Session, error) {
	s, ok := ctx.Value(sessionCtxKey).(Session)
	if !ok || s.ID == "" {
		return Session{}, ErrSessionNotFound
	}
	return s, nil
}

// WithSession returns a new context with the given session attached.
// Used by RequireSession after validating the cookie.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey, s)
}
