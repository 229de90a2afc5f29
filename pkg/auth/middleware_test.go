package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/sessions"

	"github.com/ghuser/stocktrack/pkg/config"
	"github.com/ghuser/stocktrack/pkg/logger"
)

// newTestStore returns a gorilla CookieStore (no Redis required) for unit tests.
// In production the RedisStore is used; the sessions.Store interface is identical.
func newTestStore() sessions.Store {
	return sessions.NewCookieStore(
		[]byte("test-auth-key-must-be-32-bytes!!"),
		[]byte("test-enc-key-must-be-32-bytes!!!"),
	)
}

// newTestLogger creates a logger that discards output.
func newTestLogger() logger.Logger {
	return logger.New(&config.Config{LogLevel: "error"})
}

// requestWithSession builds an *http.Request carrying a valid session cookie
// with the given sales-order session id and expiry.
func requestWithSession(t *testing.T, store sessions.Store, sessionID string, expiresAt time.Time) *http.Request {
	t.Helper()

	// Write the session cookie into a recorder, then copy it to the real request.
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/sales-orders", nil)

	if err := SaveSession(store, w, r, sessionID, expiresAt); err != nil {
		t.Fatalf("save session: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/sales-orders", nil)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestRequireSession_ValidSession(t *testing.T) {
	store := newTestStore()
	log := newTestLogger()

	var captured Session
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = SessionFromCtx(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	r := requestWithSession(t, store, "sess-abc", time.Now().Add(time.Hour))
	w := httptest.NewRecorder()
	RequireSession(store, log)(next).ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if captured.ID != "sess-abc" {
		t.Fatalf("expected session id %q in context, got %q", "sess-abc", captured.ID)
	}
}

func TestRequireSession_NoExpiry(t *testing.T) {
	store := newTestStore()
	log := newTestLogger()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Zero expiry means the upstream reported none; the session never
	// expires client-side.
	r := requestWithSession(t, store, "sess-forever", time.Time{})
	w := httptest.NewRecorder()
	RequireSession(store, log)(next).ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestRequireSession_MissingCookie(t *testing.T) {
	store := newTestStore()
	log := newTestLogger()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler should not be called")
	})

	r := httptest.NewRequest(http.MethodGet, "/api/sales-orders", nil)
	w := httptest.NewRecorder()
	RequireSession(store, log)(next).ServeHTTP(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireSession_ExpiredSession(t *testing.T) {
	store := newTestStore()
	log := newTestLogger()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler should not be called")
	})

	r := requestWithSession(t, store, "sess-old", time.Now().Add(-time.Minute))
	w := httptest.NewRecorder()
	RequireSession(store, log)(next).ServeHTTP(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	// The expired session is purged: the middleware re-writes the cookie
	// with MaxAge=-1.
	purged := false
	for _, c := range w.Result().Cookies() {
		if c.Name == sessionName && c.MaxAge < 0 {
			purged = true
		}
	}
	if !purged {
		t.Fatal("expected expired session cookie to be purged")
	}
}

func TestClearSession(t *testing.T) {
	store := newTestStore()

	r := requestWithSession(t, store, "sess-x", time.Now().Add(time.Hour))
	w := httptest.NewRecorder()
	if err := ClearSession(store, w, r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cleared := false
	for _, c := range w.Result().Cookies() {
		if c.Name == sessionName && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatal("expected session cookie to be deleted")
	}
}
