package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Session is the sales-order session the client holds between runs.
// ExpiresAt is zero when the upstream reported no expiry.
type Session struct {
	SessionID string    `json:"sessionId"`
	ExpiresAt time.Time `json:"expiresAt,omitzero"`
}

// Expired reports whether the session is past its expiry. Sessions without
// an expiry never expire client-side.
func (s Session) Expired() bool {
	return !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt)
}

// SessionStore persists the session to a JSON file so the CLI survives
// restarts without a fresh login. An expired session is purged on load.
type SessionStore struct {
	mu   sync.Mutex
	path string
}

// NewSessionStore returns a store writing to the given file path.
func NewSessionStore(path string) *SessionStore {
	return &SessionStore{path: path}
}

// Load reads the stored session. Returns (nil, nil) when no session exists or
// the stored one has expired; expired files are deleted.
func (s *SessionStore) Load() (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		// A corrupt file is treated as no session.
		_ = os.Remove(s.path)
		return nil, nil
	}
	if session.SessionID == "" || session.Expired() {
		_ = os.Remove(s.path)
		return nil, nil
	}
	return &session, nil
}

// Save writes the session, creating parent directories as needed.
func (s *SessionStore) Save(session Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

// Clear removes the stored session. Clearing a missing file is a no-op.
func (s *SessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}
