// Package upstream is the HTTP client for the external sales-order system.
// Requests carry the fixed language and client-program headers the upstream
// requires; there is no retry policy.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	salesorderdomain "github.com/ghuser/stocktrack/services/salesorder/domain"
)

const (
	headerLanguageCode  = "X-Language-Code"
	headerClientProgram = "X-Client-Program"

	languageCode  = "JPN"
	clientProgram = "JP_ORDER"
)

// Session is an authenticated upstream session. ExpiresAt is zero when the
// upstream reports no expiry.
type Session struct {
	ID        string
	ExpiresAt time.Time
}

// Client talks to the sales-order system's auth and order endpoints.
type Client struct {
	httpClient *http.Client
	authURL    string
	apiURL     string
	appID      string
}

// NewClient returns a Client for the given endpoints and application id.
func NewClient(authURL, apiURL, appID string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		authURL:    authURL,
		apiURL:     apiURL,
		appID:      appID,
	}
}

type loginRequest struct {
	LoginID       string `json:"loginId"`
	Password      string `json:"password"`
	ApplicationID string `json:"applicationId"`
}

type loginResponse struct {
	SessionID string `json:"sessionId"`
	ExpiresAt int64  `json:"expiresAt"` // unix milliseconds, 0 = no expiry
}

// Login authenticates against the upstream and returns the session.
// Credential rejections map to ErrLoginFailed, transport and 5xx trouble to
// ErrUpstream.
func (c *Client) Login(ctx context.Context, loginID, password string) (Session, error) {
	body, err := json.Marshal(loginRequest{
		LoginID:       loginID,
		Password:      password,
		ApplicationID: c.appID,
	})
	if err != nil {
		return Session{}, fmt.Errorf("marshal login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.authURL, bytes.NewReader(body))
	if err != nil {
		return Session{}, fmt.Errorf("build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %w", salesorderdomain.ErrUpstream, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return Session{}, salesorderdomain.ErrLoginFailed
	case resp.StatusCode != http.StatusOK:
		return Session{}, fmt.Errorf("%w: auth returned %d", salesorderdomain.ErrUpstream, resp.StatusCode)
	}

	var lr loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return Session{}, fmt.Errorf("%w: decode auth response: %w", salesorderdomain.ErrUpstream, err)
	}
	if lr.SessionID == "" {
		return Session{}, fmt.Errorf("%w: auth response missing session id", salesorderdomain.ErrUpstream)
	}

	session := Session{ID: lr.SessionID}
	if lr.ExpiresAt > 0 {
		session.ExpiresAt = time.UnixMilli(lr.ExpiresAt)
	}
	return session, nil
}

// FetchOrders proxies an order query using the given session. The upstream
// response body is returned verbatim. A 401 maps to ErrSessionExpired so the
// caller can force a fresh login.
func (c *Client) FetchOrders(ctx context.Context, sessionID string, query url.Values) (json.RawMessage, error) {
	u := c.apiURL
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build orders request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+sessionID)
	req.Header.Set(headerLanguageCode, languageCode)
	req.Header.Set(headerClientProgram, clientProgram)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", salesorderdomain.ErrUpstream, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, salesorderdomain.ErrSessionExpired
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: orders returned %d", salesorderdomain.ErrUpstream, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read orders response: %w", salesorderdomain.ErrUpstream, err)
	}
	return json.RawMessage(body), nil
}
