package domain

import "errors"

// Sentinel errors for the sales-order integration. Use errors.Is() to check
// these. The session messages are part of the wire contract.
var (
	// ErrNoSession indicates the request carries no sales-order session.
	ErrNoSession = errors.New("No session found")

	// ErrSessionExpired indicates the upstream rejected the session.
	ErrSessionExpired = errors.New("Session expired")

	// ErrLoginFailed indicates the upstream rejected the credentials.
	ErrLoginFailed = errors.New("Login failed")

	// ErrUpstream indicates the sales-order service could not be reached or
	// returned an unexpected response.
	ErrUpstream = errors.New("sales order service unavailable")
)
