package api

import "errors"

// Sentinel errors surfaced by the client.
var (
	// ErrUnauthorized is returned for any 401 response. By the time the
	// caller sees it the session-invalidated hook has already fired.
	ErrUnauthorized = errors.New("authentication rejected")

	// ErrUnexpected wraps transport and decode failures, keeping them
	// distinguishable from backend-reported errors.
	ErrUnexpected = errors.New("an unexpected error occurred")
)

// APIError carries a failure reported by the backend itself
type APIError struct {
	Status  int
	Message string
}

// Error returns the backend-supplied message
func (e *APIError) Error() string {
	return e.Message
}

// IsUnauthorized reports whether err stems from a rejected credential
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
