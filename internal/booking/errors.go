package booking

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable indicates the API server could not be reached.
	ErrUnavailable = errors.New("booking api unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("booking api request timed out")

	// ErrUnauthorized indicates the server rejected the bearer token (401/403).
	ErrUnauthorized = errors.New("booking api rejected credentials")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("booking api retry attempts exhausted")
)

// APIError is a non-auth failure reported by the server. Message is the
// server-provided text, if any.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("booking api returned status %d", e.Status)
	}
	return fmt.Sprintf("booking api returned status %d: %s", e.Status, e.Message)
}
