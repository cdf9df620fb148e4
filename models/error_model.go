package models

import (
	"fmt"
	"net/http"
)

// APIError carries a failed API call back to the flows. The server's own
// message field is kept verbatim when present so it can be surfaced to the
// user unchanged.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// Unauthorized reports whether the call was rejected by the session layer,
// which triggers the global forced-logout path rather than local handling.
func (e *APIError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

func NewAPIError(statusCode int, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Message:    message,
	}
}
