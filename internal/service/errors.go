package service

import (
	"errors"
	"fmt"
	"net/http"
)

// Checkout failure taxonomy. Every step of the pipeline returns one of
// these so short-circuiting stays auditable; the handler boundary maps
// them to HTTP status codes.

type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

type AuthenticationError struct {
	Reason string
}

func (e *AuthenticationError) Error() string { return e.Reason }

type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string { return e.Reason }

type UpstreamError struct {
	Cause error
}

func (e *UpstreamError) Error() string { return fmt.Sprintf("payment provider error: %v", e.Cause) }

func (e *UpstreamError) Unwrap() error { return e.Cause }

// StatusForError keeps the original contract: 401 for authentication
// failures, 500 for everything else including validation.
func StatusForError(err error) int {
	var authErr *AuthenticationError
	if errors.As(err, &authErr) {
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}
