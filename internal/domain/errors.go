package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by services and repositories. Callers match them with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
)

// Specific errors. Each one wraps a sentinel above so the HTTP layer only has to know the taxonomy.
var (
	ErrUserNotFound       = fmt.Errorf("user %w", ErrNotFound)
	ErrPactNotFound       = fmt.Errorf("pact %w", ErrNotFound)
	ErrGuestNotFound      = fmt.Errorf("guest %w", ErrNotFound)
	ErrRSVPNotFound       = fmt.Errorf("rsvp %w", ErrNotFound)
	ErrDuplicateEmail     = fmt.Errorf("email already in use: %w", ErrConflict)
	ErrPactFull           = fmt.Errorf("pact has reached its attendee limit: %w", ErrConflict)
	ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", ErrUnauthorized)

	// ErrNoAccess is returned when the caller is neither host nor guest of a pact.
	// The HTTP layer renders it as 404 so non-participants cannot probe for pacts.
	ErrNoAccess = fmt.Errorf("no access to pact: %w", ErrForbidden)
)

// ValidationError describes a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError returns a *ValidationError for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Unwrap lets errors.Is(err, ErrInvalidInput) match any validation error.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
