package apperr

import (
	"errors"
	"fmt"
)

// Shared error taxonomy. Services wrap or return these sentinels so
// handlers can map them to HTTP status codes without inspecting
// message strings.
var (
	ErrNotFound         = errors.New("record not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrConflict         = errors.New("already exists")
)

// ValidationError is a recoverable field-level error, surfaced back to
// the actor with the offending field flagged.
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: field '%s': %s", e.Field, e.Reason)
}

// NewValidation builds a field-level validation error.
func NewValidation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// StatusCode maps a service error to its HTTP status.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return 200
	case IsValidation(err):
		return 400
	case errors.Is(err, ErrPermissionDenied):
		return 403
	case errors.Is(err, ErrNotFound):
		return 404
	case errors.Is(err, ErrConflict):
		return 409
	default:
		return 500
	}
}
