// Package common defines sentinel errors shared by the repository, service
// and transport layers. Callers should match them with errors.Is / errors.As.
package common

import (
	"errors"
	"strings"
)

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")

	// Auth errors.
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
)

// ValidationError reports a malformed or incomplete request payload.
type ValidationError struct {
	Message string
	// Fields lists the required fields that were missing, if any.
	Fields []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(e.Fields, ", ")
}

// NewValidationError returns a *ValidationError with the given message and
// optional list of offending fields.
func NewValidationError(msg string, fields ...string) *ValidationError {
	return &ValidationError{Message: msg, Fields: fields}
}
