// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Input errors.
	ErrNoRecords      = errors.New("no tenant records found")
	ErrMissingColumns = errors.New("missing required columns")
	ErrInvalidField   = errors.New("invalid field value")
	ErrOutOfRange     = errors.New("value out of range")

	// Query errors.
	ErrUnknownSortKey = errors.New("unknown sort key")
	ErrNotFound       = errors.New("not found")

	// Export errors.
	ErrUnknownExport = errors.New("unknown export kind")
	ErrSheetsWrite   = errors.New("sheets export failed")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// IsInputError reports whether err was caused by a malformed upload.
func IsInputError(err error) bool {
	return errors.Is(err, ErrNoRecords) ||
		errors.Is(err, ErrMissingColumns) ||
		errors.Is(err, ErrInvalidField) ||
		errors.Is(err, ErrOutOfRange)
}
