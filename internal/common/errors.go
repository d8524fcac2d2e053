// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Ingestion errors.
	ErrInvalidDateFormat = errors.New("invalid date format")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrMissingColumn     = errors.New("missing required column")

	// Goal projection errors.
	ErrNoPriorData = errors.New("no data on or before the requested date")

	// Credential store errors.
	ErrNotFound           = errors.New("not found")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// RowError reports an ingestion failure at a specific input row. Row is the
// 1-based data row number, not counting the header.
type RowError struct {
	Err    error
	Column string
	Value  string
	Row    int
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d, column %q: %v (value %q)", e.Row, e.Column, e.Err, e.Value)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// NewRowError wraps an ingestion error with its source location.
func NewRowError(row int, column, value string, err error) error {
	return &RowError{Row: row, Column: column, Value: value, Err: err}
}

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
