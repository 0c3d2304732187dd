// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Database errors.
	ErrNotFound = errors.New("not found")

	// Extraction errors.
	ErrExtractionFailed = errors.New("text extraction failed")
	ErrEmptyDocument    = errors.New("document contains no text")

	// Classification errors.
	ErrRuleFetchFailed = errors.New("rule fetch failed")

	// Configuration errors.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ExtractionError is the fatal statement-level failure raised when the
// upstream text-extraction collaborator fails. The original document
// metadata rides along so callers can report which upload broke.
type ExtractionError struct {
	Err      error
	Metadata map[string]any
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%v: %v", ErrExtractionFailed, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return ErrExtractionFailed
}

// NewExtractionError wraps an upstream failure with pass-through metadata.
func NewExtractionError(err error, metadata map[string]any) error {
	return &ExtractionError{Err: err, Metadata: metadata}
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
