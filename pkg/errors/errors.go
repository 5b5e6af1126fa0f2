// Package errors provides structured error types for signcanvas.
//
// Errors carry a machine-readable [Code] alongside a human-readable message
// so the CLI can tell a corrupted draft apart from a bad flag or a flaky
// recovery backend.
//
// # Error Codes
//
// Codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - *_NOT_FOUND: Missing objects or sessions
//   - CORRUPT_SNAPSHOT: A stored snapshot no longer decodes into a document
//   - RECOVERY_STORE, NETWORK_ERROR, TIMEOUT: Persistence failures
//   - INTERNAL_ERROR, UNSUPPORTED: Everything else
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidAxis, "unknown axis %q", name)
//	if errors.Is(err, errors.ErrCodeInvalidAxis) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeCorruptSnapshot, decodeErr, "restore session %s", id)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidAxis      Code = "INVALID_AXIS"
	ErrCodeInvalidDocument  Code = "INVALID_DOCUMENT"
	ErrCodeInvalidSessionID Code = "INVALID_SESSION_ID"
	ErrCodeInvalidConfig    Code = "INVALID_CONFIG"

	// Resource not found errors
	ErrCodeNotFound        Code = "NOT_FOUND"
	ErrCodeObjectNotFound  Code = "OBJECT_NOT_FOUND"
	ErrCodeSessionNotFound Code = "SESSION_NOT_FOUND"

	// Snapshot errors
	ErrCodeCorruptSnapshot Code = "CORRUPT_SNAPSHOT"

	// Persistence errors
	ErrCodeRecoveryStore Code = "RECOVERY_STORE"
	ErrCodeNetwork       Code = "NETWORK_ERROR"
	ErrCodeTimeout       Code = "TIMEOUT"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// Corrupt snapshots always read as a failed session restore; other *Error
// values return their message without the code prefix.
func UserMessage(err error) string {
	if Is(err, ErrCodeCorruptSnapshot) {
		return "could not restore previous session"
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
