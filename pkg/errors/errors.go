// Package errors provides structured error types for hydrate.
//
// Every failure that can abort a hydration run carries a machine-readable
// code so callers (the CLI, the history store, tests) can tell a cleanup
// failure from an installer failure without parsing messages.
//
// # Error Codes
//
//   - INVALID_*: bad options, paths or configuration
//   - CLEANUP_FAILED: the dependency cache directory could not be removed
//   - COMMAND_FAILED: an installer exited non-zero, failed to spawn, or timed out
//   - DELEGATE_FAILED: shared hydration returned an error
//   - INVENTORY_FAILED: the component inventory could not be loaded
//
// # Usage
//
//	err := errors.Wrap(errors.ErrCodeCommand, cause, "npm ci in %s", dir)
//	if errors.Is(err, errors.ErrCodeCommand) {
//	    // installer failure
//	}
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
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Resource not found errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Hydration failures
	ErrCodeCleanup   Code = "CLEANUP_FAILED"
	ErrCodeCommand   Code = "COMMAND_FAILED"
	ErrCodeTimeout   Code = "TIMEOUT"
	ErrCodeDelegate  Code = "DELEGATE_FAILED"
	ErrCodeInventory Code = "INVENTORY_FAILED"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
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
// Only the outermost *Error in the chain is consulted, so a COMMAND_FAILED
// wrapping a TIMEOUT reports COMMAND_FAILED. Use Has to search the chain.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// Has reports whether any *Error in err's chain carries code.
func Has(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
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
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
