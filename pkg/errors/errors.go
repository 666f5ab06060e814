// Package errors provides structured error types for closetig.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and library packages
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The taxonomy mirrors the failure modes of a single-pass batch transform:
//   - FORMAT_ERROR: malformed input records (headers, sequences, length mismatches)
//   - GRAPH_INTEGRITY: dangling or inconsistent links between records
//   - RECONSTRUCTION_MISMATCH: the reconstruction law failed to hold, which is
//     always an implementation defect and never a legitimate input condition
//   - IO_ERROR: unreadable or missing input
//
// All parse-time and integrity errors abort the entire run; the decomposition
// is a whole-graph computation with no meaningful partial result.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeFormat, "record %d: abundance count mismatch", id)
//	if errors.Is(err, errors.ErrCodeFormat) {
//	    // Handle malformed input
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeIO, origErr, "open %s", path)
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
	ErrCodeInvalidInput Code = "INVALID_INPUT"
	ErrCodeFormat       Code = "FORMAT_ERROR"

	// Graph construction errors
	ErrCodeGraphIntegrity Code = "GRAPH_INTEGRITY"

	// Internal invariant violations
	ErrCodeReconstruction Code = "RECONSTRUCTION_MISMATCH"
	ErrCodeInternal       Code = "INTERNAL_ERROR"

	// Filesystem errors
	ErrCodeIO Code = "IO_ERROR"
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
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
