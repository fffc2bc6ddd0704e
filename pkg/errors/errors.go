// Package errors provides structured error types for latgraph.
//
// Every failure the core can produce carries a machine-readable [Code] so the
// CLI can report the error kind and exit non-zero, and so tests can assert on
// the kind without matching message text.
//
// # Error Codes
//
// Domain errors:
//   - UNSUPPORTED_FORMAT: unknown or unhandled file extension, or a lattice
//     that the selected format cannot express (e.g. 2D lattice as W3D)
//   - MALFORMED_LATTICE: structural invariant violation on decode or construction
//   - LABEL_MISMATCH: reference and target lattice incompatible for relabelling
//   - STUCK_TRAVERSAL: relabelling reached a vertex with no unvisited neighbour
//     while unvisited vertices remain
//
// Ambient errors:
//   - INVALID_INPUT, FILE_NOT_FOUND, INTERNAL_ERROR
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMalformedLattice, "edge %d: index %d out of range", i, j)
//	if errors.Is(err, errors.ErrCodeMalformedLattice) {
//	    // Handle invalid input file
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeMalformedLattice, origErr, "line %d", n)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Domain errors
	ErrCodeUnsupportedFormat Code = "UNSUPPORTED_FORMAT"
	ErrCodeMalformedLattice  Code = "MALFORMED_LATTICE"
	ErrCodeLabelMismatch     Code = "LABEL_MISMATCH"
	ErrCodeStuckTraversal    Code = "STUCK_TRAVERSAL"

	// Ambient errors
	ErrCodeInvalidInput Code = "INVALID_INPUT"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodeInternal     Code = "INTERNAL_ERROR"
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
// The outermost *Error decides; a wrapped error with a different code
// further down the chain does not match.
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
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}

// Unsupported is shorthand for New(ErrCodeUnsupportedFormat, ...).
func Unsupported(format string, args ...any) *Error {
	return New(ErrCodeUnsupportedFormat, format, args...)
}

// Malformed is shorthand for New(ErrCodeMalformedLattice, ...).
func Malformed(format string, args ...any) *Error {
	return New(ErrCodeMalformedLattice, format, args...)
}
