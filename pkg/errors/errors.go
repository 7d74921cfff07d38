// Package errors provides structured error types for the clabinv application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the HTTP surface
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes map onto the failure taxonomy of the allocation engine:
//   - MALFORMED_TOPOLOGY / UNKNOWN_NODE: the topology description is
//     internally inconsistent
//   - POOL_EXHAUSTED: the topology exceeds a reserved address pool
//   - ENCODING_ERROR: a derived address cannot be represented
//   - INVALID_TOPOLOGY_FILE / FILE_NOT_FOUND: the description could not be
//     located or parsed
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnknownNode, "link %d references unknown node %q", i, name)
//	if errors.Is(err, errors.ErrCodeUnknownNode) {
//	    // Handle the bad link
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidTopologyFile, origErr, "parse %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Topology validation errors
	ErrCodeMalformedTopology Code = "MALFORMED_TOPOLOGY"
	ErrCodeUnknownNode       Code = "UNKNOWN_NODE"

	// Address allocation errors
	ErrCodePoolExhausted Code = "POOL_EXHAUSTED"

	// Address derivation errors
	ErrCodeEncoding Code = "ENCODING_ERROR"

	// Input errors
	ErrCodeInvalidTopologyFile Code = "INVALID_TOPOLOGY_FILE"
	ErrCodeFileNotFound        Code = "FILE_NOT_FOUND"
	ErrCodeUnknownKind         Code = "UNKNOWN_KIND"
	ErrCodeHostNotFound        Code = "HOST_NOT_FOUND"

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
