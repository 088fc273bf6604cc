// Package errors provides structured error types for the visflow editor.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the editor, CLI and preview server
//   - Machine-readable error codes for programmatic handling
//   - User-friendly advisory messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Codes group into the editor's error taxonomy:
//   - NOT_CONNECTABLE: structural rejection by the connectivity check
//   - UNKNOWN_* / *_NOT_FOUND / NO_CONNECTABLE_PORT: lookup failures
//   - INVALID_*: malformed input (documents, names, paths)
//   - NOTHING_TO_*: history has no event to apply
//   - INTERNAL_ERROR: invariant violations (defects)
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnknownNodeType, "unknown node type %q", tag)
//	if errors.Is(err, errors.ErrCodeUnknownNodeType) {
//	    // Report and skip
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidFormat, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Structural rejection
	ErrCodeNotConnectable Code = "NOT_CONNECTABLE"

	// Lookup failures
	ErrCodeUnknownNodeType   Code = "UNKNOWN_NODE_TYPE"
	ErrCodeNoConnectablePort Code = "NO_CONNECTABLE_PORT"
	ErrCodeNodeNotFound      Code = "NODE_NOT_FOUND"
	ErrCodePortNotFound      Code = "PORT_NOT_FOUND"
	ErrCodeEdgeNotFound      Code = "EDGE_NOT_FOUND"
	ErrCodeDiagramNotFound   Code = "DIAGRAM_NOT_FOUND"
	ErrCodeDuplicateNodeType Code = "DUPLICATE_NODE_TYPE"
	ErrCodeUnsupportedFormat Code = "UNSUPPORTED_FORMAT"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidName   Code = "INVALID_NAME"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// History
	ErrCodeNothingToUndo Code = "NOTHING_TO_UNDO"
	ErrCodeNothingToRedo Code = "NOTHING_TO_REDO"

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

// IsLookupFailure reports whether err is a lookup failure: the operation
// referenced something that does not exist and was skipped.
func IsLookupFailure(err error) bool {
	switch GetCode(err) {
	case ErrCodeUnknownNodeType, ErrCodeNoConnectablePort, ErrCodeNodeNotFound,
		ErrCodePortNotFound, ErrCodeEdgeNotFound, ErrCodeDiagramNotFound:
		return true
	}
	return false
}
