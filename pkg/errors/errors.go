// Package errors provides structured error types for psdui.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the builder, pipeline and CLI
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages that name the offending layer
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Codes follow the failure taxonomy of the importer:
//   - MALFORMED_OVERLAY: an overlay record is unusable (bad layer id)
//   - AMBIGUOUS_SOURCE: a layer violates a structural expectation
//   - MISSING_ASSET: an asset is unknown or not yet committed by the host
//   - INVALID_*: input validation failures
//   - INTERNAL_*: unexpected internal errors
//
// Absent optional data (missing overlay, missing property) is never an
// error; callers fall back to documented defaults instead.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeAmbiguousSource, "layer %d (%s): empty style run", id, name)
//	if errors.Is(err, errors.ErrCodeAmbiguousSource) {
//	    // abort the build
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeMalformedOverlay, parseErr, "record id %q", raw)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Source structure errors (fatal for the document being built)
	ErrCodeMalformedOverlay Code = "MALFORMED_OVERLAY"
	ErrCodeAmbiguousSource  Code = "AMBIGUOUS_SOURCE"

	// Host asset errors
	ErrCodeMissingAsset Code = "MISSING_ASSET"

	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidDocument Code = "INVALID_DOCUMENT"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"
	ErrCodeInvalidPath     Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

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

// LayerError reports a fatal problem with a single source layer.
// Its message always carries the layer id and name so the user can find
// the layer in the source document.
type LayerError struct {
	Code      Code
	LayerID   int
	LayerName string
	Reason    string
}

// NewLayerError creates a LayerError with a formatted reason.
func NewLayerError(code Code, id int, name, format string, args ...any) *LayerError {
	return &LayerError{
		Code:      code,
		LayerID:   id,
		LayerName: name,
		Reason:    fmt.Sprintf(format, args...),
	}
}

// Error implements the error interface.
func (e *LayerError) Error() string {
	return fmt.Sprintf("%s: layer %d (%q): %s", e.Code, e.LayerID, e.LayerName, e.Reason)
}

// Unwrap exposes the layer error as a coded *Error so [Is] and [GetCode]
// work on it.
func (e *LayerError) Unwrap() error {
	return &Error{Code: e.Code, Message: e.Reason}
}
