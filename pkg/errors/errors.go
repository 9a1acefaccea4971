// Package errors provides structured error types for the qr2scad application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the pipeline
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Each code maps to one failure class of the conversion pipeline:
//   - INVALID_*: option validation failures
//   - INPUT_DECODE: the source image could not be decoded
//   - EMPTY_IMAGE, NON_SQUARE_INPUT, MODULE_SIZE: grid detection failures
//   - ENCODE, FILE_WRITE: collaborator and output failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeEmptyImage, "no foreground pixels in %s", path)
//	if errors.Is(err, errors.ErrCodeEmptyImage) {
//	    // Handle blank input
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInputDecode, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Option validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Source image errors
	ErrCodeInputDecode Code = "INPUT_DECODE"

	// Grid detection errors
	ErrCodeEmptyImage     Code = "EMPTY_IMAGE"
	ErrCodeNonSquareInput Code = "NON_SQUARE_INPUT"
	ErrCodeModuleSize     Code = "MODULE_SIZE"

	// Collaborator and output errors
	ErrCodeEncode    Code = "ENCODE"
	ErrCodeFileWrite Code = "FILE_WRITE"

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
