// Package errors provides structured error types for the pplot library.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library and CLI
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Categories
//
// Every code belongs to one of three categories:
//   - Sequencing: a lifecycle operation was called out of order
//   - Configuration: a name, option, or path the caller supplied is invalid
//   - Internal: unexpected failures (I/O, rendering, user callbacks)
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnknownStyle, "unknown style %q", name)
//	if errors.Is(err, errors.ErrCodeUnknownStyle) {
//	    // Handle the configuration error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeSaveFailed, origErr, "write %s", path)
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Sequencing errors
	ErrCodeInvalidCallOrder Code = "INVALID_CALL_ORDER"
	ErrCodeNoFigure         Code = "NO_FIGURE"

	// Configuration errors
	ErrCodeUnknownStyle     Code = "UNKNOWN_STYLE"
	ErrCodeUnknownColorSet  Code = "UNKNOWN_COLOR_SET"
	ErrCodeUnknownPreset    Code = "UNKNOWN_PRESET"
	ErrCodeUnknownTheme     Code = "UNKNOWN_THEME"
	ErrCodeUnknownFormat    Code = "UNKNOWN_FORMAT"
	ErrCodeStyleConflict    Code = "STYLE_CONFLICT"
	ErrCodeMissingExtension Code = "MISSING_EXTENSION"
	ErrCodeInvalidConfig    Code = "INVALID_CONFIG"
	ErrCodeInvalidPath      Code = "INVALID_PATH"
	ErrCodeStyleParse       Code = "STYLE_PARSE"
	ErrCodeNoFrames         Code = "NO_FRAMES"

	// Internal errors
	ErrCodeDrawFailed Code = "DRAW_FAILED"
	ErrCodeSaveFailed Code = "SAVE_FAILED"
	ErrCodeFontLoad   Code = "FONT_LOAD"
	ErrCodeInternal   Code = "INTERNAL_ERROR"
)

// Category groups error codes by the kind of failure they report.
type Category string

// Categories for error codes.
const (
	CategorySequencing    Category = "sequencing"
	CategoryConfiguration Category = "configuration"
	CategoryInternal      Category = "internal"
)

// CategoryOf returns the category a code belongs to.
// Unknown codes are reported as internal.
func CategoryOf(code Code) Category {
	switch code {
	case ErrCodeInvalidCallOrder, ErrCodeNoFigure:
		return CategorySequencing
	case ErrCodeUnknownStyle, ErrCodeUnknownColorSet, ErrCodeUnknownPreset,
		ErrCodeUnknownTheme, ErrCodeUnknownFormat, ErrCodeStyleConflict,
		ErrCodeMissingExtension, ErrCodeInvalidConfig, ErrCodeInvalidPath,
		ErrCodeStyleParse, ErrCodeNoFrames:
		return CategoryConfiguration
	default:
		return CategoryInternal
	}
}

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

// coder is implemented by error types that carry their own code,
// such as SequenceError.
type coder interface {
	Code() Code
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error or a coded error type
// with a matching code.
func Is(err error, code Code) bool {
	return GetCode(err) == code
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if no error in the chain carries a code.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var c coder
	if errors.As(err, &c) {
		return c.Code()
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

// IsSequencing reports whether err is a sequencing error
// (an operation was invoked outside its allowed lifecycle states).
func IsSequencing(err error) bool {
	code := GetCode(err)
	return code != "" && CategoryOf(code) == CategorySequencing
}

// IsConfiguration reports whether err is a configuration error
// (a caller-supplied name, option, or path is invalid).
func IsConfiguration(err error) bool {
	code := GetCode(err)
	return code != "" && CategoryOf(code) == CategoryConfiguration
}

// SequenceError reports a lifecycle operation invoked in a state where it is
// not allowed. It identifies the operation, the state the session was in, and
// the states the operation would be valid in.
type SequenceError struct {
	Op      string   // Operation that was attempted (e.g. "draw")
	State   string   // State the session was in
	Allowed []string // States the operation is valid in
}

// Error implements the error interface.
func (e *SequenceError) Error() string {
	if len(e.Allowed) == 0 {
		return fmt.Sprintf("%s called in state %q", e.Op, e.State)
	}
	return fmt.Sprintf("%s called in state %q, allowed in: %s",
		e.Op, e.State, strings.Join(e.Allowed, ", "))
}

// Code returns the error code for this error type.
func (e *SequenceError) Code() Code {
	return ErrCodeInvalidCallOrder
}
