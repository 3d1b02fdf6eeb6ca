// internal/core/errors.go
package core

import "fmt"

// Error represents a structured error with code and optional cause.
type Error struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is matching by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// Detail returns the most specific description of the error: the cause's
// message when one is attached, the error message otherwise.
func (e *Error) Detail() string {
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return e.Message
}

// WrapError creates a new error with the same code but with a cause.
func WrapError(base *Error, cause error) *Error {
	return &Error{
		Code:    base.Code,
		Message: base.Message,
		Cause:   cause,
	}
}

// Predefined errors
var (
	// Request errors
	ErrMissingParameters = &Error{Code: "MISSING_PARAMETERS", Message: "Missing parameters"}
	ErrInvalidRequest    = &Error{Code: "INVALID_REQUEST", Message: "Invalid request body"}
	ErrMethodNotAllowed  = &Error{Code: "METHOD_NOT_ALLOWED", Message: "Method not allowed"}

	// Ephemeris errors
	ErrEphemeris        = &Error{Code: "EPHEMERIS_ERROR", Message: "ephemeris calculation failed"}
	ErrEphemerisTimeout = &Error{Code: "EPHEMERIS_TIMEOUT", Message: "ephemeris calculation timeout"}

	// Config errors
	ErrConfigInvalid = &Error{Code: "CONFIG_INVALID", Message: "configuration invalid"}
	ErrConfigMissing = &Error{Code: "CONFIG_MISSING", Message: "required configuration missing"}
)
