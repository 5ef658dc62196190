package errors

import (
	"errors"
	"fmt"
)

// Error code constants surfaced in tool results and CLI exit codes
const (
	CodeConfigInvalid     = "CONFIG_INVALID"
	CodeInvalidParams     = "INVALID_PARAMS"
	CodeCookieMissing     = "COOKIE_MISSING"
	CodeRequestFailed     = "REQUEST_FAILED"
	CodeInvalidResponse   = "INVALID_RESPONSE"
	CodeUnsupportedMethod = "UNSUPPORTED_METHOD"
	CodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
	CodeInternal          = "INTERNAL_ERROR"
)

// Error represents a stms-mcp error with a code and message.
// It implements the error interface and supports error wrapping.
type Error struct {
	wrapped error
	Code    string
	Message string
}

// Error returns the error message, implementing the error interface.
func (e *Error) Error() string {
	if e.wrapped != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.wrapped)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error, supporting errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.wrapped
}

// New creates a new stms-mcp error with the given code and message.
func New(code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new stms-mcp error that wraps an underlying error.
func Wrap(code string, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		wrapped: err,
	}
}

// Code extracts the error code from an error.
// Returns an empty string if the error is not a stms-mcp error.
func Code(err error) string {
	if err == nil {
		return ""
	}
	var stmsErr *Error
	if errors.As(err, &stmsErr) {
		return stmsErr.Code
	}
	return ""
}

// Is checks if an error has a specific error code.
func Is(err error, code string) bool {
	return Code(err) == code
}

// Convenience constructors for each error code

// ConfigInvalid creates a CONFIG_INVALID error wrapping the underlying cause.
func ConfigInvalid(err error) *Error {
	return Wrap(CodeConfigInvalid, "invalid configuration", err)
}

// InvalidParams creates an INVALID_PARAMS error.
func InvalidParams(detail string) *Error {
	return New(CodeInvalidParams, detail)
}

// CookieMissing creates a COOKIE_MISSING error.
func CookieMissing() *Error {
	return New(CodeCookieMissing, "STMS_STAGING_COOKIE is not set; authenticated endpoints will be rejected")
}

// RequestFailed creates a REQUEST_FAILED error wrapping the underlying cause.
func RequestFailed(method, path string, err error) *Error {
	return Wrap(CodeRequestFailed, fmt.Sprintf("%s %s failed", method, path), err)
}

// InvalidResponse creates an INVALID_RESPONSE error.
func InvalidResponse(detail string) *Error {
	return New(CodeInvalidResponse, detail)
}

// UnsupportedMethod creates an UNSUPPORTED_METHOD error.
func UnsupportedMethod(method string) *Error {
	return New(CodeUnsupportedMethod, fmt.Sprintf("unsupported method: %s", method))
}

// UnsupportedFormat creates an UNSUPPORTED_FORMAT error.
func UnsupportedFormat(format string) *Error {
	return New(CodeUnsupportedFormat, fmt.Sprintf("unsupported report format: %q (want json, csv or tsv)", format))
}

// Internal creates an INTERNAL_ERROR error wrapping the underlying cause.
func Internal(err error) *Error {
	return Wrap(CodeInternal, "internal error", err)
}
