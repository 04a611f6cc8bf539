// Package apperror defines the error taxonomy shared by services and
// handlers and its mapping onto HTTP status codes.
package apperror

import (
	"errors"
	"net/http"
)

// Code is a machine-readable error category.
type Code string

const (
	CodeInvalidInput       Code = "INVALID_INPUT"
	CodeConflict           Code = "CONFLICT"
	CodeInvalidCredentials Code = "INVALID_CREDENTIALS"
	CodeUnauthorized       Code = "UNAUTHORIZED"
	CodeForbidden          Code = "FORBIDDEN"
	CodeNotFound           Code = "NOT_FOUND"
	CodeStale              Code = "STALE"
	CodeUnavailable        Code = "UNAVAILABLE"
	CodeInternal           Code = "INTERNAL"
)

// Existing clients expect 400 for missing entities and duplicate
// emails, so those stay 400 rather than 404/409.
var httpStatus = map[Code]int{
	CodeInvalidInput:       http.StatusBadRequest,
	CodeConflict:           http.StatusBadRequest,
	CodeInvalidCredentials: http.StatusBadRequest,
	CodeUnauthorized:       http.StatusUnauthorized,
	CodeForbidden:          http.StatusForbidden,
	CodeNotFound:           http.StatusBadRequest,
	CodeStale:              http.StatusConflict,
	CodeUnavailable:        http.StatusServiceUnavailable,
	CodeInternal:           http.StatusInternalServerError,
}

// HTTPStatus returns the response status for the code.
func (c Code) HTTPStatus() int {
	if status, ok := httpStatus[c]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// Error is a categorized error. Message is safe to show to clients; Cause
// is for logs only.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error with the same code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

func InvalidInput(message string) *Error { return New(CodeInvalidInput, message) }
func Conflict(message string) *Error     { return New(CodeConflict, message) }
func Unauthorized(message string) *Error { return New(CodeUnauthorized, message) }
func Forbidden(message string) *Error    { return New(CodeForbidden, message) }
func NotFound(message string) *Error     { return New(CodeNotFound, message) }

// Internal wraps an unexpected failure.
func Internal(cause error) *Error {
	return Wrap(CodeInternal, "Internal Server Error", cause)
}

// Sentinels for errors.Is checks by category.
var (
	ErrInvalidInput = New(CodeInvalidInput, "")
	ErrConflict     = New(CodeConflict, "")
	ErrUnauthorized = New(CodeUnauthorized, "")
	ErrForbidden    = New(CodeForbidden, "")
	ErrNotFound     = New(CodeNotFound, "")
	ErrStale        = New(CodeStale, "")
)

// From returns err as an *Error, treating anything uncategorized as internal.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}
