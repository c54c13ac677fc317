// Package errors defines the structured error types used across the
// back-office service. Each AppError carries a machine-readable code and the
// HTTP status it maps to, so handlers and middleware can resolve failures
// into responses without inspecting error strings.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes surfaced to clients.
const (
	CodeInvalidRequest  = "invalid_request"
	CodeUnauthenticated = "unauthenticated"
	CodeForbidden       = "forbidden"
	CodeNotFound        = "not_found"
	CodeConflict        = "conflict"
	CodeRateLimited     = "rate_limited"
	CodeStorage         = "storage_error"
	CodeInternal        = "internal_error"
)

// AppError is a structured application error.
type AppError struct {
	Code    string
	Status  int
	Message string
	Details map[string]string
	cause   error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, if any.
func (e *AppError) Unwrap() error {
	return e.cause
}

// HTTPStatus returns the HTTP status code the error maps to.
func (e *AppError) HTTPStatus() int {
	if e.Status == 0 {
		return http.StatusInternalServerError
	}
	return e.Status
}

// WithCause attaches an underlying error for the error chain.
func (e *AppError) WithCause(cause error) *AppError {
	e.cause = cause
	return e
}

// WithDetails attaches field-level details, typically validation messages.
func (e *AppError) WithDetails(details map[string]string) *AppError {
	e.Details = details
	return e
}

// New creates an AppError with the given code, status and message.
func New(code string, status int, message string) *AppError {
	return &AppError{Code: code, Status: status, Message: message}
}

// ErrInvalidRequest creates a 400 error for malformed or invalid input.
func ErrInvalidRequest(message string) *AppError {
	return New(CodeInvalidRequest, http.StatusBadRequest, message)
}

// ErrUnauthenticated creates a 401 error for missing or invalid credentials.
func ErrUnauthenticated(message string) *AppError {
	return New(CodeUnauthenticated, http.StatusUnauthorized, message)
}

// ErrForbidden creates a 403 error for authenticated callers lacking a role.
func ErrForbidden(message string) *AppError {
	return New(CodeForbidden, http.StatusForbidden, message)
}

// ErrNotFound creates a 404 error for a missing resource.
func ErrNotFound(resource string) *AppError {
	return New(CodeNotFound, http.StatusNotFound, fmt.Sprintf("%s not found", resource))
}

// ErrConflict creates a 409 error for a uniqueness or state conflict.
func ErrConflict(message string) *AppError {
	return New(CodeConflict, http.StatusConflict, message)
}

// ErrRateLimited creates a 429 error carrying the retry hint in seconds.
func ErrRateLimited(retryAfter int) *AppError {
	e := New(CodeRateLimited, http.StatusTooManyRequests, "Too many requests")
	e.Details = map[string]string{"retry_after": fmt.Sprintf("%d", retryAfter)}
	return e
}

// ErrStorage wraps a persistence failure as a 500 error.
func ErrStorage(op string, cause error) *AppError {
	return New(CodeStorage, http.StatusInternalServerError,
		fmt.Sprintf("storage operation failed: %s", op)).WithCause(cause)
}

// ErrInternal creates a generic 500 error.
func ErrInternal(message string) *AppError {
	return New(CodeInternal, http.StatusInternalServerError, message)
}

// AsAppError attempts to cast an error to an AppError.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsNotFound reports whether err is a not-found AppError.
func IsNotFound(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == CodeNotFound
	}
	return false
}

// IsConflict reports whether err is a conflict AppError.
func IsConflict(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == CodeConflict
	}
	return false
}

// HTTPStatus resolves any error to the HTTP status it should produce.
func HTTPStatus(err error) int {
	if appErr, ok := AsAppError(err); ok {
		return appErr.HTTPStatus()
	}
	return http.StatusInternalServerError
}
