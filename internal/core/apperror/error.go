// Package apperror provides structured error handling for the admin API.
// Handlers translate every AppError into the same JSON envelope.
package apperror

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Error codes
const (
	// Infrastructure errors (5xx)
	CodeInternal    = "INTERNAL_ERROR"
	CodeFetchFailed = "FETCH_FAILED"
	CodeTimeout     = "TIMEOUT_ERROR"

	// Validation errors (400)
	CodeValidation   = "VALIDATION_ERROR"
	CodeInvalidInput = "INVALID_INPUT"

	// Not found (404)
	CodeNotFound      = "NOT_FOUND"
	CodeUnknownEntity = "UNKNOWN_ENTITY_TYPE"

	// Conflict (409)
	CodeFormClosed = "FORM_CLOSED"
)

// AppError is the standard error type for the dashboard.
type AppError struct {
	// Code is a machine-readable error identifier
	Code string `json:"code"`

	// Message is a human-readable error description
	Message string `json:"message"`

	// Details contains additional context (field errors, endpoint, etc.)
	Details map[string]any `json:"details,omitempty"`

	// HTTPStatus is the suggested HTTP status code
	HTTPStatus int `json:"-"`

	// Err is the underlying error (not exposed in JSON)
	Err error `json:"-"`
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail adds a key-value pair to error details
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause sets the underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Err = err
	return e
}

// --- Factory functions for common errors ---

// NewValidation creates a validation error (400)
func NewValidation(message string) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewFieldErrors creates a validation error carrying per-field messages.
func NewFieldErrors(errs map[string]string) *AppError {
	fields := make(map[string]any, len(errs))
	for k, v := range errs {
		fields[k] = v
	}
	return &AppError{
		Code:       CodeValidation,
		Message:    "Form contains invalid fields",
		HTTPStatus: http.StatusBadRequest,
		Details:    map[string]any{"fields": fields},
	}
}

// NewInvalidInput creates a malformed request error (400)
func NewInvalidInput(message string) *AppError {
	return &AppError{
		Code:       CodeInvalidInput,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewNotFound creates a not found error (404)
func NewNotFound(entity string, id any) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", entity),
		HTTPStatus: http.StatusNotFound,
		Details:    map[string]any{"entity": entity, "id": id},
	}
}

// NewUnknownEntity is returned when a type tag has no registered configuration.
func NewUnknownEntity(tag string) *AppError {
	return &AppError{
		Code:       CodeUnknownEntity,
		Message:    fmt.Sprintf("Unknown entity type %q", tag),
		HTTPStatus: http.StatusNotFound,
		Details:    map[string]any{"type": tag},
	}
}

// NewFetchFailed wraps a failed call to the game API (502).
func NewFetchFailed(endpoint string, err error) *AppError {
	return &AppError{
		Code:       CodeFetchFailed,
		Message:    fmt.Sprintf("Request to %s failed", endpoint),
		HTTPStatus: http.StatusBadGateway,
		Details:    map[string]any{"endpoint": endpoint},
		Err:        err,
	}
}

// NewTimeout creates a timeout error (504)
func NewTimeout(endpoint string, err error) *AppError {
	return &AppError{
		Code:       CodeTimeout,
		Message:    fmt.Sprintf("Request to %s timed out", endpoint),
		HTTPStatus: http.StatusGatewayTimeout,
		Details:    map[string]any{"endpoint": endpoint},
		Err:        err,
	}
}

// NewFormClosed is returned for any mutation on a form that already left the editing state.
func NewFormClosed(state string) *AppError {
	return &AppError{
		Code:       CodeFormClosed,
		Message:    "Form is no longer editable",
		HTTPStatus: http.StatusConflict,
		Details:    map[string]any{"state": state},
	}
}

// NewInternal creates an internal server error (hides details from client)
func NewInternal(err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "Internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// --- Helper functions ---

// FromTransport classifies an error returned by an outbound call.
func FromTransport(endpoint string, err error) *AppError {
	if appErr, ok := AsAppError(err); ok {
		return appErr
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return NewTimeout(endpoint, err)
	}
	return NewFetchFailed(endpoint, err)
}

// IsAppError checks if error is AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError extracts AppError from error chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// GetHTTPStatus returns appropriate HTTP status for any error
func GetHTTPStatus(err error) int {
	if appErr, ok := AsAppError(err); ok {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

// IsNotFound checks if error is CodeNotFound or CodeUnknownEntity
func IsNotFound(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == CodeNotFound || appErr.Code == CodeUnknownEntity
	}
	return false
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code string) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == code
	}
	return false
}
