// Package apierror provides the canonical error values returned to API
// clients. Every 4xx/5xx response goes through this package so the envelope
// stays consistent and internal details (stack traces, DB errors) never leak.
package apierror

import "net/http"

// APIError carries an HTTP status and a single human-readable message.
// Handlers map it to `{"success":false,"message":...}`.
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
}

func (e *APIError) Error() string { return e.Message }

// New creates an APIError with an explicit status.
func New(status int, msg string) *APIError {
	return &APIError{Status: status, Message: msg}
}

func Validation(msg string) *APIError   { return New(http.StatusBadRequest, msg) }
func NotFound(msg string) *APIError     { return New(http.StatusNotFound, msg) }
func Unauthorized(msg string) *APIError { return New(http.StatusUnauthorized, msg) }
func Forbidden(msg string) *APIError    { return New(http.StatusForbidden, msg) }
func Conflict(msg string) *APIError     { return New(http.StatusConflict, msg) }
func Internal(msg string) *APIError     { return New(http.StatusInternalServerError, msg) }

// FieldErrors wraps per-field validation failures from the request binder.
type FieldErrors struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}

func NewFieldErrors(fields map[string]string) *FieldErrors {
	return &FieldErrors{Message: "Datos de entrada invalidos", Fields: fields}
}
