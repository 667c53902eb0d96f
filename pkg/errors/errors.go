package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors. AppError values unwrap to one of these so callers can use
// errors.Is without caring about the message.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrRateLimited  = errors.New("rate limited")
)

// AppError is an error with a machine-readable code and an HTTP status.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func newError(status int, code string, sentinel error, message string) *AppError {
	return &AppError{Code: code, Message: message, Status: status, Err: sentinel}
}

// NotFound creates a 404 error, e.g. NotFound("session", id).
func NotFound(resource, key string) *AppError {
	return newError(http.StatusNotFound, "NOT_FOUND", ErrNotFound, fmt.Sprintf("%s %q not found", resource, key))
}

// InvalidInput creates a 400 error.
func InvalidInput(message string) *AppError {
	return newError(http.StatusBadRequest, "INVALID_INPUT", ErrInvalidInput, message)
}

// Unauthorized is returned when the request carries no session role.
func Unauthorized(message string) *AppError {
	return newError(http.StatusUnauthorized, "UNAUTHORIZED", ErrUnauthorized, message)
}

// Forbidden is returned when the session role is outside the allowed set.
func Forbidden(message string) *AppError {
	return newError(http.StatusForbidden, "FORBIDDEN", ErrForbidden, message)
}

func RateLimited() *AppError {
	return newError(http.StatusTooManyRequests, "RATE_LIMITED", ErrRateLimited, "too many requests")
}

// Internal hides err from the client; it stays in the chain for logs.
func Internal(err error) *AppError {
	return newError(http.StatusInternalServerError, "INTERNAL_ERROR", err, "an internal error occurred")
}

// Wrap prefixes err with message, keeping it matchable with errors.Is.
func Wrap(err error, message string) error {
	return fmt.Errorf("%s: %w", message, err)
}

// HTTPStatus maps err to a status code: the AppError status if there is one
// in the chain, else the status of a wrapped sentinel, else 500.
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
