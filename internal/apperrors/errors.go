package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicateName indicates that another account already holds the requested name.
var ErrDuplicateName = errors.New("account name already exists")

// ErrInactiveAccount indicates that an account exists but may not receive new entries.
var ErrInactiveAccount = errors.New("account is inactive")

// ErrIdempotencyConflict indicates that an idempotency key was reused with a different payload.
var ErrIdempotencyConflict = errors.New("idempotency key already used with different data")

// ErrVersionConflict indicates a stale optimistic write; the caller must re-read and retry.
var ErrVersionConflict = errors.New("version conflict")

// ErrConversionUnavailable indicates that no USD to CAD rate could be obtained.
var ErrConversionUnavailable = errors.New("currency conversion unavailable")

// ErrDuplicateIdempotencyKey is raised by storage when a concurrent writer already
// consumed the idempotency key. It never leaves the core.
var ErrDuplicateIdempotencyKey = errors.New("idempotency key already consumed")

// AppError carries an HTTP-ish status code for infrastructure failures that have no
// more specific kind.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError wraps err with a status code and message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError returns an error matching ErrNotFound with a specific message.
func NewNotFoundError(message string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, message)
}

// NewValidationError returns an error matching ErrValidation with a specific message.
func NewValidationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// HTTPStatus maps an error kind to the status code the transport should answer with.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicateName),
		errors.Is(err, ErrIdempotencyConflict),
		errors.Is(err, ErrVersionConflict):
		return http.StatusConflict
	case errors.Is(err, ErrInactiveAccount):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrConversionUnavailable):
		return http.StatusServiceUnavailable
	}
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != 0 {
		return appErr.Code
	}
	return http.StatusInternalServerError
}

// IsClientError reports whether err is the caller's fault (4xx).
func IsClientError(err error) bool {
	status := HTTPStatus(err)
	return status >= 400 && status < 500
}
