package apperrors

import (
	"errors"
	"net/http"
)

// Kind classifies an error into the HTTP status it maps to.
type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindConflict
	KindAuth
	KindInternal
)

// Error is an application error carrying its taxonomy kind and an
// optional detail line surfaced to clients.
type Error struct {
	Kind    Kind
	Message string
	Details string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation builds a 400-class error for a missing or malformed field.
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// NotFound builds a 404-class error for an absent entity.
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// Conflict builds a 409-class error for a uniqueness violation.
func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

// Auth builds a 401-class error for a failed credential or session check.
func Auth(msg string) *Error {
	return &Error{Kind: KindAuth, Message: msg}
}

// Internal wraps an unexpected store or runtime failure. The underlying
// error is kept for logging but never sent to clients.
func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// WithDetails returns a copy of the error with a client-visible detail line.
func (e *Error) WithDetails(details string) *Error {
	c := *e
	c.Details = details
	return &c
}

// Status returns the HTTP status code for an error. Anything that is not
// an *Error is treated as internal.
func Status(err error) int {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	switch appErr.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindAuth:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Client returns the message and details safe to show a caller. Unexpected
// errors collapse to a generic message so store internals never leak.
func Client(err error) (msg, details string) {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return "internal server error", ""
	}
	if appErr.Kind == KindInternal && appErr.Message == "" {
		return "internal server error", appErr.Details
	}
	return appErr.Message, appErr.Details
}
