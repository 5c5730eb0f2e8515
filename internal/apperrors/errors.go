package apperrors

import (
	"errors"
	"net/http"
)

// Sentinel error kinds. Every failure a handler can see wraps exactly one of
// these, so status mapping is a single errors.Is walk.
var (
	ErrValidation = errors.New("validation failed")
	ErrAuth       = errors.New("unauthorized")
	ErrForbidden  = errors.New("forbidden")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrInternal   = errors.New("internal error")
)

// Error carries a client-safe message together with its kind.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Unwrap() error { return e.kind }

func NewValidation(msg string) error { return &Error{kind: ErrValidation, msg: msg} }

func NewAuth(msg string) error { return &Error{kind: ErrAuth, msg: msg} }

func NewForbidden(msg string) error { return &Error{kind: ErrForbidden, msg: msg} }

func NewNotFound(msg string) error { return &Error{kind: ErrNotFound, msg: msg} }

func NewConflict(msg string) error { return &Error{kind: ErrConflict, msg: msg} }

// WrapInternal hides the underlying cause from clients while keeping it
// reachable for logging via errors.Unwrap.
func WrapInternal(err error) error {
	return &internalError{cause: err}
}

type internalError struct {
	cause error
}

func (e *internalError) Error() string { return "internal server error" }

func (e *internalError) Unwrap() error { return ErrInternal }

// Cause returns the hidden failure behind an internal error, or err itself.
func Cause(err error) error {
	var ie *internalError
	if errors.As(err, &ie) {
		return ie.cause
	}
	return err
}

func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

func IsAuth(err error) bool { return errors.Is(err, ErrAuth) }

func IsForbidden(err error) bool { return errors.Is(err, ErrForbidden) }

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

func IsConflict(err error) bool { return errors.Is(err, ErrConflict) }

func IsInternal(err error) bool { return errors.Is(err, ErrInternal) }

// HTTPStatus maps an error to its transport status. Unknown errors are
// treated as internal.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrAuth):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-safe message for an error. Anything not built by
// this package collapses to a generic message so internals never leak.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.msg
	}
	return "internal server error"
}
