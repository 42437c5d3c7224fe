// Package apperrors defines the error taxonomy shared by the services and the
// HTTP layer. Each kind maps to exactly one HTTP status.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindInvalidInput       Kind = "invalid_input"
	KindNotFound           Kind = "not_found"
	KindConflict           Kind = "conflict"
	KindPersistence        Kind = "persistence_failure"
	KindServiceUnavailable Kind = "service_unavailable"
)

// Error carries a kind, an optional offending field and a caller-safe message.
// Err holds the underlying cause and is never shown to API callers.
type Error struct {
	Kind    Kind
	Field   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches on kind so callers can write errors.Is(err, apperrors.ErrNotFound).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Field == "" && t.Message == "" && t.Err == nil
}

// Sentinels for errors.Is checks.
var (
	ErrInvalidInput       = &Error{Kind: KindInvalidInput}
	ErrNotFound           = &Error{Kind: KindNotFound}
	ErrConflict           = &Error{Kind: KindConflict}
	ErrPersistence        = &Error{Kind: KindPersistence}
	ErrServiceUnavailable = &Error{Kind: KindServiceUnavailable}
)

func Invalid(field, message string) *Error {
	return &Error{Kind: KindInvalidInput, Field: field, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Conflict(message string, err error) *Error {
	return &Error{Kind: KindConflict, Message: message, Err: err}
}

func Persistence(message string, err error) *Error {
	return &Error{Kind: KindPersistence, Message: message, Err: err}
}

func Unavailable(message string) *Error {
	return &Error{Kind: KindServiceUnavailable, Message: message}
}

// KindOf returns the kind of err, treating unknown errors as persistence failures.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindPersistence
}

func HTTPStatus(kind Kind) int {
	switch kind {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
