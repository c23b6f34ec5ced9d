// Package apperror carries the one structured error type that crosses layers:
// a kind (mapped to an HTTP status at the boundary), a user-facing message,
// optional structured data and the wrapped cause.
package apperror

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindValidation
	KindConflict
	KindUnauthorized
	KindTokenExpired
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	case KindTokenExpired:
		return "token_expired"
	case KindForbidden:
		return "forbidden"
	}
	return "internal"
}

// StatusTokenExpired is the non-standard status clients use to trigger a refresh.
const StatusTokenExpired = 440

type Error struct {
	Kind    Kind
	Message string
	Data    any
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Wrap attaches the underlying cause and returns e for chaining.
func (e *Error) Wrap(err error) *Error {
	e.Err = err
	return e
}

func (e *Error) Status() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindTokenExpired:
		return StatusTokenExpired
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func New(kind Kind, msg string, data any) *Error {
	return &Error{Kind: kind, Message: msg, Data: data}
}

func NotFound(msg string, data any) *Error     { return New(KindNotFound, msg, data) }
func Validation(msg string, data any) *Error   { return New(KindValidation, msg, data) }
func Conflict(msg string, data any) *Error     { return New(KindConflict, msg, data) }
func Unauthorized(msg string, data any) *Error { return New(KindUnauthorized, msg, data) }
func TokenExpired(msg string) *Error           { return New(KindTokenExpired, msg, nil) }
func Forbidden(msg string) *Error              { return New(KindForbidden, msg, nil) }
func Internal(msg string) *Error               { return New(KindInternal, msg, nil) }

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// KindOf returns the kind of the first *Error in err's chain, KindInternal otherwise.
func KindOf(err error) Kind {
	if ae, ok := As(err); ok {
		return ae.Kind
	}
	return KindInternal
}
