// Package apperr defines the typed application errors shared by every feature.
// Each error carries a Kind that the HTTP layer maps to a status code, a stable
// machine-readable code, and a message that is safe to show to callers.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies an application error.
type Kind int

const (
	// KindInternal covers persistence faults and anything unexpected.
	KindInternal Kind = iota
	// KindValidation is malformed or missing input.
	KindValidation
	// KindNotFound means the referenced entity is absent.
	KindNotFound
	// KindDuplicateUsername means the username is already taken.
	KindDuplicateUsername
	// KindInvalidCredentials is a failed login, for any reason.
	KindInvalidCredentials
	// KindConcurrencyConflict is a lost update that cannot be resolved automatically.
	KindConcurrencyConflict
)

// String returns a readable name for logs.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindDuplicateUsername:
		return "duplicate_username"
	case KindInvalidCredentials:
		return "invalid_credentials"
	case KindConcurrencyConflict:
		return "concurrency_conflict"
	default:
		return "internal"
	}
}

// Error is an application error with a kind, a code and a caller-safe message.
type Error struct {
	kind    Kind
	code    string
	message string
}

// New creates an application error.
func New(kind Kind, code, message string) *Error {
	return &Error{kind: kind, code: code, message: message}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.message
}

// Kind returns the error classification.
func (e *Error) Kind() Kind {
	return e.kind
}

// Code returns the stable error code.
func (e *Error) Code() string {
	return e.code
}

// Message returns the caller-safe message.
func (e *Error) Message() string {
	return e.message
}

// WithMessage returns a copy that keeps kind and code but carries a different message.
// errors.Is still matches the original sentinel.
func (e *Error) WithMessage(message string) *Error {
	return &Error{kind: e.kind, code: e.code, message: message}
}

// Is reports whether target is an *Error with the same kind and code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.kind == t.kind && e.code == t.code
}

// HTTPStatus maps the kind to an HTTP status code.
func (e *Error) HTTPStatus() int {
	return StatusOf(e.kind)
}

// StatusOf maps a kind to an HTTP status code.
func StatusOf(kind Kind) int {
	switch kind {
	case KindValidation, KindDuplicateUsername:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidCredentials:
		return http.StatusUnauthorized
	default:
		// ConcurrencyConflict is fatal for the request.
		return http.StatusInternalServerError
	}
}

// As extracts the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// KindOf returns the kind of err, or KindInternal when err is not an application error.
func KindOf(err error) Kind {
	if appErr, ok := As(err); ok {
		return appErr.kind
	}
	return KindInternal
}

// Validation is a shorthand for a validation error.
func Validation(code, message string) *Error {
	return New(KindValidation, code, message)
}

// NotFound is a shorthand for a not-found error.
func NotFound(code, message string) *Error {
	return New(KindNotFound, code, message)
}
