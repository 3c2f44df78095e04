// Package apperr defines the typed error taxonomy the API surfaces to
// clients: validation, not-found, unauthenticated, unauthorized, conflict,
// rate-limited and internal faults. The Echo error handler maps these to
// HTTP status codes and a uniform JSON body.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindUnauthenticated
	KindUnauthorized
	KindConflict
	KindRateLimited
)

// Error is a typed application error with an optional detail payload.
type Error struct {
	Kind    Kind
	Message string
	Details interface{}
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Status returns the HTTP status code for the error kind.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindUnauthorized:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// MetricType returns the error-counter label for the error kind.
func (e *Error) MetricType() string {
	switch e.Kind {
	case KindValidation:
		return "validation"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindRateLimited:
		return "rate_limited"
	default:
		return "internal"
	}
}

// Validation returns a 400 error with client-supplied detail.
func Validation(message string, details interface{}) *Error {
	return &Error{Kind: KindValidation, Message: message, Details: details}
}

// NotFound returns a 404 error for a read against an absent resource.
func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Message: resource + " not found"}
}

// Unauthenticated returns a 401 error for a missing credential.
func Unauthenticated(message string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: message}
}

// Unauthorized returns a 403 error for an invalid credential or
// insufficient role.
func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// Conflict returns a 409 error, e.g. a unique constraint violation.
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// RateLimited returns a 429 error carrying the retry-after hint.
func RateLimited(retryAfterSeconds int) *Error {
	return &Error{
		Kind:    KindRateLimited,
		Message: "rate limit exceeded",
		Details: map[string]int{"retry_after": retryAfterSeconds},
	}
}

// Internal wraps an unclassified server fault. The wrapped error is logged
// server-side only; clients see the generic message.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal server error", Err: err}
}

// As extracts an *Error from err, if any.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
