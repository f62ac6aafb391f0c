package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the closed set of failure categories surfaced to callers.
// Its value is the HTTP status the category is reported with.
type Kind int

// Failure kinds.
const (
	KindBadRequest   Kind = http.StatusBadRequest
	KindUnauthorized Kind = http.StatusUnauthorized
	KindForbidden    Kind = http.StatusForbidden
	KindNotFound     Kind = http.StatusNotFound
	KindRateLimited  Kind = http.StatusTooManyRequests
	KindServerError  Kind = http.StatusInternalServerError
)

var (
	// ErrBadRequest signals malformed parameters, rejected locally or by the server.
	ErrBadRequest = errors.New("bad request")
	// ErrUnauthorized signals a missing or invalid API key.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden signals a key without access to the database.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound signals a missing database or record.
	ErrNotFound = errors.New("not found")
	// ErrRateLimited signals server throttling.
	ErrRateLimited = errors.New("rate limited")
	// ErrServerError signals a server failure, an unexpected status or a transport failure.
	ErrServerError = errors.New("server error")
)

// KindOf maps an HTTP status to a Kind. Statuses outside the known set,
// including 0 (no response), fall into KindServerError.
func KindOf(status int) Kind {
	switch k := Kind(status); k {
	case KindBadRequest, KindUnauthorized, KindForbidden, KindNotFound, KindRateLimited:
		return k
	default:
		return KindServerError
	}
}

// Sentinel returns the sentinel error for k.
func (k Kind) Sentinel() error {
	switch k {
	case KindBadRequest:
		return ErrBadRequest
	case KindUnauthorized:
		return ErrUnauthorized
	case KindForbidden:
		return ErrForbidden
	case KindNotFound:
		return ErrNotFound
	case KindRateLimited:
		return ErrRateLimited
	default:
		return ErrServerError
	}
}

// String returns a snake_case label, used for metrics.
func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindRateLimited:
		return "rate_limited"
	default:
		return "server_error"
	}
}

// DefaultMessage returns the generic message for a status.
func DefaultMessage(status int) string {
	switch KindOf(status) {
	case KindBadRequest:
		return "Invalid request parameters"
	case KindUnauthorized:
		return "Invalid or missing API key"
	case KindForbidden:
		return "The API key doesn't have permission to access the resource"
	case KindNotFound:
		return "The requested resource doesn't exist"
	case KindRateLimited:
		return "Rate limit exceeded"
	default:
		return "Something went wrong on our end"
	}
}

// Error is the single error shape returned by every failed operation.
type Error struct {
	// Status is one of 400, 401, 403, 404, 429, 500.
	Status  int
	Message string
	// Details carries the raw response body for server-side failures.
	Details any
	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("lightfeed: api error (%d): %s", e.Status, e.Message)
}

// Kind returns the failure category.
func (e *Error) Kind() Kind { return KindOf(e.Status) }

// Unwrap exposes both the kind sentinel and the cause to errors.Is/As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind().Sentinel()}
	}
	return []error{e.Kind().Sentinel(), e.Err}
}

// NewValidationError reports a request rejected before it was sent.
func NewValidationError(cause error) *Error {
	return &Error{
		Status:  int(KindBadRequest),
		Message: cause.Error(),
		Err:     cause,
	}
}
