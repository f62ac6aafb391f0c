package lightfeed

import (
	"errors"

	"github.com/lightfeed-ai/lightfeed-go/internal/domain"
)

// Error is returned by every failed operation.
type Error = domain.Error

// Kind is the failure category of an Error.
type Kind = domain.Kind

// Failure kinds.
const (
	KindBadRequest   = domain.KindBadRequest
	KindUnauthorized = domain.KindUnauthorized
	KindForbidden    = domain.KindForbidden
	KindNotFound     = domain.KindNotFound
	KindRateLimited  = domain.KindRateLimited
	KindServerError  = domain.KindServerError
)

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrBadRequest   = domain.ErrBadRequest
	ErrUnauthorized = domain.ErrUnauthorized
	ErrForbidden    = domain.ErrForbidden
	ErrNotFound     = domain.ErrNotFound
	ErrRateLimited  = domain.ErrRateLimited
	ErrServerError  = domain.ErrServerError
)

// asError returns err as an *Error, normalizing anything else into the
// server error bucket.
func asError(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return domain.Normalize(domain.Failure{Err: err})
}
