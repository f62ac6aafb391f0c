package domain

import (
	"encoding/json"
	"errors"
	"strings"
)

// Failure is the raw outcome of a failed call: an HTTP status with its
// body, a transport error, or both. Status is 0 when no response arrived.
type Failure struct {
	Status int
	Body   []byte
	Err    error
}

// Normalize maps a failure onto the error taxonomy. Unknown statuses are
// coerced to 500. The message is taken from the body's "message" field,
// then the default text for the status, then the transport error, and
// finally "Unknown error". The body is attached as Details only for the
// 500 bucket.
func Normalize(f Failure) *Error {
	if f.Err != nil {
		var apiErr *Error
		if errors.As(f.Err, &apiErr) {
			return apiErr
		}
	}

	kind := KindOf(f.Status)
	e := &Error{
		Status:  int(kind),
		Message: resolveMessage(f),
		Err:     f.Err,
	}
	if kind == KindServerError {
		e.Details = details(f.Body)
	}
	return e
}

func resolveMessage(f Failure) string {
	if msg := bodyMessage(f.Body); msg != "" {
		return msg
	}
	if f.Status != 0 {
		return DefaultMessage(f.Status)
	}
	if f.Err != nil && f.Err.Error() != "" {
		return f.Err.Error()
	}
	return "Unknown error"
}

func bodyMessage(body []byte) string {
	var parsed struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &parsed) != nil {
		return ""
	}
	return strings.TrimSpace(parsed.Message)
}

// details returns the decoded JSON body, or the body text when it is not JSON.
func details(body []byte) any {
	if len(body) == 0 {
		return nil
	}
	var v any
	if json.Unmarshal(body, &v) == nil {
		return v
	}
	return string(body)
}
