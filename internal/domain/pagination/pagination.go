// Package pagination implements the cursor protocol shared by all record
// endpoints. Cursors are opaque: they are copied from one response into the
// next request and never parsed or built locally.
package pagination

import (
	"context"
	"errors"
	"fmt"
	"iter"
)

// Page size limits.
const (
	DefaultLimit = 100
	MaxLimit     = 500
)

// ErrInconsistentPage signals a response that claims more results
// without handing out a cursor to fetch them.
var ErrInconsistentPage = errors.New("pagination: has_more is set but next_cursor is null")

// Params is the request side of the protocol. Zero values are left off
// the wire so the server applies its defaults.
type Params struct {
	Limit  int    `json:"limit,omitempty"`
	Cursor string `json:"cursor,omitempty"`
}

// IsZero reports whether neither field is set.
func (p Params) IsZero() bool { return p.Limit == 0 && p.Cursor == "" }

// Page is the pagination block of a response.
type Page struct {
	Limit      int     `json:"limit"`
	NextCursor *string `json:"next_cursor"`
	HasMore    bool    `json:"has_more"`
}

// ClampLimit normalizes a requested page size: 0 leaves it to the server,
// anything above MaxLimit is lowered to MaxLimit.
func ClampLimit(limit int) (int, error) {
	if limit < 0 {
		return 0, fmt.Errorf("limit must not be negative, got %d", limit)
	}
	return min(limit, MaxLimit), nil
}

// FirstPage returns the params for the first request of a listing.
// Negative limits are treated as unset.
func FirstPage(limit int) Params {
	l, err := ClampLimit(limit)
	if err != nil {
		l = 0
	}
	return Params{Limit: l}
}

// NextPage returns the params for the page after prev, or false when the
// listing is complete. HasMore is authoritative: a non-null cursor on a
// final page is ignored.
func NextPage(prev Page) (Params, bool) {
	if !prev.HasMore || prev.NextCursor == nil {
		return Params{}, false
	}
	return Params{Limit: prev.Limit, Cursor: *prev.NextCursor}, true
}

// FetchFunc loads one page of items.
type FetchFunc[T any] func(ctx context.Context, p Params) ([]T, Page, error)

// Seq returns a lazy sequence over every item reachable from first.
// Each range over the sequence starts again from first. Only the current
// page is held in memory. A fetch error is yielded once and ends the
// sequence; nothing is retried.
func Seq[T any](ctx context.Context, first Params, fetch FetchFunc[T]) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		params := first
		for {
			if err := ctx.Err(); err != nil {
				yield(zero, err)
				return
			}

			items, page, err := fetch(ctx, params)
			if err != nil {
				yield(zero, err)
				return
			}
			for _, item := range items {
				if !yield(item, nil) {
					return
				}
			}

			next, ok := NextPage(page)
			if !ok {
				if page.HasMore {
					yield(zero, ErrInconsistentPage)
				}
				return
			}
			params = next
		}
	}
}
