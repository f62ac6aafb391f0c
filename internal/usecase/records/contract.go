package records

import (
	"context"
	"net/url"
)

// API performs JSON calls against the records endpoints.
type API interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, body, out any) error
}
