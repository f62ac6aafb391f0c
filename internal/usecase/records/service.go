// Package records implements the read-only record queries: listing,
// semantic search and rule-based filtering.
package records

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/lightfeed-ai/lightfeed-go/internal/domain"
	"github.com/lightfeed-ai/lightfeed-go/internal/domain/query"
	"github.com/lightfeed-ai/lightfeed-go/internal/domain/record"
)

// Service validates record queries locally and sends them to the API.
// Invalid input never reaches the network.
type Service struct {
	api API
}

// New creates a records service.
func New(api API) *Service {
	return &Service{api: api}
}

// Get lists records of a database.
func (s *Service) Get(ctx context.Context, databaseID string, p query.GetParams) (record.Response, error) {
	base, err := databasePath(databaseID)
	if err != nil {
		return record.Response{}, err
	}
	values, err := p.Values()
	if err != nil {
		return record.Response{}, domain.NewValidationError(err)
	}

	var resp record.Response
	if err := s.api.Get(ctx, base+"/records", values, &resp); err != nil {
		return record.Response{}, err
	}
	return resp, nil
}

// Search runs a semantic search over a database.
func (s *Service) Search(ctx context.Context, databaseID string, p query.SearchParams) (record.Response, error) {
	base, err := databasePath(databaseID)
	if err != nil {
		return record.Response{}, err
	}
	body, err := p.Prepare()
	if err != nil {
		return record.Response{}, domain.NewValidationError(err)
	}

	var resp record.Response
	if err := s.api.Post(ctx, base+"/search", body, &resp); err != nil {
		return record.Response{}, err
	}
	return resp, nil
}

// Filter selects records of a database matching a rule tree.
func (s *Service) Filter(ctx context.Context, databaseID string, p query.FilterParams) (record.Response, error) {
	base, err := databasePath(databaseID)
	if err != nil {
		return record.Response{}, err
	}
	body, err := p.Prepare()
	if err != nil {
		return record.Response{}, domain.NewValidationError(err)
	}

	var resp record.Response
	if err := s.api.Post(ctx, base+"/filter", body, &resp); err != nil {
		return record.Response{}, err
	}
	return resp, nil
}

func databasePath(databaseID string) (string, error) {
	if strings.TrimSpace(databaseID) == "" {
		return "", domain.NewValidationError(errors.New("database id is required"))
	}
	return fmt.Sprintf("/v1/databases/%s", url.PathEscape(databaseID)), nil
}
