// Package query holds the request parameters of the records endpoints and
// their local shape checks.
package query

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/oapi-codegen/runtime"

	"github.com/lightfeed-ai/lightfeed-go/internal/domain/filter"
	"github.com/lightfeed-ai/lightfeed-go/internal/domain/pagination"
)

// DefaultThreshold is the relevance threshold the server applies when a
// search does not set one.
const DefaultThreshold = 0.2

// TimeRange bounds results by last seen time. Both ends are optional
// ISO 8601 strings; ordering is checked by the server.
type TimeRange struct {
	StartTime string `json:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty"`
}

// GetParams are the query-string parameters of a records listing.
type GetParams struct {
	StartTime string
	EndTime   string
	Limit     int
	Cursor    string
}

// Values validates p and encodes the set fields as form-style query
// parameters. The limit is clamped to pagination.MaxLimit.
func (p GetParams) Values() (url.Values, error) {
	limit, err := pagination.ClampLimit(p.Limit)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	add := func(name string, value any) error {
		frag, err := runtime.StyleParamWithLocation("form", true, name, runtime.ParamLocationQuery, value)
		if err != nil {
			return fmt.Errorf("encode %s: %w", name, err)
		}
		parsed, err := url.ParseQuery(frag)
		if err != nil {
			return fmt.Errorf("encode %s: %w", name, err)
		}
		for k, vs := range parsed {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		return nil
	}

	if p.StartTime != "" {
		if err := add("start_time", p.StartTime); err != nil {
			return nil, err
		}
	}
	if p.EndTime != "" {
		if err := add("end_time", p.EndTime); err != nil {
			return nil, err
		}
	}
	if limit > 0 {
		if err := add("limit", limit); err != nil {
			return nil, err
		}
	}
	if p.Cursor != "" {
		if err := add("cursor", p.Cursor); err != nil {
			return nil, err
		}
	}
	return q, nil
}

// Search is the semantic part of a search request.
type Search struct {
	Text string `json:"text"`
	// Threshold is the minimum relevance score in [0, 1]. Nil leaves the
	// server default (DefaultThreshold) in effect.
	Threshold *float64 `json:"threshold,omitempty"`
}

func (s Search) validate() error {
	if strings.TrimSpace(s.Text) == "" {
		return errors.New("search text is required")
	}
	if s.Threshold != nil {
		if t := *s.Threshold; !(t >= 0 && t <= 1) {
			return fmt.Errorf("search threshold must be between 0 and 1, got %v", t)
		}
	}
	return nil
}

// SearchParams is the body of a semantic search request.
type SearchParams struct {
	Search     Search             `json:"search"`
	Filter     *filter.Group      `json:"filter,omitempty"`
	TimeRange  *TimeRange         `json:"time_range,omitempty"`
	Pagination *pagination.Params `json:"pagination,omitempty"`
}

// Prepare validates p and returns the body to send. The caller's value is
// not modified.
func (p SearchParams) Prepare() (SearchParams, error) {
	if err := p.Search.validate(); err != nil {
		return SearchParams{}, err
	}
	if p.Filter != nil {
		if err := filter.Validate(*p.Filter); err != nil {
			return SearchParams{}, err
		}
	}
	pg, err := preparePagination(p.Pagination)
	if err != nil {
		return SearchParams{}, err
	}
	p.Pagination = pg
	return p, nil
}

// FilterParams is the body of a rule-based filter request.
type FilterParams struct {
	Filter     filter.Group       `json:"filter"`
	TimeRange  *TimeRange         `json:"time_range,omitempty"`
	Pagination *pagination.Params `json:"pagination,omitempty"`
}

// Prepare validates p and returns the body to send. The caller's value is
// not modified.
func (p FilterParams) Prepare() (FilterParams, error) {
	if p.Filter.Condition == "" && p.Filter.IsEmpty() {
		return FilterParams{}, errors.New("filter is required")
	}
	if err := filter.Validate(p.Filter); err != nil {
		return FilterParams{}, err
	}
	pg, err := preparePagination(p.Pagination)
	if err != nil {
		return FilterParams{}, err
	}
	p.Pagination = pg
	return p, nil
}

func preparePagination(p *pagination.Params) (*pagination.Params, error) {
	if p == nil {
		return nil, nil
	}
	limit, err := pagination.ClampLimit(p.Limit)
	if err != nil {
		return nil, err
	}
	return &pagination.Params{Limit: limit, Cursor: p.Cursor}, nil
}
