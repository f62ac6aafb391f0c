package lightfeed

import (
	"context"
	"iter"

	"github.com/lightfeed-ai/lightfeed-go/internal/domain/pagination"
)

// IterateRecords walks every record of a listing, fetching pages on
// demand. A cursor in params resumes from that position. params may be nil.
//
// Each range over the result starts again from the first page. A failed
// fetch yields one *Error and ends the sequence; nothing is retried.
func (c *Client) IterateRecords(
	ctx context.Context, databaseID string, params *GetRecordsParams,
) iter.Seq2[Record, error] {
	var base GetRecordsParams
	if params != nil {
		base = *params
	}
	first := pagination.Params{Limit: base.Limit, Cursor: base.Cursor}

	return c.iterate(ctx, first, func(ctx context.Context, p pagination.Params) (RecordsResponse, error) {
		q := base
		q.Limit, q.Cursor = p.Limit, p.Cursor
		return c.GetRecords(ctx, databaseID, &q)
	})
}

// IterateSearch walks every result of a semantic search. See IterateRecords.
func (c *Client) IterateSearch(
	ctx context.Context, databaseID string, params SearchRecordsParams,
) iter.Seq2[Record, error] {
	return c.iterate(ctx, firstPage(params.Pagination), func(ctx context.Context, p pagination.Params) (RecordsResponse, error) {
		q := params
		q.Pagination = pageParams(p)
		return c.SearchRecords(ctx, databaseID, q)
	})
}

// IterateFilter walks every record matching a filter. See IterateRecords.
func (c *Client) IterateFilter(
	ctx context.Context, databaseID string, params FilterRecordsParams,
) iter.Seq2[Record, error] {
	return c.iterate(ctx, firstPage(params.Pagination), func(ctx context.Context, p pagination.Params) (RecordsResponse, error) {
		q := params
		q.Pagination = pageParams(p)
		return c.FilterRecords(ctx, databaseID, q)
	})
}

func firstPage(p *PaginationParams) pagination.Params {
	if p == nil {
		return pagination.Params{}
	}
	return *p
}

func pageParams(p pagination.Params) *PaginationParams {
	if p.IsZero() {
		return nil
	}
	return &p
}

func (c *Client) iterate(
	ctx context.Context,
	first pagination.Params,
	fetch func(context.Context, pagination.Params) (RecordsResponse, error),
) iter.Seq2[Record, error] {
	seq := pagination.Seq(ctx, first, func(ctx context.Context, p pagination.Params) ([]Record, Pagination, error) {
		resp, err := fetch(ctx, p)
		if err != nil {
			return nil, Pagination{}, err
		}
		return resp.Results, resp.Pagination, nil
	})

	return func(yield func(Record, error) bool) {
		for rec, err := range seq {
			if err != nil {
				yield(Record{}, asError(err))
				return
			}
			if !yield(rec, nil) {
				return
			}
		}
	}
}
