package lightfeed

import (
	"context"

	"github.com/lightfeed-ai/lightfeed-go/internal/domain/query"
	"github.com/lightfeed-ai/lightfeed-go/internal/domain/record"
)

// --- recordsUseCase mock ---

type mockRecordsUC struct {
	getFn    func(ctx context.Context, databaseID string, p query.GetParams) (record.Response, error)
	searchFn func(ctx context.Context, databaseID string, p query.SearchParams) (record.Response, error)
	filterFn func(ctx context.Context, databaseID string, p query.FilterParams) (record.Response, error)
}

func (m *mockRecordsUC) Get(ctx context.Context, databaseID string, p query.GetParams) (record.Response, error) {
	return m.getFn(ctx, databaseID, p)
}

func (m *mockRecordsUC) Search(
	ctx context.Context, databaseID string, p query.SearchParams,
) (record.Response, error) {
	return m.searchFn(ctx, databaseID, p)
}

func (m *mockRecordsUC) Filter(
	ctx context.Context, databaseID string, p query.FilterParams,
) (record.Response, error) {
	return m.filterFn(ctx, databaseID, p)
}

func newMockClient(uc recordsUseCase) *Client {
	c, err := New("test-api-key")
	if err != nil {
		panic(err)
	}
	c.records = uc
	return c
}
