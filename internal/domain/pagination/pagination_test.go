package pagination

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func strPtr(s string) *string { return &s }

func TestClampLimit(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 0},
		{1, 1},
		{100, 100},
		{500, 500},
		{501, 500},
		{10000, 500},
	}
	for _, tt := range tests {
		got, err := ClampLimit(tt.in)
		if err != nil {
			t.Errorf("ClampLimit(%d): unexpected error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ClampLimit(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}

	if _, err := ClampLimit(-1); err == nil {
		t.Error("ClampLimit(-1): expected error")
	}
}

func TestFirstPage(t *testing.T) {
	p := FirstPage(2)
	if p.Limit != 2 || p.Cursor != "" {
		t.Errorf("FirstPage(2) = %+v", p)
	}
	if p := FirstPage(900); p.Limit != MaxLimit {
		t.Errorf("FirstPage(900).Limit = %d, want %d", p.Limit, MaxLimit)
	}
	if p := FirstPage(0); !p.IsZero() {
		t.Errorf("FirstPage(0) = %+v, want zero", p)
	}
}

func TestNextPage_HasMoreFalseStops(t *testing.T) {
	for _, cursor := range []*string{nil, strPtr("stale")} {
		if _, ok := NextPage(Page{Limit: 10, NextCursor: cursor, HasMore: false}); ok {
			t.Errorf("cursor %v: expected stop", cursor)
		}
	}
}

func TestNextPage_ForwardsCursorVerbatim(t *testing.T) {
	next, ok := NextPage(Page{Limit: 2, NextCursor: strPtr("C"), HasMore: true})
	if !ok {
		t.Fatal("expected another page")
	}
	if next.Cursor != "C" || next.Limit != 2 {
		t.Errorf("next = %+v, want {2 C}", next)
	}
}

func TestNextPage_MissingCursorStops(t *testing.T) {
	if _, ok := NextPage(Page{Limit: 2, HasMore: true}); ok {
		t.Error("expected stop without cursor")
	}
}

func TestParams_JSON(t *testing.T) {
	tests := []struct {
		p    Params
		want string
	}{
		{Params{}, `{}`},
		{Params{Limit: 2, Cursor: "2025-03-11T19:59:49.150Z_691"}, `{"limit":2,"cursor":"2025-03-11T19:59:49.150Z_691"}`},
	}
	for _, tt := range tests {
		got, err := json.Marshal(tt.p)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if string(got) != tt.want {
			t.Errorf("got %s, want %s", got, tt.want)
		}
	}
}

func TestPage_DecodeNullCursor(t *testing.T) {
	var p Page
	if err := json.Unmarshal([]byte(`{"limit":100,"next_cursor":null,"has_more":false}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.NextCursor != nil || p.HasMore || p.Limit != 100 {
		t.Errorf("page = %+v", p)
	}
}

// --- Seq tests ---

type fakePages struct {
	pages []Page
	items [][]int
	calls []Params
	errAt int
}

func (f *fakePages) fetch(_ context.Context, p Params) ([]int, Page, error) {
	i := len(f.calls)
	f.calls = append(f.calls, p)
	if f.errAt > 0 && i == f.errAt {
		return nil, Page{}, errors.New("boom")
	}
	return f.items[i], f.pages[i], nil
}

func collect(t *testing.T, seq func(func(int, error) bool)) ([]int, error) {
	t.Helper()
	var out []int
	for v, err := range seq {
		if err != nil {
			return out, err
		}
		out = append(out, v)
	}
	return out, nil
}

func TestSeq_WalksAllPagesInOrder(t *testing.T) {
	f := &fakePages{
		items: [][]int{{1, 2}, {3, 4}, {5}},
		pages: []Page{
			{Limit: 2, NextCursor: strPtr("c1"), HasMore: true},
			{Limit: 2, NextCursor: strPtr("c2"), HasMore: true},
			{Limit: 2, NextCursor: strPtr("ignored"), HasMore: false},
		},
	}

	got, err := collect(t, Seq(context.Background(), FirstPage(2), f.fetch))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int{1, 2, 3, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}

	wantCalls := []Params{{Limit: 2}, {Limit: 2, Cursor: "c1"}, {Limit: 2, Cursor: "c2"}}
	if len(f.calls) != len(wantCalls) {
		t.Fatalf("calls = %v", f.calls)
	}
	for i := range wantCalls {
		if f.calls[i] != wantCalls[i] {
			t.Errorf("call %d = %+v, want %+v", i, f.calls[i], wantCalls[i])
		}
	}
}

func TestSeq_Restartable(t *testing.T) {
	f := &fakePages{
		items: [][]int{{1}, {1}},
		pages: []Page{{Limit: 1}, {Limit: 1}},
	}
	seq := Seq(context.Background(), Params{Limit: 1}, f.fetch)

	for range 2 {
		if _, err := collect(t, seq); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if len(f.calls) != 2 {
		t.Fatalf("calls = %d, want 2", len(f.calls))
	}
	if f.calls[1].Cursor != "" {
		t.Errorf("second run should start without cursor, got %q", f.calls[1].Cursor)
	}
}

func TestSeq_StopsOnError(t *testing.T) {
	f := &fakePages{
		items: [][]int{{1, 2}, nil},
		pages: []Page{{Limit: 2, NextCursor: strPtr("c1"), HasMore: true}, {}},
		errAt: 1,
	}

	got, err := collect(t, Seq(context.Background(), Params{}, f.fetch))
	if err == nil || err.Error() != "boom" {
		t.Fatalf("err = %v, want boom", err)
	}
	if len(got) != 2 {
		t.Errorf("items before error = %v", got)
	}
	if len(f.calls) != 2 {
		t.Errorf("calls = %d, want 2 (no retry)", len(f.calls))
	}
}

func TestSeq_BreakStopsFetching(t *testing.T) {
	f := &fakePages{
		items: [][]int{{1, 2}, {3}},
		pages: []Page{{Limit: 2, NextCursor: strPtr("c1"), HasMore: true}, {}},
	}

	for v, err := range Seq(context.Background(), Params{}, f.fetch) {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v == 1 {
			break
		}
	}
	if len(f.calls) != 1 {
		t.Errorf("calls = %d, want 1", len(f.calls))
	}
}

func TestSeq_InconsistentPage(t *testing.T) {
	f := &fakePages{
		items: [][]int{{1}},
		pages: []Page{{Limit: 1, HasMore: true}},
	}

	_, err := collect(t, Seq(context.Background(), Params{}, f.fetch))
	if !errors.Is(err, ErrInconsistentPage) {
		t.Fatalf("err = %v, want ErrInconsistentPage", err)
	}
}

func TestSeq_CanceledContext(t *testing.T) {
	f := &fakePages{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := collect(t, Seq(ctx, Params{}, f.fetch))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if len(f.calls) != 0 {
		t.Errorf("calls = %d, want 0", len(f.calls))
	}
}
