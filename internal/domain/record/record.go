package record

import (
	"encoding/json"
	"fmt"

	"github.com/lightfeed-ai/lightfeed-go/internal/domain/pagination"
)

// Timestamps tracks when a record was observed. Values are ISO 8601 strings
// as sent by the server.
type Timestamps struct {
	FirstSeenTime   string `json:"first_seen_time"`
	LastChangedTime string `json:"last_changed_time"`
	LastSeenTime    string `json:"last_seen_time"`
}

// UnmarshalJSON accepts both the current field names and the older
// created_at/changed_at/synced_at form.
func (t *Timestamps) UnmarshalJSON(data []byte) error {
	var w struct {
		FirstSeenTime   string `json:"first_seen_time"`
		LastChangedTime string `json:"last_changed_time"`
		LastSeenTime    string `json:"last_seen_time"`
		CreatedAt       string `json:"created_at"`
		ChangedAt       string `json:"changed_at"`
		SyncedAt        string `json:"synced_at"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("decode timestamps: %w", err)
	}
	*t = Timestamps{
		FirstSeenTime:   firstNonEmpty(w.FirstSeenTime, w.CreatedAt),
		LastChangedTime: firstNonEmpty(w.LastChangedTime, w.ChangedAt),
		LastSeenTime:    firstNonEmpty(w.LastSeenTime, w.SyncedAt),
	}
	return nil
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

// Record is one row extracted from a web source.
type Record struct {
	ID         int64          `json:"id"`
	Data       map[string]any `json:"data"`
	Timestamps Timestamps     `json:"timestamps"`
	// RelevanceScore is set only for semantic search results, in [0, 1].
	RelevanceScore *float64 `json:"relevance_score,omitempty"`
}

// Response is a page of records. Result order is defined by the server
// and is kept as received.
type Response struct {
	Results    []Record        `json:"results"`
	Pagination pagination.Page `json:"pagination"`
}
