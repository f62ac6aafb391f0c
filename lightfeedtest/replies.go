package lightfeedtest

import (
	"net/http"

	"github.com/lightfeed-ai/lightfeed-go/internal/domain/record"
)

// Records answers 200 with resp.
func Records(resp record.Response) Reply {
	if resp.Results == nil {
		resp.Results = []record.Record{}
	}
	return Reply{Status: http.StatusOK, Body: resp}
}

// Error answers with status and an error body. Empty fields are omitted.
func Error(status int, message string, details any) Reply {
	return Reply{Status: status, Body: errorBody{Message: message, Details: details}}
}

// Static answers every request with the same reply.
func Static(reply Reply) Handler {
	return func(Request) Reply { return reply }
}

// Paged serves pages as a cursor chain: the first page answers a request
// without a cursor, and each later page answers the cursor handed out by
// the page before it. Unknown cursors get a 400.
func Paged(pages ...record.Response) Handler {
	byCursor := make(map[string]record.Response, len(pages))
	cursor := ""
	for _, p := range pages {
		byCursor[cursor] = p
		if p.Pagination.NextCursor == nil {
			break
		}
		cursor = *p.Pagination.NextCursor
	}
	return func(req Request) Reply {
		p, ok := byCursor[req.Cursor()]
		if !ok {
			return Error(http.StatusBadRequest, "Invalid cursor", nil)
		}
		return Records(p)
	}
}
