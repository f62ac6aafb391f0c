// Package lightfeed is a Go client for the Lightfeed records API.
//
// Lightfeed extracts structured records from web sources into databases.
// This package lists, searches and filters those records. It validates
// requests locally, sends them over HTTP and turns every failure into a
// single *Error.
//
// # Listing and searching
//
//	client, _ := lightfeed.New("lf_api_key")
//	resp, err := client.SearchRecords(ctx, "db1", lightfeed.SearchRecordsParams{
//	    Search: lightfeed.SearchParams{Text: "AI solutions"},
//	})
//
// # Filtering
//
//	f := lightfeed.And(
//	    lightfeed.ColumnRule{Column: "industry", Operator: lightfeed.Equals, Value: "Healthcare"},
//	    lightfeed.Or(
//	        lightfeed.ColumnRule{Column: "employees", Operator: lightfeed.GreaterThan, Value: 100},
//	        lightfeed.ColumnRule{Column: "funding", Operator: lightfeed.Exists},
//	    ),
//	)
//	resp, err := client.FilterRecords(ctx, "db1", lightfeed.FilterRecordsParams{Filter: f})
//
// # Pagination
//
// Every listing is paged by an opaque cursor. The Iterate methods walk all
// pages lazily:
//
//	for rec, err := range client.IterateRecords(ctx, "db1", nil) {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(rec.ID)
//	}
//
// # Errors
//
// Failures are *Error values whose Status is one of 400, 401, 403, 404,
// 429 or 500. Use errors.Is with ErrNotFound, ErrRateLimited and the other
// sentinels to branch on the category.
package lightfeed
