// Package lightfeedtest provides an in-process fake of the Lightfeed records
// API for tests. It routes and authenticates requests like the real service,
// records them, and answers from a scripted Handler. It never evaluates
// filters or searches.
package lightfeedtest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// Endpoint names.
const (
	EndpointRecords = "records"
	EndpointSearch  = "search"
	EndpointFilter  = "filter"
)

// Request is a request received by the fake server.
type Request struct {
	Method     string
	Path       string
	Endpoint   string
	DatabaseID string
	Query      url.Values
	Header     http.Header
	Body       []byte
}

// Cursor returns the pagination cursor carried by the request, from the
// query string for listings and from the JSON body otherwise.
func (r Request) Cursor() string {
	if r.Endpoint == EndpointRecords {
		return r.Query.Get("cursor")
	}
	var body struct {
		Pagination struct {
			Cursor string `json:"cursor"`
		} `json:"pagination"`
	}
	_ = json.Unmarshal(r.Body, &body)
	return body.Pagination.Cursor
}

// Reply is the scripted answer to a request.
type Reply struct {
	Status int
	// Body is encoded as JSON unless Raw is set.
	Body any
	Raw  []byte
}

// Handler scripts the server's answers.
type Handler func(req Request) Reply

// Server is a fake records API listening on a loopback address.
type Server struct {
	*httptest.Server

	apiKey  string
	handler Handler

	mu       sync.Mutex
	requests []Request
}

// NewServer starts a fake server that accepts apiKey. Callers must Close it.
func NewServer(apiKey string, h Handler) *Server {
	s := &Server{apiKey: apiKey, handler: h}

	r := chi.NewRouter()
	r.Use(APIKeyMiddleware(apiKey))
	r.Route("/v1/databases/{databaseID}", func(r chi.Router) {
		r.Get("/records", s.serve(EndpointRecords))
		r.Post("/search", s.serve(EndpointSearch))
		r.Post("/filter", s.serve(EndpointFilter))
	})
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Message: "route not found"})
	})

	s.Server = httptest.NewServer(r)
	return s
}

// Requests returns a copy of the requests that reached a handler.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

func (s *Server) serve(endpoint string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Message: "unreadable body"})
			return
		}

		req := Request{
			Method:     r.Method,
			Path:       r.URL.EscapedPath(),
			Endpoint:   endpoint,
			DatabaseID: chi.URLParam(r, "databaseID"),
			Query:      r.URL.Query(),
			Header:     r.Header.Clone(),
			Body:       body,
		}
		s.mu.Lock()
		s.requests = append(s.requests, req)
		s.mu.Unlock()

		if endpoint == EndpointRecords {
			var limit int
			if err := runtime.BindQueryParameter("form", true, false, "limit", req.Query, &limit); err != nil {
				writeJSON(w, http.StatusBadRequest, errorBody{Message: "invalid limit"})
				return
			}
		} else if r.Header.Get("Content-Type") != "application/json" {
			writeJSON(w, http.StatusBadRequest, errorBody{Message: "content type must be application/json"})
			return
		}

		if s.handler == nil {
			writeJSON(w, http.StatusOK, emptyPage)
			return
		}
		reply := s.handler(req)
		status := reply.Status
		if status == 0 {
			status = http.StatusOK
		}
		if reply.Raw != nil {
			w.WriteHeader(status)
			_, _ = w.Write(reply.Raw)
			return
		}
		writeJSON(w, status, reply.Body)
	}
}

type errorBody struct {
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

var emptyPage = map[string]any{
	"results":    []any{},
	"pagination": map[string]any{"limit": 100, "next_cursor": nil, "has_more": false},
}

// APIKeyMiddleware rejects requests whose x-api-key header differs from apiKey.
func APIKeyMiddleware(apiKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get("x-api-key")
			if key == "" {
				writeJSON(w, http.StatusUnauthorized, errorBody{Message: "Missing API key"})
				return
			}
			if key != apiKey {
				writeJSON(w, http.StatusUnauthorized, errorBody{Message: "Invalid API key"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
