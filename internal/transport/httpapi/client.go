// Package httpapi is the HTTP collaborator used by the records client.
// It attaches the static API key, sends JSON, and turns every failure into
// a *domain.Error.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lightfeed-ai/lightfeed-go/internal/domain"
	"github.com/lightfeed-ai/lightfeed-go/internal/logger"
)

// Header names.
const (
	HeaderAPIKey    = "x-api-key"
	HeaderRequestID = "X-Request-ID"
)

// maxErrorBody caps how much of a failed response is kept for details.
const maxErrorBody = 64 << 10

// Doer sends a single HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config holds the transport settings. It is copied at construction.
type Config struct {
	BaseURL   string
	APIKey    string
	Timeout   time.Duration
	UserAgent string
	// Doer overrides the default *http.Client.
	Doer Doer
}

// Client performs JSON calls against the records API.
type Client struct {
	baseURL   string
	apiKey    string
	timeout   time.Duration
	userAgent string
	doer      Doer
}

// New creates a Client. A nil cfg.Doer gets an *http.Client bounded by cfg.Timeout.
func New(cfg Config) *Client {
	doer := cfg.Doer
	if doer == nil {
		doer = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:    cfg.APIKey,
		timeout:   cfg.Timeout,
		userAgent: cfg.UserAgent,
		doer:      doer,
	}
}

// Get issues a GET request and decodes a 2xx body into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post sends body as JSON and decodes a 2xx body into out.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return domain.NewValidationError(fmt.Errorf("encode request body: %w", err))
	}
	return c.do(ctx, http.MethodPost, path, nil, payload, out)
}

func (c *Client) do(
	ctx context.Context, method, path string, query url.Values, payload []byte, out any,
) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return domain.Normalize(domain.Failure{Err: fmt.Errorf("build request: %w", err)})
	}

	requestID := uuid.NewString()
	req.Header.Set(HeaderAPIKey, c.apiKey)
	req.Header.Set(HeaderRequestID, requestID)
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log := logger.FromContext(ctx, nil).With(
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID),
	)

	resp, err := c.doer.Do(req)
	if err != nil {
		log.Debug("transport failure", zap.Error(err))
		return domain.Normalize(domain.Failure{Err: err})
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if readErr != nil {
			log.Debug("read error body", zap.Error(readErr))
		}
		apiErr := domain.Normalize(domain.Failure{Status: resp.StatusCode, Body: raw})
		if apiErr.Status != resp.StatusCode {
			log.Debug("unexpected status coerced",
				zap.Int("http_status", resp.StatusCode),
				zap.Int("status", apiErr.Status),
			)
		}
		return apiErr
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Normalize(domain.Failure{Err: fmt.Errorf("read response: %w", err)})
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		apiErr := domain.Normalize(domain.Failure{
			Status: http.StatusInternalServerError,
			Body:   raw,
			Err:    fmt.Errorf("decode response: %w", err),
		})
		apiErr.Message = "malformed response body: " + err.Error()
		return apiErr
	}
	return nil
}
