package lightfeed

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/lightfeed-ai/lightfeed-go/internal/config"
	"github.com/lightfeed-ai/lightfeed-go/internal/domain/query"
	"github.com/lightfeed-ai/lightfeed-go/internal/domain/record"
	"github.com/lightfeed-ai/lightfeed-go/internal/logger"
	"github.com/lightfeed-ai/lightfeed-go/internal/metrics"
	"github.com/lightfeed-ai/lightfeed-go/internal/transport/httpapi"
	recordsuc "github.com/lightfeed-ai/lightfeed-go/internal/usecase/records"
	"github.com/lightfeed-ai/lightfeed-go/internal/version"
)

// Defaults.
const (
	DefaultBaseURL = config.DefaultBaseURL
	DefaultTimeout = config.DefaultTimeoutMS * time.Millisecond
)

// Operation names used in logs and metrics.
const (
	opGetRecords    = "get_records"
	opSearchRecords = "search_records"
	opFilterRecords = "filter_records"
)

// recordsUseCase is replaced in tests.
type recordsUseCase interface {
	Get(ctx context.Context, databaseID string, p query.GetParams) (record.Response, error)
	Search(ctx context.Context, databaseID string, p query.SearchParams) (record.Response, error)
	Filter(ctx context.Context, databaseID string, p query.FilterParams) (record.Response, error)
}

// Config is the connection configuration of a Client. It is fixed at
// construction.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Client is the Lightfeed records API entry point. It holds no mutable
// state and is safe for concurrent use.
type Client struct {
	cfg     Config
	records recordsUseCase
	logger  *zap.Logger
	obs     *observer
}

// New creates a Client authenticated with apiKey.
func New(apiKey string, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		baseURL:   DefaultBaseURL,
		timeout:   DefaultTimeout,
		userAgent: version.UserAgent(),
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("lightfeed: api key required")
	}
	u, err := url.Parse(cfg.baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("lightfeed: invalid base url %q", cfg.baseURL)
	}
	if cfg.timeout < 0 {
		return nil, fmt.Errorf("lightfeed: negative timeout %s", cfg.timeout)
	}

	obs, err := newObserver(cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	doer := cfg.doer
	if cfg.metricsReg != nil {
		httpMetrics, err := metrics.NewHTTP(cfg.metricsReg)
		if err != nil {
			return nil, fmt.Errorf("lightfeed: %w", err)
		}
		if doer == nil {
			doer = &http.Client{Timeout: cfg.timeout}
		}
		doer = httpMetrics.Wrap(doer)
	}

	transport := httpapi.New(httpapi.Config{
		BaseURL:   cfg.baseURL,
		APIKey:    apiKey,
		Timeout:   cfg.timeout,
		UserAgent: cfg.userAgent,
		Doer:      doer,
	})

	log := cfg.logger
	if log == nil {
		log = zap.NewNop()
	}
	log.Debug("client configured",
		zap.String("base_url", cfg.baseURL),
		zap.Duration("timeout", cfg.timeout),
		zap.String("version", version.String()),
	)

	return &Client{
		cfg: Config{
			APIKey:  apiKey,
			BaseURL: strings.TrimRight(cfg.baseURL, "/"),
			Timeout: cfg.timeout,
		},
		records: recordsuc.New(transport),
		logger:  log,
		obs:     obs,
	}, nil
}

// NewFromFile creates a Client from a YAML configuration file. Options
// are applied after the file settings and override them.
func NewFromFile(path string, opts ...Option) (*Client, error) {
	fc, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("lightfeed: %w", err)
	}
	log, err := logger.NewLogger(fc.Logging.Format, fc.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("lightfeed: %w", err)
	}

	base := []Option{
		WithBaseURL(fc.Client.BaseURL),
		WithTimeout(time.Duration(fc.Client.TimeoutMS) * time.Millisecond),
		WithLogger(log),
	}
	return New(fc.Client.APIKey, append(base, opts...)...)
}

// Config returns a copy of the client configuration.
func (c *Client) Config() Config {
	return c.cfg
}

// GetRecords lists records of a database. params may be nil.
func (c *Client) GetRecords(
	ctx context.Context, databaseID string, params *GetRecordsParams,
) (resp RecordsResponse, err error) {
	ctx, done := c.begin(ctx, opGetRecords, databaseID)
	defer func() { err = done(err) }()

	var p GetRecordsParams
	if params != nil {
		p = *params
	}
	return c.records.Get(ctx, databaseID, p)
}

// SearchRecords runs a semantic search over a database. A nil
// Search.Threshold leaves the server default (DefaultSearchThreshold).
func (c *Client) SearchRecords(
	ctx context.Context, databaseID string, params SearchRecordsParams,
) (resp RecordsResponse, err error) {
	ctx, done := c.begin(ctx, opSearchRecords, databaseID)
	defer func() { err = done(err) }()

	return c.records.Search(ctx, databaseID, params)
}

// FilterRecords returns the records of a database matching params.Filter.
func (c *Client) FilterRecords(
	ctx context.Context, databaseID string, params FilterRecordsParams,
) (resp RecordsResponse, err error) {
	ctx, done := c.begin(ctx, opFilterRecords, databaseID)
	defer func() { err = done(err) }()

	return c.records.Filter(ctx, databaseID, params)
}

// begin attaches the call logger to ctx and returns a func that records
// the outcome and normalizes the returned error.
func (c *Client) begin(ctx context.Context, op, databaseID string) (context.Context, func(error) error) {
	start := time.Now()
	log := logger.FromContext(ctx, c.logger).With(zap.String("database_id", databaseID))
	ctx = logger.ContextWithLogger(ctx, log)

	return ctx, func(err error) error {
		if err == nil {
			c.obs.observe(log, op, start, nil)
			return nil
		}
		apiErr := asError(err)
		c.obs.observe(log, op, start, apiErr)
		return apiErr
	}
}
