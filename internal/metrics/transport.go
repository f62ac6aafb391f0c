// Package metrics instruments outgoing HTTP calls to the records API.
package metrics

import (
	"errors"
	"fmt"
	"net/http"
	"path"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// statusTransportError labels calls that never got a response.
const statusTransportError = "error"

// Doer sends a single HTTP request.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTP holds the per-request collectors.
type HTTP struct {
	duration *prometheus.HistogramVec
	total    *prometheus.CounterVec
}

// NewHTTP registers the HTTP collectors on reg, reusing collectors that
// are already registered.
func NewHTTP(reg prometheus.Registerer) (*HTTP, error) {
	m := &HTTP{
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "lightfeed",
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"method", "endpoint", "status"},
		),
		total: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "lightfeed",
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
	}
	if err := Register(reg, &m.duration); err != nil {
		return nil, err
	}
	if err := Register(reg, &m.total); err != nil {
		return nil, err
	}
	return m, nil
}

// Register registers c on reg, or points c at the collector already
// registered under the same description.
func Register[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	if err := reg.Register(*c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return fmt.Errorf("register metric: %w", err)
		}
		existing, ok := are.ExistingCollector.(T)
		if !ok {
			return fmt.Errorf("metric already registered with incompatible type: %T", are.ExistingCollector)
		}
		*c = existing
	}
	return nil
}

// Wrap returns a Doer that records duration and count of every call made
// through next.
func (m *HTTP) Wrap(next Doer) Doer {
	return doerFunc(func(req *http.Request) (*http.Response, error) {
		start := time.Now()
		resp, err := next.Do(req)

		status := statusTransportError
		if err == nil {
			status = strconv.Itoa(resp.StatusCode)
		}
		endpoint := normalizeEndpoint(req.URL.Path)

		m.duration.WithLabelValues(req.Method, endpoint, status).Observe(time.Since(start).Seconds())
		m.total.WithLabelValues(req.Method, endpoint, status).Inc()
		return resp, err //nolint:wrapcheck // pass-through
	})
}

type doerFunc func(*http.Request) (*http.Response, error)

func (f doerFunc) Do(req *http.Request) (*http.Response, error) { return f(req) }

// normalizeEndpoint keeps the database ID out of the label to bound
// cardinality.
func normalizeEndpoint(p string) string {
	switch base := path.Base(p); base {
	case "records", "search", "filter":
		return base
	default:
		return "unknown"
	}
}
