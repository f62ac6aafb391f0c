package lightfeed

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/lightfeed-ai/lightfeed-go/internal/metrics"
)

const statusOK = "ok"

// sdkMetrics holds prometheus metrics registered for the client.
type sdkMetrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

func newSDKMetrics(reg prometheus.Registerer) (*sdkMetrics, error) {
	m := &sdkMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lightfeed",
			Subsystem: "sdk",
			Name:      "operations_total",
			Help:      "Total client operations by type and status.",
		}, []string{"operation", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "lightfeed",
			Subsystem: "sdk",
			Name:      "operation_duration_seconds",
			Help:      "Client operation duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}
	if err := metrics.Register(reg, &m.operations); err != nil {
		return nil, fmt.Errorf("lightfeed: %w", err)
	}
	if err := metrics.Register(reg, &m.duration); err != nil {
		return nil, fmt.Errorf("lightfeed: %w", err)
	}
	return m, nil
}

// observer provides metrics for client operations. Logging goes through
// the per-call logger so context loggers are honored.
type observer struct {
	metrics *sdkMetrics
}

func newObserver(reg prometheus.Registerer) (*observer, error) {
	if reg == nil {
		return &observer{}, nil
	}
	m, err := newSDKMetrics(reg)
	if err != nil {
		return nil, err
	}
	return &observer{metrics: m}, nil
}

func (o *observer) observe(log *zap.Logger, op string, start time.Time, err *Error) {
	dur := time.Since(start)

	status := statusOK
	if err != nil {
		status = err.Kind().String()
	}

	if o != nil && o.metrics != nil {
		o.metrics.operations.WithLabelValues(op, status).Inc()
		o.metrics.duration.WithLabelValues(op).Observe(dur.Seconds())
	}

	if err != nil {
		log.Warn("operation failed",
			zap.String("op", op),
			zap.String("status", status),
			zap.Duration("duration", dur),
			zap.Error(err),
		)
		return
	}
	log.Debug("operation completed",
		zap.String("op", op),
		zap.Duration("duration", dur),
	)
}
