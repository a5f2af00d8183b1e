// Package telemetry provides Prometheus metrics and correlation-id aware logging helpers.
package telemetry

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	once sync.Once

	// Counters
	APIRequests      *prometheus.CounterVec
	APIRetries       prometheus.Counter
	DiscoverySuccess prometheus.Counter
	DiscoveryFailure prometheus.Counter
	FallbackScans    prometheus.Counter

	// Histograms (seconds)
	DiscoveryDuration prometheus.Observer
)

// Init registers metrics (idempotent).
func Init() {
	once.Do(func() {
		APIRequests = promauto.NewCounterVec(prometheus.CounterOpts{Name: "yt_api_requests_total", Help: "YouTube Data API requests by endpoint and outcome"}, []string{"endpoint", "outcome"})
		APIRetries = promauto.NewCounter(prometheus.CounterOpts{Name: "yt_api_retries_total", Help: "Number of retried YouTube Data API requests"})
		DiscoverySuccess = promauto.NewCounter(prometheus.CounterOpts{Name: "stream_discoveries_succeeded_total", Help: "Number of stream discovery pipelines that completed"})
		DiscoveryFailure = promauto.NewCounter(prometheus.CounterOpts{Name: "stream_discoveries_failed_total", Help: "Number of stream discovery pipelines that failed"})
		FallbackScans = promauto.NewCounter(prometheus.CounterOpts{Name: "stream_fallback_scans_total", Help: "Number of recent-upload fallback scans triggered"})
		DiscoveryDuration = promauto.NewHistogram(prometheus.HistogramOpts{Name: "stream_discovery_duration_seconds", Help: "End-to-end discovery duration seconds", Buckets: prometheus.DefBuckets})
	})
}

// CountRequest records one API request outcome if metrics are initialized.
func CountRequest(endpoint, outcome string) {
	if APIRequests != nil {
		APIRequests.WithLabelValues(endpoint, outcome).Inc()
	}
}

// CountRetry records one retried API request if metrics are initialized.
func CountRetry() {
	if APIRetries != nil {
		APIRetries.Inc()
	}
}

// TimeFunc measures the duration of fn and records in observer if non-nil.
func TimeFunc(obs prometheus.Observer, fn func()) time.Duration {
	start := time.Now()
	fn()
	d := time.Since(start)
	if obs != nil {
		obs.Observe(d.Seconds())
	}
	return d
}

// Correlation ID helpers ----------------------------------------------------
type corrKeyType struct{}

var corrKey corrKeyType

// WithCorrelation returns a new context embedding the correlation id.
func WithCorrelation(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, corrKey, id)
}

// GetCorrelation returns correlation id or empty string.
func GetCorrelation(ctx context.Context) string {
	if s, ok := ctx.Value(corrKey).(string); ok {
		return s
	}
	return ""
}

// LoggerWithCorr returns a logger with corr attribute if present.
func LoggerWithCorr(ctx context.Context) *slog.Logger {
	if id := GetCorrelation(ctx); id != "" {
		return slog.Default().With(slog.String("corr", id))
	}
	return slog.Default()
}
