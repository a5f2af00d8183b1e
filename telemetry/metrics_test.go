package telemetry

import (
	"context"
	"testing"
	"time"
)

func TestMetricsInitialized(t *testing.T) {
	Init()

	if APIRequests == nil {
		t.Error("APIRequests counter vec not initialized")
	}
	if APIRetries == nil {
		t.Error("APIRetries counter not initialized")
	}
	if DiscoveryDuration == nil {
		t.Error("DiscoveryDuration histogram not initialized")
	}

	// Init must be idempotent; a second call should not panic on re-registration.
	Init()
}

func TestCountersNilSafe(t *testing.T) {
	// Counting before Init must be a no-op, not a panic.
	saved := APIRequests
	savedRetries := APIRetries
	APIRequests = nil
	APIRetries = nil
	defer func() {
		APIRequests = saved
		APIRetries = savedRetries
	}()

	CountRequest("search", "ok")
	CountRetry()
}

func TestTimeFuncRecordsObservation(t *testing.T) {
	Init()

	d := TimeFunc(DiscoveryDuration, func() {
		time.Sleep(time.Millisecond)
	})
	if d < time.Millisecond {
		t.Errorf("TimeFunc duration = %v, want >= 1ms", d)
	}

	// nil observer is allowed
	if d := TimeFunc(nil, func() {}); d < 0 {
		t.Errorf("TimeFunc with nil observer returned %v", d)
	}
}

func TestCorrelationRoundTrip(t *testing.T) {
	ctx := context.Background()
	if got := GetCorrelation(ctx); got != "" {
		t.Errorf("GetCorrelation(empty ctx) = %q, want empty", got)
	}

	ctx = WithCorrelation(ctx, "abc-123")
	if got := GetCorrelation(ctx); got != "abc-123" {
		t.Errorf("GetCorrelation = %q, want abc-123", got)
	}

	if logger := LoggerWithCorr(ctx); logger == nil {
		t.Error("LoggerWithCorr returned nil")
	}
}
