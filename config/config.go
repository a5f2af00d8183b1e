// Package config loads environment variables and provides a typed Config used across the service.
// It applies sensible defaults so the binary can run locally with minimal setup.
// The YouTube Data API key is required for discovery; use ValidateAPIReady.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// YouTube Data API
	APIBaseURL string
	APIKey     string

	// Requester tuning
	HTTPTimeout    time.Duration
	MaxAttempts    int
	InitialBackoff time.Duration
	RequestsPerSec float64

	// Discovery limits
	PageSize        int
	BatchSize       int
	LiveLimit       int
	UpcomingLimit   int
	UploadScanLimit int

	// HTTP server
	HTTPAddr string
}

// Load reads environment variables and applies defaults. It doesn't fail if the
// API key is missing; use ValidateAPIReady() when you require discovery calls.
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.APIBaseURL = os.Getenv("YT_API_BASE_URL")
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = "https://www.googleapis.com/youtube/v3"
	}
	cfg.APIKey = os.Getenv("YT_API_KEY")

	cfg.HTTPTimeout = envDuration("YT_HTTP_TIMEOUT", 20*time.Second)
	cfg.MaxAttempts = envInt("YT_MAX_ATTEMPTS", 5)
	cfg.InitialBackoff = envDuration("YT_INITIAL_BACKOFF", time.Second)
	if cfg.MaxAttempts < 1 {
		return nil, fmt.Errorf("YT_MAX_ATTEMPTS must be >= 1, got %d", cfg.MaxAttempts)
	}

	cfg.RequestsPerSec = 5
	if v := os.Getenv("YT_REQUESTS_PER_SEC"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			return nil, fmt.Errorf("invalid YT_REQUESTS_PER_SEC: %q", v)
		}
		cfg.RequestsPerSec = f
	}

	cfg.PageSize = envInt("YT_PAGE_SIZE", 50)
	cfg.BatchSize = envInt("YT_BATCH_SIZE", 50)
	cfg.LiveLimit = envInt("YT_LIVE_LIMIT", 50)
	cfg.UpcomingLimit = envInt("YT_UPCOMING_LIMIT", 50)
	cfg.UploadScanLimit = envInt("YT_UPLOAD_SCAN_LIMIT", 120)

	cfg.HTTPAddr = os.Getenv("HTTP_ADDR")
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}

	return cfg, nil
}

// ValidateAPIReady checks required fields for talking to the YouTube Data API.
func (c *Config) ValidateAPIReady() error {
	if c.APIKey == "" {
		return fmt.Errorf("missing YT_API_KEY")
	}
	return nil
}

func envInt(key string, def int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if s := os.Getenv(key); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			return d
		}
	}
	return def
}
