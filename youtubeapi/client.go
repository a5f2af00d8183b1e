// Package youtubeapi contains a minimal client for the YouTube Data API v3
// read endpoints used by stream discovery: channel lookup, search, and video
// batch lookup. All calls are GETs authenticated with a static API key, rate
// limited locally, and retried on transient failures.
package youtubeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v5"
	"golang.org/x/time/rate"

	"github.com/yuytools/streamwatch/config"
	"github.com/yuytools/streamwatch/telemetry"
)

// transientStatus is the set of statuses worth retrying. 401/403 are included
// because the API can return them spuriously for a freshly rotated key while
// the change propagates.
func transientStatus(code int) bool {
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusTooManyRequests,
		http.StatusInternalServerError, http.StatusServiceUnavailable:
		return true
	}
	return false
}

// errTransient marks a retryable attempt failure inside the retry loop.
type errTransient struct {
	status int
}

func (e *errTransient) Error() string { return fmt.Sprintf("transient HTTP %d", e.status) }

// Client issues authenticated, rate-limited GETs against the Data API.
type Client struct {
	BaseURL        string
	APIKey         string
	HTTPClient     *http.Client
	Limiter        *rate.Limiter
	MaxAttempts    int
	InitialBackoff time.Duration
	PageSize       int
	BatchSize      int
}

// NewClient builds a Client from configuration.
func NewClient(cfg *config.Config) *Client {
	burst := int(cfg.RequestsPerSec)
	if burst < 1 {
		burst = 1
	}
	return &Client{
		BaseURL:        cfg.APIBaseURL,
		APIKey:         cfg.APIKey,
		HTTPClient:     &http.Client{Timeout: cfg.HTTPTimeout},
		Limiter:        rate.NewLimiter(rate.Limit(cfg.RequestsPerSec), burst),
		MaxAttempts:    cfg.MaxAttempts,
		InitialBackoff: cfg.InitialBackoff,
		PageSize:       cfg.PageSize,
		BatchSize:      cfg.BatchSize,
	}
}

func (c *Client) http() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

// get performs one logical GET against endpoint (e.g. "search") with retries,
// decoding the 200 body into out.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	if c.APIKey != "" {
		params = cloneValues(params)
		params.Set("key", c.APIKey)
	}
	reqURL := c.BaseURL + "/" + endpoint + "?" + params.Encode()

	attempt := 0
	operation := func() (struct{}, error) {
		if attempt > 0 {
			telemetry.CountRetry()
		}
		attempt++

		if c.Limiter != nil {
			if err := c.Limiter.Wait(ctx); err != nil {
				return struct{}{}, backoff.Permanent(err)
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return struct{}{}, backoff.Permanent(err)
		}
		resp, err := c.http().Do(req)
		if err != nil {
			return struct{}{}, backoff.Permanent(err)
		}
		defer func() {
			if err := resp.Body.Close(); err != nil {
				slog.Warn("failed to close response body", slog.Any("err", err))
			}
		}()

		telemetry.LoggerWithCorr(ctx).Debug("api request",
			slog.String("endpoint", endpoint),
			slog.Int("status", resp.StatusCode),
			slog.Int("attempt", attempt))

		if resp.StatusCode == http.StatusOK {
			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				return struct{}{}, backoff.Permanent(fmt.Errorf("decode %s response: %w", endpoint, err))
			}
			telemetry.CountRequest(endpoint, "ok")
			return struct{}{}, nil
		}

		if transientStatus(resp.StatusCode) {
			telemetry.CountRequest(endpoint, "transient")
			return struct{}{}, &errTransient{status: resp.StatusCode}
		}

		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		msg := string(body)
		var apiErr apiError
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
			msg = apiErr.Error.Message
		}
		telemetry.CountRequest(endpoint, "error")
		return struct{}{}, backoff.Permanent(&RequestError{
			Kind:       KindNonTransientHTTP,
			StatusCode: resp.StatusCode,
			Message:    msg,
		})
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.InitialBackoff
	bo.RandomizationFactor = 0
	bo.Multiplier = 2
	bo.MaxInterval = time.Hour

	_, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(bo),
		backoff.WithMaxTries(uint(c.MaxAttempts)))
	if err == nil {
		return nil
	}

	var transient *errTransient
	if errors.As(err, &transient) {
		telemetry.CountRequest(endpoint, "exhausted")
		return &RequestError{Kind: KindRetriesExhausted, Message: "exceeded retry attempts"}
	}
	return err
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v)+1)
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}
