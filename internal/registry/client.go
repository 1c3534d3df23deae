// Package registry is the external-registry collaborator used for
// advisory corroboration of evidence sources. Lookups carry explicit
// timeouts, bounded retries with exponential backoff, and client-side
// rate limiting; a miss, timeout or error never fails a verification
// check.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/avolkov/tessera/internal/model"
)

// sleepFunc is the sleep used between retries (injectable for tests).
var sleepFunc = time.Sleep

// Client talks to the configured registry endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	maxRetries int
	limiter    *Limiter
	logger     *zap.Logger
}

// NewClient creates a registry client from configuration.
func NewClient(cfg model.RegistryConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	retries := cfg.MaxRetries
	if retries <= 0 {
		retries = 3
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 2
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 5
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		maxRetries: retries,
		limiter:    NewLimiter(rps, burst),
		logger:     logger,
	}
}

// corroborationResponse is the registry's answer for one source.
type corroborationResponse struct {
	Corroborated bool `json:"corroborated"`
}

// Corroborate asks the registry whether it knows the source. Transient
// failures (5xx, 429, network errors) are retried with exponential
// backoff; a definitive miss returns (false, nil).
func (c *Client) Corroborate(ctx context.Context, source string) (bool, error) {
	if c.baseURL == "" {
		return false, fmt.Errorf("registry base URL not configured")
	}
	if err := c.limiter.Wait(ctx, c.baseURL); err != nil {
		return false, err
	}

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		ok, retryable, err := c.lookup(ctx, source)
		if err == nil {
			return ok, nil
		}
		lastErr = err
		if !retryable {
			break
		}
		if attempt < c.maxRetries-1 {
			backoff := time.Duration(1<<uint(attempt)) * time.Second
			c.logger.Debug("registry lookup retry",
				zap.String("source", source),
				zap.Int("attempt", attempt+1),
				zap.Duration("backoff", backoff))
			sleepFunc(backoff)
		}
	}
	return false, lastErr
}

// lookup performs one request. The second return value reports whether
// the failure is worth retrying.
func (c *Client) lookup(ctx context.Context, source string) (bool, bool, error) {
	endpoint := c.baseURL + "/v1/corroborate?source=" + url.QueryEscape(source)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "tessera/0.1")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, isRetryableNetworkError(err.Error()), fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusOK:
		var body corroborationResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return false, false, fmt.Errorf("decode response: %w", err)
		}
		return body.Corroborated, false, nil
	case resp.StatusCode == http.StatusNotFound:
		return false, false, nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return false, true, fmt.Errorf("registry status %d", resp.StatusCode)
	default:
		return false, false, fmt.Errorf("registry status %d", resp.StatusCode)
	}
}

// isRetryableNetworkError checks error strings for transient failures.
func isRetryableNetworkError(errMsg string) bool {
	s := strings.ToLower(errMsg)
	return strings.Contains(s, "timeout") ||
		strings.Contains(s, "connection refused") ||
		strings.Contains(s, "connection reset")
}
