package registry

import (
	"context"
	"net/url"
	"sync"

	"golang.org/x/time/rate"
)

// Limiter applies per-host rate limiting so lookups against one
// registry host never starve another.
type Limiter struct {
	limiters     map[string]*rate.Limiter
	mu           sync.RWMutex
	defaultRate  rate.Limit
	defaultBurst int
}

// NewLimiter creates a limiter with the given default rate per host.
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 2
	}
	if burst <= 0 {
		burst = 5
	}

	return &Limiter{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  rate.Limit(requestsPerSecond),
		defaultBurst: burst,
	}
}

// Wait blocks until the host of rawURL has rate limit clearance.
func (l *Limiter) Wait(ctx context.Context, rawURL string) error {
	host, err := extractHost(rawURL)
	if err != nil {
		return err
	}
	return l.limiterFor(host).Wait(ctx)
}

// Allow reports whether a request to the host may proceed right now.
func (l *Limiter) Allow(rawURL string) bool {
	host, err := extractHost(rawURL)
	if err != nil {
		return false
	}
	return l.limiterFor(host).Allow()
}

// SetHostRate overrides the rate for a specific host.
func (l *Limiter) SetHostRate(host string, requestsPerSecond float64, burst int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if burst <= 0 {
		burst = l.defaultBurst
	}
	l.limiters[host] = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
}

func (l *Limiter) limiterFor(host string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[host]
	l.mu.RUnlock()
	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Double-check after acquiring the write lock.
	if limiter, exists := l.limiters[host]; exists {
		return limiter
	}
	limiter = rate.NewLimiter(l.defaultRate, l.defaultBurst)
	l.limiters[host] = limiter
	return limiter
}

func extractHost(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	return parsed.Host, nil
}
