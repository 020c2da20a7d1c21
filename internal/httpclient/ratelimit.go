package httpclient

import (
	"context"
	"net/url"
	"sync"

	"golang.org/x/time/rate"
)

// RateLimiter paces requests per domain using a token bucket.
type RateLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
	config   RateLimiterConfig
}

// RateLimiterConfig defines rate limiting behavior.
type RateLimiterConfig struct {
	// DataAPIRPS is requests per second for www.googleapis.com. 0 disables pacing.
	DataAPIRPS float64
	// DefaultRPS applies to every other host. 0 disables pacing.
	DefaultRPS float64
	// CustomRates overrides the rate for individual hosts, e.g. the
	// thumbnail hosts fetched for channel branding.
	CustomRates map[string]float64
}

// DefaultRateLimiterConfig returns conservative defaults for the Data API.
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		DataAPIRPS: 5.0,
		DefaultRPS: 10.0,
	}
}

// NewRateLimiter creates a new rate limiter with the given configuration.
func NewRateLimiter(cfg RateLimiterConfig) *RateLimiter {
	if cfg.CustomRates == nil {
		cfg.CustomRates = make(map[string]float64)
	}
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		config:   cfg,
	}
}

// Wait blocks until the limiter for the URL's host admits a request.
func (rl *RateLimiter) Wait(ctx context.Context, u *url.URL) error {
	if rl == nil {
		return nil
	}
	limiter := rl.getLimiter(u.Hostname())
	if limiter == nil {
		return nil
	}
	return limiter.Wait(ctx)
}

func (rl *RateLimiter) getLimiter(host string) *rate.Limiter {
	rps := rl.getRPS(host)
	if rps <= 0 {
		return nil
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if limiter, ok := rl.limiters[host]; ok {
		return limiter
	}

	limiter := rate.NewLimiter(rate.Limit(rps), 1)
	rl.limiters[host] = limiter
	return limiter
}

func (rl *RateLimiter) getRPS(host string) float64 {
	if rps, ok := rl.config.CustomRates[host]; ok {
		return rps
	}
	switch host {
	case "www.googleapis.com", "youtube.googleapis.com":
		return rl.config.DataAPIRPS
	default:
		return rl.config.DefaultRPS
	}
}

// Stats returns the configured rate for every host seen so far.
func (rl *RateLimiter) Stats() map[string]float64 {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	stats := make(map[string]float64, len(rl.limiters))
	for host, limiter := range rl.limiters {
		stats[host] = float64(limiter.Limit())
	}
	return stats
}
