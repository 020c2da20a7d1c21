package httpclient

import (
	"net/http"
	"strings"
)

// Transport is an http.RoundTripper that paces requests and decorates them
// with the user agent and, for Google API hosts, the API key.
//
// option.WithHTTPClient bypasses option.WithAPIKey, so the key has to be
// attached here when the Data API service runs on this transport.
type Transport struct {
	base      http.RoundTripper
	limiter   *RateLimiter
	userAgent string
	apiKey    string
}

// NewTransport wraps base (http.DefaultTransport when nil).
func NewTransport(base http.RoundTripper, cfg *Config) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Transport{
		base:      base,
		limiter:   NewRateLimiter(cfg.RateLimiter),
		userAgent: cfg.UserAgent,
		apiKey:    cfg.APIKey,
	}
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context(), req.URL); err != nil {
		return nil, err
	}

	// RoundTrippers must not modify the caller's request.
	req = req.Clone(req.Context())
	if req.Header.Get("User-Agent") == "" && t.userAgent != "" {
		req.Header.Set("User-Agent", t.userAgent)
	}
	if t.apiKey != "" && isGoogleAPIHost(req.URL.Hostname()) {
		q := req.URL.Query()
		if q.Get("key") == "" {
			q.Set("key", t.apiKey)
			req.URL.RawQuery = q.Encode()
		}
	}

	return t.base.RoundTrip(req)
}

// Limiter returns the transport's rate limiter.
func (t *Transport) Limiter() *RateLimiter {
	return t.limiter
}

func isGoogleAPIHost(host string) bool {
	return strings.HasSuffix(host, "googleapis.com")
}
