package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Environment variables overriding file values.
const (
	EnvAPIKey            = "YTCATALOG_API_KEY"
	EnvCacheDir          = "YTCATALOG_CACHE_DIR"
	EnvCacheBackend      = "YTCATALOG_CACHE_BACKEND"
	EnvYtdlpPath         = "YTCATALOG_YTDLP_PATH"
	EnvYtdlpTimeout      = "YTCATALOG_YTDLP_TIMEOUT"
	EnvRequestsPerSecond = "YTCATALOG_REQUESTS_PER_SECOND"
	EnvLogLevel          = "YTCATALOG_LOG_LEVEL"
	EnvLogFormat         = "YTCATALOG_LOG_FORMAT"
)

// applyEnv overrides config with environment variables. Unlike unset
// variables, malformed numeric values are reported.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get(EnvAPIKey); ok {
		c.YouTube.APIKey = v
	}
	if v, ok := get(EnvCacheDir); ok {
		c.Cache.Dir = v
	}
	if v, ok := get(EnvCacheBackend); ok {
		c.Cache.Backend = v
	}
	if v, ok := get(EnvYtdlpPath); ok {
		c.Ytdlp.Path = v
	}
	if v, ok := get(EnvYtdlpTimeout); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvYtdlpTimeout, err)
		}
		if d < time.Second {
			return fmt.Errorf("%s: %q is below the one second minimum", EnvYtdlpTimeout, v)
		}
		// Timeouts are kept in whole seconds; partial seconds round up.
		c.Ytdlp.TimeoutSeconds = int((d + time.Second - 1) / time.Second)
	}
	if v, ok := get(EnvRequestsPerSecond); ok {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRequestsPerSecond, err)
		}
		c.YouTube.RequestsPerSecond = rps
	}
	if v, ok := get(EnvLogLevel); ok {
		c.Logging.Level = v
	}
	if v, ok := get(EnvLogFormat); ok {
		c.Logging.Format = v
	}
	return nil
}
