package config

import (
	"errors"
	"fmt"

	"ytcatalog/internal/cache"
	"ytcatalog/internal/filter"
	"ytcatalog/internal/subset"
)

// ErrMissingAPIKey indicates that no Data API key was configured.
var ErrMissingAPIKey = errors.New("config: youtube.api_key (or YTCATALOG_API_KEY) is required")

// Validate checks configuration validity. The API key is checked separately
// by RequireAPIKey since some commands never call the API.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case cache.BackendDir, cache.BackendBolt:
	default:
		return fmt.Errorf("cache.backend: unsupported value %q (want dir or bolt)", c.Cache.Backend)
	}
	if c.Cache.Dir == "" {
		return errors.New("cache.dir must be set")
	}
	if c.YouTube.RequestsPerSecond < 0 {
		return errors.New("youtube.requests_per_second must be non-negative")
	}
	for host, rps := range c.YouTube.HostRates {
		if rps < 0 {
			return fmt.Errorf("youtube.host_rates: rate for %q must be non-negative", host)
		}
	}
	if c.Ytdlp.TimeoutSeconds <= 0 {
		return errors.New("ytdlp.timeout_seconds must be positive")
	}
	if _, err := subset.ParseStrategy(c.Selection.By); err != nil {
		return fmt.Errorf("selection.by: %w", err)
	}
	if c.Selection.MaxVideos < 0 {
		return errors.New("selection.max_videos must be non-negative")
	}
	if c.Selection.MaxGB < 0 {
		return errors.New("selection.max_gb must be non-negative")
	}
	if _, err := filter.ParseDate(c.Selection.DateAfter); err != nil {
		return fmt.Errorf("selection.date_after: %w", err)
	}
	if _, err := filter.ParseDate(c.Selection.DateBefore); err != nil {
		return fmt.Errorf("selection.date_before: %w", err)
	}
	if n := len(c.Selection.TitlesFiles); n != 0 && n != 2 {
		return fmt.Errorf("selection.titles_files: need exactly 2 files, got %d", n)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "auto", "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}

// RequireAPIKey reports ErrMissingAPIKey when no key is configured.
func (c *Config) RequireAPIKey() error {
	if c.YouTube.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}
