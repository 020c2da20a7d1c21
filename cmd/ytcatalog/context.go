package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"ytcatalog/internal/cache"
	"ytcatalog/internal/catalog"
	"ytcatalog/internal/config"
	"ytcatalog/internal/httpclient"
	"ytcatalog/internal/logging"
	"ytcatalog/internal/youtube"
)

type globalFlags struct {
	config    string
	logLevel  string
	logFormat string
	cacheDir  string
}

type commandContext struct {
	flags *globalFlags

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(flags *globalFlags) *commandContext {
	return &commandContext{flags: flags}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(strings.TrimSpace(c.flags.config), c.flags.apply)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// apply copies the global flags that were set over file and env values.
func (f *globalFlags) apply(cfg *config.Config) {
	if f.logLevel != "" {
		cfg.Logging.Level = f.logLevel
	}
	if f.logFormat != "" {
		cfg.Logging.Format = f.logFormat
	}
	if f.cacheDir != "" {
		cfg.Cache.Dir = f.cacheDir
	}
}

func (c *commandContext) logger(cmd *cobra.Command) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cmd.ErrOrStderr(),
	})
}

// services holds everything a command needs to talk to the API through the
// cache. Close releases the cache lock and idle connections.
type services struct {
	cfg    *config.Config
	logger *slog.Logger
	http   *httpclient.Client
	api    *youtube.DataAPI
	store  cache.Store
	acq    *catalog.Acquirer
}

func (s *services) Close() error {
	s.logger.Debug("request pacing", slog.Any("host_rates", s.http.RateStats()))
	s.http.Close()
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}

func (c *commandContext) httpClient(cfg *config.Config) *httpclient.Client {
	httpCfg := httpclient.DefaultConfig()
	httpCfg.APIKey = cfg.YouTube.APIKey
	httpCfg.RateLimiter.DataAPIRPS = cfg.YouTube.RequestsPerSecond
	httpCfg.RateLimiter.CustomRates = cfg.YouTube.HostRates
	return httpclient.New(httpCfg)
}

// openServices builds the API client. withCache also opens the cache store.
func (c *commandContext) openServices(cmd *cobra.Command, withCache bool) (*services, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.RequireAPIKey(); err != nil {
		return nil, err
	}
	logger, err := c.logger(cmd)
	if err != nil {
		return nil, err
	}

	s := &services{cfg: cfg, logger: logger, http: c.httpClient(cfg)}

	s.api, err = youtube.NewDataAPI(cmd.Context(), youtube.DataAPIConfig{
		APIKey:     cfg.YouTube.APIKey,
		HTTPClient: s.http.HTTPClient(),
	}, logger)
	if err != nil {
		s.Close()
		return nil, err
	}

	if !withCache {
		return s, nil
	}

	s.store, err = cache.Open(cfg.Cache.Backend, cfg.Cache.Dir)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("open cache %s: %w", cfg.Cache.Dir, err)
	}
	s.acq = catalog.NewAcquirer(s.api, s.store, logger)
	logger.Debug("cache opened",
		slog.String("backend", cfg.Cache.Backend),
		slog.String("dir", cfg.Cache.Dir),
	)
	return s, nil
}
