package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// YouTube contains Data API settings.
type YouTube struct {
	APIKey            string  `toml:"api_key"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	// HostRates paces individual hosts, such as the thumbnail CDN, in
	// requests per second. 0 disables pacing for that host.
	HostRates map[string]float64 `toml:"host_rates"`
}

// Cache contains settings for the response cache.
type Cache struct {
	Dir     string `toml:"dir"`
	Backend string `toml:"backend"`
}

// Ytdlp contains settings for the size estimator.
type Ytdlp struct {
	Path           string   `toml:"path"`
	TimeoutSeconds int      `toml:"timeout_seconds"`
	ExtraArgs      []string `toml:"extra_args"`
}

// Output contains where generated assets are written.
type Output struct {
	ChannelsDir string `toml:"channels_dir"`
}

// Selection contains the default filter and subset options.
type Selection struct {
	By          string   `toml:"by"`
	MaxVideos   int      `toml:"max_videos"`
	MaxGB       float64  `toml:"max_gb"`
	DateAfter   string   `toml:"date_after"`
	DateBefore  string   `toml:"date_before"`
	TitlesFiles []string `toml:"titles_files"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config holds all application configuration.
type Config struct {
	YouTube   YouTube   `toml:"youtube"`
	Cache     Cache     `toml:"cache"`
	Ytdlp     Ytdlp     `toml:"ytdlp"`
	Output    Output    `toml:"output"`
	Selection Selection `toml:"selection"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns ~/.config/ytcatalog/config.toml.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Override adjusts the configuration after file and environment values are
// applied and before it is normalized and validated. Command line flags use
// it so that they go through the same checks as file values.
type Override func(*Config)

// Load resolves the configuration file, applies environment overrides and
// then overrides, and validates the result. It returns the config, the path
// consulted and whether that file existed.
func Load(path string, overrides ...Override) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolvedPath, err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, "", false, err
	}

	for _, override := range overrides {
		override(&cfg)
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// resolveConfigPath picks the explicit path, then ./ytcatalog.toml, then the
// default path. An explicit path must exist.
func resolveConfigPath(path string) (string, bool, error) {
	if strings.TrimSpace(path) != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			return "", false, fmt.Errorf("config file %s: %w", expanded, err)
		}
		return expanded, true, nil
	}

	candidates := []string{localConfigFile}
	if defaultPath, err := DefaultConfigPath(); err == nil {
		candidates = append(candidates, defaultPath)
	}

	for _, candidate := range candidates {
		_, err := os.Stat(candidate)
		if err == nil {
			return candidate, true, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", false, fmt.Errorf("stat %s: %w", candidate, err)
		}
	}

	return candidates[len(candidates)-1], false, nil
}

// YtdlpTimeout returns the size estimator timeout.
func (c *Config) YtdlpTimeout() time.Duration {
	return time.Duration(c.Ytdlp.TimeoutSeconds) * time.Second
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// CreateSample writes the annotated sample configuration to path.
func CreateSample(path string) error {
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(expanded); err == nil {
		return fmt.Errorf("config file %s already exists", expanded)
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(expanded, []byte(sampleConfig), 0600); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
