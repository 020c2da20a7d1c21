package config

const (
	localConfigFile   = "ytcatalog.toml"
	defaultConfigPath = "~/.config/ytcatalog/config.toml"
	defaultCacheDir   = "~/.cache/ytcatalog"
)

// Default returns configuration with safe defaults.
func Default() Config {
	return Config{
		YouTube: YouTube{
			RequestsPerSecond: 5,
		},
		Cache: Cache{
			Dir:     defaultCacheDir,
			Backend: "dir",
		},
		Ytdlp: Ytdlp{
			Path:           "yt-dlp",
			TimeoutSeconds: 120,
		},
		Output: Output{
			ChannelsDir: "channels",
		},
		Logging: Logging{
			Format: "auto",
			Level:  "info",
		},
	}
}
