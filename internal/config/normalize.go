package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	var err error
	if c.Cache.Dir, err = expandPath(c.Cache.Dir); err != nil {
		return fmt.Errorf("cache.dir: %w", err)
	}
	if c.Output.ChannelsDir, err = expandPath(c.Output.ChannelsDir); err != nil {
		return fmt.Errorf("output.channels_dir: %w", err)
	}
	for i, p := range c.Selection.TitlesFiles {
		if c.Selection.TitlesFiles[i], err = expandPath(p); err != nil {
			return fmt.Errorf("selection.titles_files[%d]: %w", i, err)
		}
	}

	c.Cache.Backend = strings.ToLower(strings.TrimSpace(c.Cache.Backend))
	c.Selection.By = strings.ToLower(strings.TrimSpace(c.Selection.By))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	return nil
}
