package config

import (
	"fmt"
	"regexp"
	"strings"
)

// Validate checks the configuration for values the engine and CLI reject.
func (c *Config) Validate() error {
	if err := c.validateEngine(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateEngine() error {
	if c.Engine.MergeThreshold < 0 || c.Engine.MergeThreshold > 1 {
		return fmt.Errorf("engine.merge_threshold must be within [0,1], got %v", c.Engine.MergeThreshold)
	}
	if c.Engine.MinTextLength < 1 {
		return fmt.Errorf("engine.min_text_length must be at least 1, got %d", c.Engine.MinTextLength)
	}
	switch c.Engine.MergeText {
	case "timing", "guess":
	default:
		return fmt.Errorf("engine.merge_text must be \"timing\" or \"guess\", got %q", c.Engine.MergeText)
	}
	for _, pattern := range c.Engine.DeletePatterns {
		if _, err := regexp.Compile(pattern); err != nil {
			return fmt.Errorf("engine.delete_patterns entry %q: %w", pattern, err)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\", got %q", c.Logging.Format)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
