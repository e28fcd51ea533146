package config

import (
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeEngine()
	c.normalizeReview()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	workspace, err := expandPath(c.Paths.WorkspaceDir)
	if err != nil {
		return err
	}
	if workspace == "" {
		workspace, err = expandPath(defaultWorkspaceDir)
		if err != nil {
			return err
		}
	}
	c.Paths.WorkspaceDir = workspace

	output, err := expandPath(c.Paths.OutputDir)
	if err != nil {
		return err
	}
	c.Paths.OutputDir = output
	return nil
}

func (c *Config) normalizeEngine() {
	c.Engine.MergeText = strings.ToLower(strings.TrimSpace(c.Engine.MergeText))
	if c.Engine.MergeText == "" {
		c.Engine.MergeText = defaultMergeText
	}
	patterns := make([]string, 0, len(c.Engine.DeletePatterns))
	for _, pattern := range c.Engine.DeletePatterns {
		if trimmed := strings.TrimSpace(pattern); trimmed != "" {
			patterns = append(patterns, trimmed)
		}
	}
	c.Engine.DeletePatterns = patterns
}

func (c *Config) normalizeReview() {
	c.Review.Editor = strings.TrimSpace(c.Review.Editor)
	if c.Review.Editor == "" {
		c.Review.Editor = strings.TrimSpace(os.Getenv("SUBFIX_EDITOR"))
	}
	if c.Review.Editor == "" {
		c.Review.Editor = strings.TrimSpace(os.Getenv("EDITOR"))
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	if expanded, err := expandPath(c.Logging.Dir); err == nil {
		c.Logging.Dir = expanded
	}
}
