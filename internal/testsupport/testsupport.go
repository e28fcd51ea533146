// Package testsupport holds shared fixtures for package tests.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"subfix/internal/config"
	"subfix/internal/sessions"
)

// ConfigOption customizes the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config backed by a unique temp workspace per test.
// File logging is disabled so tests never write outside the temp tree.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.Paths.WorkspaceDir = t.TempDir()
	cfg.Logging.Dir = ""

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithThreshold overrides the merge threshold on the test config.
func WithThreshold(threshold float64) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Engine.MergeThreshold = threshold
	}
}

// WithOutputDir points fixed files at a dedicated directory.
func WithOutputDir(dir string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Paths.OutputDir = dir
	}
}

// MustOpenStore opens a sessions.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *sessions.Store {
	t.Helper()

	store, err := sessions.Open(cfg)
	if err != nil {
		t.Fatalf("sessions.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

// WriteSubtitle drops an SRT fixture into dir and returns its path.
func WriteSubtitle(t testing.TB, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
