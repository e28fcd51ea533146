package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	// WorkspaceDir holds the session database and per-session action files.
	WorkspaceDir string `toml:"workspace_dir"`
	// OutputDir is where fixed subtitle files land when no explicit output
	// path is given. Empty means next to the input file.
	OutputDir string `toml:"output_dir"`
}

// Engine contains the correction engine tunables.
type Engine struct {
	MergeThreshold float64  `toml:"merge_threshold"`
	MinTextLength  int      `toml:"min_text_length"`
	DeletePatterns []string `toml:"delete_patterns"`
	IgnoreCase     bool     `toml:"ignore_case"`
	// MergeText is "timing" (merged records contribute timing only) or
	// "guess" (the anchor's text becomes the merge group's consensus pick).
	MergeText string `toml:"merge_text"`
}

// Review contains configuration for the interactive review step.
type Review struct {
	// Editor overrides the editor used for the actions file. Empty falls
	// back to $SUBFIX_EDITOR, then $EDITOR, then vi.
	Editor string `toml:"editor"`
}

// Logging contains log output configuration.
type Logging struct {
	Dir    string `toml:"dir"`
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config is the root configuration for the CLI and the engine.
type Config struct {
	Paths   Paths   `toml:"paths"`
	Engine  Engine  `toml:"engine"`
	Review  Review  `toml:"review"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the expanded default configuration file path.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/subfix/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. The bool reports
// whether a config file existed at the resolved path.
func Load(path string) (*Config, string, bool, error) {
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
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("subfix.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories the CLI needs.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.WorkspaceDir}
	if strings.TrimSpace(c.Logging.Dir) != "" {
		dirs = append(dirs, c.Logging.Dir)
	}
	if strings.TrimSpace(c.Paths.OutputDir) != "" {
		dirs = append(dirs, c.Paths.OutputDir)
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	trimmed := strings.TrimSpace(pathValue)
	if trimmed == "" {
		return "", nil
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if trimmed == "~" {
			return home, nil
		}
		if strings.HasPrefix(trimmed, "~/") {
			return filepath.Join(home, trimmed[2:]), nil
		}
		return "", fmt.Errorf("unsupported home expansion in %q", pathValue)
	}
	return filepath.Abs(trimmed)
}

// ExpandPath expands a user-supplied path, resolving ~ and relative segments.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes the embedded sample configuration to path.
func CreateSample(path string) error {
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	if expanded == "" {
		return errors.New("config path is empty")
	}
	if _, err := os.Stat(expanded); err == nil {
		return fmt.Errorf("config file already exists at %s", expanded)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(expanded, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
