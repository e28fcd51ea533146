package config

const (
	defaultWorkspaceDir   = "~/.local/share/subfix"
	defaultLogDir         = "~/.local/share/subfix/logs"
	defaultLogLevel       = "info"
	defaultLogFormat      = "console"
	defaultMergeThreshold = 0.5
	defaultMinTextLength  = 3
	defaultMergeText      = "timing"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkspaceDir: defaultWorkspaceDir,
		},
		Engine: Engine{
			MergeThreshold: defaultMergeThreshold,
			MinTextLength:  defaultMinTextLength,
			MergeText:      defaultMergeText,
		},
		Logging: Logging{
			Dir:    defaultLogDir,
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
