package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"subfix/internal/config"
	"subfix/internal/correction"
	"subfix/internal/logging"
	"subfix/internal/review"
	"subfix/internal/sessions"
	"subfix/internal/srt"
)

// PlanRequest describes one compute pass.
type PlanRequest struct {
	SourcePath string
	// OutputPath overrides the destination for the fixed file. Empty
	// resolves against config (output dir, else next to the source).
	OutputPath     string
	Threshold      float64
	MinTextLength  int
	IgnoreCase     bool
	DeletePatterns []string
	TextMode       correction.TextMode
}

// PlanResult carries what the compute pass produced.
type PlanResult struct {
	Session     *sessions.Session
	Actions     []correction.Action
	ParseIssues []string
}

// Plan parses the source subtitle file, runs the correction engine, persists
// a session, and writes the editable actions file. Parse issues are carried
// in the result, never fatal; only I/O failures and invalid tuning abort.
func Plan(ctx context.Context, cfg *config.Config, store *sessions.Store, logger *slog.Logger, req PlanRequest) (*PlanResult, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	opts, err := engineOptions(req.Threshold, req.MinTextLength, req.IgnoreCase, req.DeletePatterns, req.TextMode)
	if err != nil {
		return nil, err
	}

	sourcePath, err := config.ExpandPath(req.SourcePath)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("open subtitle file: %w", err)
	}
	defer file.Close()

	entries, issues, err := srt.Parse(file)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Text = srt.CleanText(entries[i].Text)
	}
	for _, issue := range issues {
		logger.Warn("skipped malformed subtitle block", logging.String("issue", issue))
	}

	actions, err := correction.Plan(entries, opts, logger)
	if err != nil {
		return nil, err
	}

	outputPath, err := resolveOutputPath(cfg, sourcePath, req.OutputPath)
	if err != nil {
		return nil, err
	}

	session := sessions.Session{
		SourcePath:     sourcePath,
		OutputPath:     outputPath,
		Threshold:      req.Threshold,
		MinTextLength:  opts.MinTextLength,
		IgnoreCase:     req.IgnoreCase,
		DeletePatterns: req.DeletePatterns,
		TextMode:       string(opts.TextMode),
		EntryCount:     len(actions),
	}
	for _, action := range actions {
		switch action.Verb {
		case correction.VerbKeep:
			session.KeepCount++
		case correction.VerbMerge:
			session.MergeCount++
		case correction.VerbDelete:
			session.DeleteCount++
		}
	}

	created, err := store.Create(ctx, session)
	if err != nil {
		return nil, err
	}

	actionsPath := filepath.Join(cfg.Paths.WorkspaceDir, created.Token+".actions.csv")
	if err := writeActionsFile(actionsPath, actions); err != nil {
		return nil, err
	}
	created.ActionsPath = actionsPath
	if err := store.SetActionsPath(ctx, created.ID, actionsPath); err != nil {
		return nil, err
	}

	logger.Info("planned correction session",
		logging.Int64("session", created.ID),
		logging.String("source", sourcePath),
		logging.Float64("threshold", req.Threshold),
		logging.Int("entries", session.EntryCount),
		logging.Int("keep", session.KeepCount),
		logging.Int("merge", session.MergeCount),
		logging.Int("delete", session.DeleteCount))

	return &PlanResult{Session: created, Actions: actions, ParseIssues: issues}, nil
}

func writeActionsFile(path string, actions []correction.Action) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create actions file: %w", err)
	}
	defer file.Close()
	if err := review.WriteCSV(file, review.ToRows(actions)); err != nil {
		return err
	}
	return file.Close()
}

func engineOptions(threshold float64, minLength int, ignoreCase bool, patterns []string, mode correction.TextMode) (correction.Options, error) {
	compiled, err := correction.CompilePatterns(patterns)
	if err != nil {
		return correction.Options{}, err
	}
	opts := correction.Options{
		MergeThreshold: threshold,
		MinTextLength:  minLength,
		DeletePatterns: compiled,
		IgnoreCase:     ignoreCase,
		TextMode:       mode,
	}
	if opts.MinTextLength == 0 {
		opts.MinTextLength = correction.DefaultMinTextLength
	}
	if opts.TextMode == "" {
		opts.TextMode = correction.TextModeTiming
	}
	if err := opts.Validate(); err != nil {
		return correction.Options{}, err
	}
	return opts, nil
}

func resolveOutputPath(cfg *config.Config, sourcePath, override string) (string, error) {
	if strings.TrimSpace(override) != "" {
		return config.ExpandPath(override)
	}
	if strings.TrimSpace(cfg.Paths.OutputDir) != "" {
		return filepath.Join(cfg.Paths.OutputDir, filepath.Base(sourcePath)), nil
	}
	// Original behavior: fix in place.
	return sourcePath, nil
}
