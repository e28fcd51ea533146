package workflow

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"subfix/internal/config"
	"subfix/internal/correction"
	"subfix/internal/fileutil"
	"subfix/internal/logging"
	"subfix/internal/review"
	"subfix/internal/sessions"
	"subfix/internal/srt"
)

// ApplyResult carries what the finalize pass produced.
type ApplyResult struct {
	Session    *sessions.Session
	OutputPath string
	Entries    int
	RowIssues  []string
}

// Apply reconciles the reviewer's actions file against a fresh engine pass
// over the session's source file, serializes the surviving entries, and
// marks the session applied. A per-session lock keeps concurrent applies
// out; malformed edit rows are reported, not fatal.
func Apply(ctx context.Context, cfg *config.Config, store *sessions.Store, logger *slog.Logger, ref string) (*ApplyResult, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	session, err := store.Resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	if session.Status == sessions.StatusApplied {
		return nil, fmt.Errorf("session %d is already applied", session.ID)
	}

	lock, err := sessions.AcquireApplyLock(cfg.Paths.WorkspaceDir, session.Token)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = lock.Release()
	}()

	actions, err := replan(session, logger)
	if err != nil {
		return nil, err
	}

	rows, rowIssues, err := readActionsFile(session.ActionsPath)
	if err != nil {
		return nil, err
	}
	for _, issue := range rowIssues {
		logger.Warn("skipped malformed actions row", logging.String("issue", issue))
	}

	updated := review.ApplyRows(actions, rows)
	entries := correction.Finalize(updated, correction.TextMode(session.TextMode))

	if session.OutputPath == session.SourcePath {
		backupPath, err := fileutil.Backup(session.SourcePath)
		if err != nil {
			return nil, err
		}
		logger.Info("backed up original before in-place fix",
			logging.String("backup", backupPath))
	}
	if err := writeOutputFile(session.OutputPath, entries); err != nil {
		return nil, err
	}
	if err := store.UpdateStatus(ctx, session.ID, sessions.StatusApplied); err != nil {
		return nil, err
	}
	session.Status = sessions.StatusApplied

	logger.Info("applied correction session",
		logging.Int64("session", session.ID),
		logging.String("output", session.OutputPath),
		logging.Int("entries", len(entries)))

	return &ApplyResult{
		Session:    session,
		OutputPath: session.OutputPath,
		Entries:    len(entries),
		RowIssues:  rowIssues,
	}, nil
}

// replan reproduces the deterministic compute pass from the session's
// recorded tuning. The engine is pure, so this equals the action list the
// reviewer started from.
func replan(session *sessions.Session, logger *slog.Logger) ([]correction.Action, error) {
	opts, err := engineOptions(session.Threshold, session.MinTextLength, session.IgnoreCase,
		session.DeletePatterns, correction.TextMode(session.TextMode))
	if err != nil {
		return nil, err
	}
	file, err := os.Open(session.SourcePath)
	if err != nil {
		return nil, fmt.Errorf("open subtitle file: %w", err)
	}
	defer file.Close()

	entries, _, err := srt.Parse(file)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Text = srt.CleanText(entries[i].Text)
	}
	return correction.Plan(entries, opts, logger)
}

func readActionsFile(path string) ([]review.Row, []string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open actions file: %w", err)
	}
	defer file.Close()
	return review.ReadCSV(file)
}

func writeOutputFile(path string, entries []srt.Entry) error {
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return err
	}
	return fileutil.WriteAtomic(expanded, func(w io.Writer) error {
		return srt.Write(w, entries)
	})
}

// MarkReviewing transitions a session when its actions file is handed to an
// editor.
func MarkReviewing(ctx context.Context, store *sessions.Store, session *sessions.Session) error {
	if session.Status != sessions.StatusPlanned {
		return nil
	}
	if err := store.UpdateStatus(ctx, session.ID, sessions.StatusReviewing); err != nil {
		return err
	}
	session.Status = sessions.StatusReviewing
	return nil
}
