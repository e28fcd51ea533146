package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const sessionColumns = `id, token, source_path, output_path, actions_path,
    threshold, min_text_length, ignore_case, delete_patterns, text_mode,
    status, entry_count, keep_count, merge_count, delete_count, created_at,
    updated_at`

// delete_patterns is stored newline-joined; patterns cannot contain literal
// newlines, which regexp syntax has no use for anyway.
const patternSeparator = "\n"

// Create inserts a new planned session and returns the stored row. A token
// is generated when the session carries none.
func (s *Store) Create(ctx context.Context, session Session) (*Session, error) {
	now := time.Now().UTC()
	timestamp := now.Format(time.RFC3339Nano)
	if strings.TrimSpace(session.Token) == "" {
		session.Token = uuid.NewString()
	}
	if session.Status == "" {
		session.Status = StatusPlanned
	}

	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO sessions (
            token, source_path, output_path, actions_path, threshold,
            min_text_length, ignore_case, delete_patterns, text_mode,
            status, entry_count, keep_count, merge_count, delete_count,
            created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		session.Token,
		session.SourcePath,
		session.OutputPath,
		session.ActionsPath,
		session.Threshold,
		session.MinTextLength,
		session.IgnoreCase,
		strings.Join(session.DeletePatterns, patternSeparator),
		session.TextMode,
		string(session.Status),
		session.EntryCount,
		session.KeepCount,
		session.MergeCount,
		session.DeleteCount,
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(ctx, id)
}

// GetByID fetches one session by its numeric identifier.
func (s *Store) GetByID(ctx context.Context, id int64) (*Session, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+sessionColumns+" FROM sessions WHERE id = ?", id)
	return scanSession(row)
}

// GetByToken fetches one session by its token.
func (s *Store) GetByToken(ctx context.Context, token string) (*Session, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+sessionColumns+" FROM sessions WHERE token = ?", token)
	return scanSession(row)
}

// Resolve accepts either a numeric ID or a token and fetches the session.
func (s *Store) Resolve(ctx context.Context, ref string) (*Session, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, ErrNotFound
	}
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		return s.GetByID(ctx, id)
	}
	return s.GetByToken(ctx, ref)
}

// List returns sessions in creation order, newest first.
func (s *Store) List(ctx context.Context) ([]Session, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+sessionColumns+" FROM sessions ORDER BY id DESC")
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *session)
	}
	return sessions, rows.Err()
}

// UpdateStatus transitions a session and bumps its update time.
func (s *Store) UpdateStatus(ctx context.Context, id int64, status Status) error {
	if !ValidStatus(status) {
		return fmt.Errorf("unknown session status %q", status)
	}
	res, err := s.db.ExecContext(ctx,
		"UPDATE sessions SET status = ?, updated_at = ? WHERE id = ?",
		string(status), time.Now().UTC().Format(time.RFC3339Nano), id)
	if err != nil {
		return fmt.Errorf("update session status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetActionsPath records where a session's editable actions file landed.
func (s *Store) SetActionsPath(ctx context.Context, id int64, path string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE sessions SET actions_path = ?, updated_at = ? WHERE id = ?",
		path, time.Now().UTC().Format(time.RFC3339Nano), id)
	if err != nil {
		return fmt.Errorf("update actions path: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes one session row.
func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Clear removes finished sessions, or every session when all is true.
// It returns the number of removed rows.
func (s *Store) Clear(ctx context.Context, all bool) (int64, error) {
	query := "DELETE FROM sessions WHERE status IN (?, ?)"
	args := []any{string(StatusApplied), string(StatusAbandoned)}
	if all {
		query = "DELETE FROM sessions"
		args = nil
	}
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("clear sessions: %w", err)
	}
	return res.RowsAffected()
}

// Stats returns per-status session counts.
func (s *Store) Stats(ctx context.Context) (map[Status]int, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT status, COUNT(1) FROM sessions GROUP BY status")
	if err != nil {
		return nil, fmt.Errorf("session stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[Status]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan stats row: %w", err)
		}
		stats[Status(status)] = count
	}
	return stats, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*Session, error) {
	var session Session
	var status, createdAt, updatedAt, patterns string
	err := row.Scan(
		&session.ID,
		&session.Token,
		&session.SourcePath,
		&session.OutputPath,
		&session.ActionsPath,
		&session.Threshold,
		&session.MinTextLength,
		&session.IgnoreCase,
		&patterns,
		&session.TextMode,
		&status,
		&session.EntryCount,
		&session.KeepCount,
		&session.MergeCount,
		&session.DeleteCount,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan session: %w", err)
	}
	session.Status = Status(status)
	if patterns != "" {
		session.DeletePatterns = strings.Split(patterns, patternSeparator)
	}
	if ts, parseErr := time.Parse(time.RFC3339Nano, createdAt); parseErr == nil {
		session.CreatedAt = ts
	}
	if ts, parseErr := time.Parse(time.RFC3339Nano, updatedAt); parseErr == nil {
		session.UpdatedAt = ts
	}
	return &session, nil
}
