package manifest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"swbd/internal/pipeline"
)

// StartRun inserts a running run.
func (s *Store) StartRun(ctx context.Context, run Run) (*Run, error) {
	if strings.TrimSpace(run.ID) == "" {
		return nil, errors.New("run id is required")
	}
	if strings.TrimSpace(run.Command) == "" {
		return nil, errors.New("run command is required")
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}
	run.Status = RunRunning

	if _, err := s.execWithRetry(
		ctx,
		`INSERT INTO runs (id, command, input_dir, output_dir, log_path, status, started_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.Command,
		nullableString(run.InputDir),
		nullableString(run.OutputDir),
		nullableString(run.LogPath),
		run.Status,
		formatTime(run.StartedAt),
	); err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}
	return s.GetRun(ctx, run.ID)
}

// RecordFile stores the outcome of one input file. The status is derived
// from result.Err.
func (s *Store) RecordFile(ctx context.Context, runID string, result FileResult) (*File, error) {
	status := pipeline.Outcome(result.Err)
	var message string
	if result.Err != nil {
		message = result.Err.Error()
	}
	res, err := s.execWithRetry(
		ctx,
		`INSERT INTO run_files (
            run_id, path, section, sentences_in, sentences_out, tokens_out,
            status, error_message, recorded_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID,
		result.Path,
		nullableString(result.Section),
		result.SentencesIn,
		result.SentencesOut,
		result.TokensOut,
		status,
		nullableString(message),
		formatTime(time.Now()),
	)
	if err != nil {
		return nil, fmt.Errorf("insert run file: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	row := s.db.QueryRowContext(ensureContext(ctx), `SELECT `+fileColumns+` FROM run_files WHERE id = ?`, id)
	return scanFile(row)
}

// FinishRun closes a run. A non-nil runErr marks it failed; otherwise the
// status is derived from the recorded files.
func (s *Store) FinishRun(ctx context.Context, runID string, runErr error) (*Run, error) {
	summary, err := s.Summarize(ctx, runID)
	if err != nil {
		return nil, err
	}
	status := summary.Status()
	var message string
	if runErr != nil {
		status = RunFailed
		message = runErr.Error()
	}
	res, err := s.execWithRetry(
		ctx,
		`UPDATE runs SET status = ?, error_message = ?, finished_at = ? WHERE id = ?`,
		status,
		nullableString(message),
		formatTime(time.Now()),
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("finish run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("finish run %s: %w", runID, pipeline.ErrNotFound)
	}
	return s.GetRun(ctx, runID)
}

// GetRun fetches a run by id. A missing run returns nil without error.
func (s *Store) GetRun(ctx context.Context, runID string) (*Run, error) {
	row := s.db.QueryRowContext(ensureContext(ctx), `SELECT `+runColumns+` FROM runs WHERE id = ?`, runID)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return run, nil
}

// FindRun resolves a run from a unique id prefix.
func (s *Store) FindRun(ctx context.Context, prefix string) (*Run, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return nil, errors.New("run id is required")
	}
	rows, err := s.db.QueryContext(ensureContext(ctx),
		`SELECT `+runColumns+` FROM runs WHERE id LIKE ? ORDER BY started_at DESC LIMIT 2`,
		strings.ReplaceAll(prefix, "%", "")+"%",
	)
	if err != nil {
		return nil, fmt.Errorf("find run: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	switch len(runs) {
	case 0:
		return nil, fmt.Errorf("run %q: %w", prefix, pipeline.ErrNotFound)
	case 1:
		return runs[0], nil
	default:
		return nil, fmt.Errorf("run prefix %q is ambiguous", prefix)
	}
}

// ListRuns returns the most recent runs first. A limit of zero returns all.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ensureContext(ctx), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Files returns the recorded files of a run in processing order.
func (s *Store) Files(ctx context.Context, runID string) ([]*File, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx),
		`SELECT `+fileColumns+` FROM run_files WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("list run files: %w", err)
	}
	defer rows.Close()

	var files []*File
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run file: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

// Summarize aggregates the files of a run.
func (s *Store) Summarize(ctx context.Context, runID string) (Summary, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx),
		`SELECT status, COUNT(1), SUM(sentences_out), SUM(tokens_out)
        FROM run_files WHERE run_id = ? GROUP BY status`, runID)
	if err != nil {
		return Summary{}, fmt.Errorf("summarize run: %w", err)
	}
	defer rows.Close()

	var summary Summary
	for rows.Next() {
		var (
			status          string
			count           int
			sentences, toks sql.NullInt64
		)
		if err := rows.Scan(&status, &count, &sentences, &toks); err != nil {
			return Summary{}, fmt.Errorf("scan summary: %w", err)
		}
		summary.add(status, count, int(sentences.Int64), int(toks.Int64))
	}
	return summary, rows.Err()
}

// DeleteRun removes a run and its files.
func (s *Store) DeleteRun(ctx context.Context, runID string) error {
	res, err := s.execWithRetry(ctx, `DELETE FROM runs WHERE id = ?`, runID)
	if err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("run %s: %w", runID, pipeline.ErrNotFound)
	}
	return nil
}
