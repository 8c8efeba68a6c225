package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fwojciec/docmirror"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ docmirror.ManifestService = (*ManifestService)(nil)

// ManifestService implements docmirror.ManifestService using SQLite.
type ManifestService struct {
	db *DB
}

// NewManifestService creates a new ManifestService.
func NewManifestService(db *DB) *ManifestService {
	return &ManifestService{db: db}
}

// BeginRun records the start of a run and assigns its ID.
func (s *ManifestService) BeginRun(ctx context.Context, run *docmirror.Run) error {
	if run.BaseURL == "" {
		return docmirror.Errorf(docmirror.EINVALID, "run base URL required")
	}

	run.ID = uuid.New().String()
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, base_url, strategy, started_at)
		VALUES (?, ?, ?, ?)
	`, run.ID, run.BaseURL, run.Strategy, run.StartedAt.Format(time.RFC3339))

	return err
}

// RecordPage records the outcome of one target.
func (s *ManifestService) RecordPage(ctx context.Context, rec *docmirror.PageRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	if rec.FetchedAt.IsZero() {
		rec.FetchedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO pages (run_id, url, path, content_hash, outcome, error, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, rec.RunID, rec.URL, rec.Path, rec.ContentHash, rec.Outcome, rec.Error,
		rec.FetchedAt.Format(time.RFC3339))

	return err
}

// FinishRun stores final statistics and the completion time.
func (s *ManifestService) FinishRun(ctx context.Context, runID string, stats docmirror.RunStats) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE runs
		SET finished_at = ?, discovered = ?, downloaded = ?, skipped = ?, overwritten = ?, failed = ?
		WHERE id = ?
	`, time.Now().UTC().Format(time.RFC3339),
		stats.Discovered, stats.Downloaded, stats.Skipped, stats.Overwritten, stats.Failed,
		runID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return docmirror.Errorf(docmirror.ENOTFOUND, "run not found")
	}
	return nil
}

// FindRunByID retrieves a run with its recorded statistics.
func (s *ManifestService) FindRunByID(ctx context.Context, id string) (*docmirror.Run, error) {
	var run docmirror.Run
	var startedAt, finishedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, base_url, strategy, started_at, finished_at,
		       discovered, downloaded, skipped, overwritten, failed
		FROM runs
		WHERE id = ?
	`, id).Scan(&run.ID, &run.BaseURL, &run.Strategy, &startedAt, &finishedAt,
		&run.Stats.Discovered, &run.Stats.Downloaded, &run.Stats.Skipped,
		&run.Stats.Overwritten, &run.Stats.Failed)

	if err == sql.ErrNoRows {
		return nil, docmirror.Errorf(docmirror.ENOTFOUND, "run not found")
	}
	if err != nil {
		return nil, err
	}

	if run.StartedAt, err = parseRFC3339(startedAt, "started_at"); err != nil {
		return nil, err
	}
	if finishedAt != "" {
		if run.FinishedAt, err = parseRFC3339(finishedAt, "finished_at"); err != nil {
			return nil, err
		}
	}

	return &run, nil
}

// FindPagesByRun retrieves all page records for a run in insertion order.
func (s *ManifestService) FindPagesByRun(ctx context.Context, runID string) ([]*docmirror.PageRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, url, path, content_hash, outcome, error, fetched_at
		FROM pages
		WHERE run_id = ?
		ORDER BY rowid
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*docmirror.PageRecord
	for rows.Next() {
		var rec docmirror.PageRecord
		var fetchedAt string

		if err := rows.Scan(&rec.RunID, &rec.URL, &rec.Path, &rec.ContentHash,
			&rec.Outcome, &rec.Error, &fetchedAt); err != nil {
			return nil, err
		}
		if rec.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at"); err != nil {
			return nil, err
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}

// parseRFC3339 parses an RFC3339 formatted timestamp string.
func parseRFC3339(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}
