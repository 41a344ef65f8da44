// Package repository persists batch runs and extraction results in SQLite
// so the export command can render them later. The store is optional; the
// batch engine runs without one.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/marcus-hale/resume-extract/constants"
	"github.com/marcus-hale/resume-extract/internal/common"
	"github.com/marcus-hale/resume-extract/internal/entity"
)

type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (or creates) the SQLite database at path and initializes the
// schema. Pass ":memory:" for an in-memory store.
func Open(ctx context.Context, path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// A single writer keeps modernc's file locking out of the way.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply %s: %w", pragma, err)
		}
	}
	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	logger.Debug("store.open", "path", path)
	return &Store{db: db, logger: logger}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	started_at TEXT NOT NULL,
	finished_at TEXT,
	total_files INTEGER NOT NULL DEFAULT 0,
	processed INTEGER NOT NULL DEFAULT 0,
	failed INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS results (
	job_id TEXT PRIMARY KEY,
	run_id TEXT NOT NULL,
	file TEXT NOT NULL,
	job_state TEXT NOT NULL,
	confidence_score REAL NOT NULL,
	used_ocr INTEGER NOT NULL DEFAULT 0,
	pass_count INTEGER NOT NULL DEFAULT 0,
	error TEXT,
	record TEXT NOT NULL,
	created_at TEXT NOT NULL,
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_results_run ON results(run_id);
CREATE INDEX IF NOT EXISTS idx_results_state ON results(job_state);
`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// BeginRun records a new batch run and returns its id.
func (s *Store) BeginRun(ctx context.Context, totalFiles int) (uuid.UUID, error) {
	id := uuid.New()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, total_files) VALUES (?, ?, ?)`,
		id.String(), time.Now().UTC().Format(time.RFC3339), totalFiles)
	if err != nil {
		return uuid.Nil, common.NewAppError("DB_ERROR", "begin run", err)
	}
	return id, nil
}

// FinishRun closes out a run with its final counts.
func (s *Store) FinishRun(ctx context.Context, runID uuid.UUID, processed, failed int) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, processed = ?, failed = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339), processed, failed, runID.String())
	if err != nil {
		return common.NewAppError("DB_ERROR", "finish run", err)
	}
	return nil
}

// SaveResult stores one extraction result. The full record is kept as JSON
// alongside the queryable envelope columns. Assigns a job id when the
// result does not carry one.
func (s *Store) SaveResult(ctx context.Context, runID uuid.UUID, res *entity.ExtractionResult) error {
	if res.JobID == uuid.Nil {
		res.JobID = uuid.New()
	}
	record, err := json.Marshal(res)
	if err != nil {
		return common.WrapError(err, "encode result")
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO results (job_id, run_id, file, job_state, confidence_score, used_ocr, pass_count, error, record, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(job_id) DO UPDATE SET
	job_state = excluded.job_state,
	confidence_score = excluded.confidence_score,
	used_ocr = excluded.used_ocr,
	pass_count = excluded.pass_count,
	error = excluded.error,
	record = excluded.record`,
		res.JobID.String(), runID.String(), res.File, string(res.JobState),
		res.ConfidenceScore, res.UsedOCR, res.PassCount, res.Error,
		string(record), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return common.NewAppError("DB_ERROR", "save result", err)
	}
	return nil
}

// GetResult loads one result by job id.
func (s *Store) GetResult(ctx context.Context, jobID uuid.UUID) (*entity.ExtractionResult, error) {
	var record string
	err := s.db.QueryRowContext(ctx,
		`SELECT record FROM results WHERE job_id = ?`, jobID.String()).Scan(&record)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.NewAppError("NOT_FOUND", fmt.Sprintf("result %s", jobID), common.ErrNotFound)
	}
	if err != nil {
		return nil, common.NewAppError("DB_ERROR", "get result", err)
	}
	return decodeResult(record)
}

// ListResults returns the results of one run ordered by file name. A nil
// run id lists every stored result.
func (s *Store) ListResults(ctx context.Context, runID uuid.UUID) ([]*entity.ExtractionResult, error) {
	query := `SELECT record FROM results ORDER BY file`
	args := []any{}
	if runID != uuid.Nil {
		query = `SELECT record FROM results WHERE run_id = ? ORDER BY file`
		args = append(args, runID.String())
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.NewAppError("DB_ERROR", "list results", err)
	}
	defer rows.Close()

	var out []*entity.ExtractionResult
	for rows.Next() {
		var record string
		if err := rows.Scan(&record); err != nil {
			return nil, common.NewAppError("DB_ERROR", "scan result", err)
		}
		res, err := decodeResult(record)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewAppError("DB_ERROR", "iterate results", err)
	}
	return out, nil
}

// CountByState returns how many stored results are in each job state.
func (s *Store) CountByState(ctx context.Context, runID uuid.UUID) (map[constants.JobState]int, error) {
	query := `SELECT job_state, COUNT(*) FROM results GROUP BY job_state`
	args := []any{}
	if runID != uuid.Nil {
		query = `SELECT job_state, COUNT(*) FROM results WHERE run_id = ? GROUP BY job_state`
		args = append(args, runID.String())
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.NewAppError("DB_ERROR", "count by state", err)
	}
	defer rows.Close()

	counts := make(map[constants.JobState]int)
	for rows.Next() {
		var state string
		var n int
		if err := rows.Scan(&state, &n); err != nil {
			return nil, common.NewAppError("DB_ERROR", "scan count", err)
		}
		counts[constants.JobState(state)] = n
	}
	return counts, rows.Err()
}

func decodeResult(record string) (*entity.ExtractionResult, error) {
	var res entity.ExtractionResult
	if err := json.Unmarshal([]byte(record), &res); err != nil {
		return nil, common.WrapError(err, "decode stored result")
	}
	return &res, nil
}
