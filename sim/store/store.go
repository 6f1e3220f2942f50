// Package store keeps a SQLite history of prediction runs and their scores.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// Store wraps a SQLite database connection.
type Store struct {
	sql *sql.DB
}

// Open opens (or creates) the database at path and runs migrations.
func Open(path string) (*Store, error) {
	sqlDB, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	s := &Store{sql: sqlDB}
	if err := s.migrate(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migrate db: %w", err)
	}
	logrus.Debugf("Opened run history %s", path)
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.sql.Close()
}

func (s *Store) migrate() error {
	version := 0
	// A fresh database has no schema_version table yet.
	_ = s.sql.QueryRow("SELECT version FROM schema_version ORDER BY version DESC LIMIT 1").Scan(&version)

	if version < 1 {
		_, err := s.sql.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY);

			CREATE TABLE IF NOT EXISTS runs (
				id                INTEGER PRIMARY KEY AUTOINCREMENT,
				created_at        TEXT NOT NULL,
				scenario          TEXT NOT NULL,
				seed              INTEGER NOT NULL,
				days              INTEGER NOT NULL,
				window_size       INTEGER NOT NULL,
				aggregation       TEXT NOT NULL,
				voters            TEXT NOT NULL,
				members           INTEGER NOT NULL DEFAULT 1,
				true_positives    INTEGER NOT NULL,
				false_positives   INTEGER NOT NULL,
				true_negatives    INTEGER NOT NULL,
				false_negatives   INTEGER NOT NULL,
				window_errors     INTEGER NOT NULL,
				precision         REAL NOT NULL,
				recall            REAL NOT NULL,
				mcc               REAL NOT NULL,
				window_error_rate REAL NOT NULL
			);
			CREATE INDEX IF NOT EXISTS idx_runs_scenario ON runs(scenario, id);

			CREATE TABLE IF NOT EXISTS predictions (
				run_id       INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
				position     INTEGER NOT NULL,
				location     TEXT NOT NULL,
				first_window INTEGER NOT NULL,
				ground_truth INTEGER NOT NULL,
				PRIMARY KEY (run_id, position)
			);

			INSERT OR IGNORE INTO schema_version (version) VALUES (1);
		`)
		if err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
		logrus.Debug("Applied run history migration v1")
	}
	return nil
}

// Run is one recorded prediction run. For an ensemble, Members is above one
// and the scores are member means.
type Run struct {
	ID          int64
	CreatedAt   time.Time
	Scenario    string
	Seed        int64
	Days        int
	WindowSize  int
	Aggregation string
	Voters      string
	Members     int

	TruePositives   int
	FalsePositives  int
	TrueNegatives   int
	FalseNegatives  int
	WindowErrors    int
	Precision       float64
	Recall          float64
	MCC             float64
	WindowErrorRate float64
}

// Prediction is the first predicted flare window of one location in a run,
// -1 when it never flared.
type Prediction struct {
	Location    string
	FirstWindow int
	GroundTruth int
}

// RecordRun inserts run and its predictions in one transaction and returns
// the new run ID. A zero CreatedAt is stamped with the current time.
func (s *Store) RecordRun(ctx context.Context, run Run, predictions []Prediction) (int64, error) {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	if run.Members == 0 {
		run.Members = 1
	}
	tx, err := s.sql.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx,
		`INSERT INTO runs (created_at, scenario, seed, days, window_size, aggregation, voters, members,
		 true_positives, false_positives, true_negatives, false_negatives, window_errors,
		 precision, recall, mcc, window_error_rate)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.CreatedAt.UTC().Format(time.RFC3339Nano), run.Scenario, run.Seed, run.Days, run.WindowSize,
		run.Aggregation, run.Voters, run.Members,
		run.TruePositives, run.FalsePositives, run.TrueNegatives, run.FalseNegatives, run.WindowErrors,
		run.Precision, run.Recall, run.MCC, run.WindowErrorRate,
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO predictions (run_id, position, location, first_window, ground_truth) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return 0, fmt.Errorf("prepare predictions: %w", err)
	}
	defer func() { _ = stmt.Close() }()
	for i, p := range predictions {
		if _, err := stmt.ExecContext(ctx, id, i, p.Location, p.FirstWindow, p.GroundTruth); err != nil {
			return 0, fmt.Errorf("insert prediction %s: %w", p.Location, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

// ListRuns returns the newest runs first, filtered by scenario unless it is
// empty. A limit <= 0 defaults to 50.
func (s *Store) ListRuns(ctx context.Context, scenario string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.sql.QueryContext(ctx,
		`SELECT id, created_at, scenario, seed, days, window_size, aggregation, voters, members,
		 true_positives, false_positives, true_negatives, false_negatives, window_errors,
		 precision, recall, mcc, window_error_rate
		 FROM runs WHERE ? = '' OR scenario = ? ORDER BY id DESC LIMIT ?`,
		scenario, scenario, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var r Run
		var created string
		if err := rows.Scan(&r.ID, &created, &r.Scenario, &r.Seed, &r.Days, &r.WindowSize, &r.Aggregation, &r.Voters, &r.Members,
			&r.TruePositives, &r.FalsePositives, &r.TrueNegatives, &r.FalseNegatives, &r.WindowErrors,
			&r.Precision, &r.Recall, &r.MCC, &r.WindowErrorRate); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if r.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("run %d: parsing created_at: %w", r.ID, err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Predictions returns the per-location predictions of a run in dataset order.
func (s *Store) Predictions(ctx context.Context, runID int64) ([]Prediction, error) {
	rows, err := s.sql.QueryContext(ctx,
		"SELECT location, first_window, ground_truth FROM predictions WHERE run_id = ? ORDER BY position",
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query predictions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Prediction
	for rows.Next() {
		var p Prediction
		if err := rows.Scan(&p.Location, &p.FirstWindow, &p.GroundTruth); err != nil {
			return nil, fmt.Errorf("scan prediction: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
