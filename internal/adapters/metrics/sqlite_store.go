package metrics

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"survey-route-service/internal/domain"
)

// SqliteStore persists planner step metrics to a local SQLite database.
type SqliteStore struct {
	DB *sql.DB
}

func NewSqliteStore(db *sql.DB) *SqliteStore {
	return &SqliteStore{DB: db}
}

// InitSqliteSchema creates the step_metrics table if it does not exist.
func InitSqliteSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init metrics schema: db is nil")
	}

	createQuery := `
	CREATE TABLE IF NOT EXISTS step_metrics (
        run_id TEXT NOT NULL,
        seq INTEGER NOT NULL,
        step_name TEXT NOT NULL,
        elapsed_seconds REAL NOT NULL,
        memory_mb REAL NOT NULL,
        recorded_at TEXT NOT NULL,
        PRIMARY KEY (run_id, seq)
    );
	`
	if _, err := db.Exec(createQuery); err != nil {
		return fmt.Errorf("init metrics schema: create step_metrics table: %w", err)
	}
	return nil
}

// Store the metrics of one run in a single transaction, preserving log order.
func (s *SqliteStore) SaveMetrics(ctx context.Context, runID string, stepMetrics []domain.StepMetric) error {
	if s.DB == nil {
		return errors.New("metric store: db is nil")
	}
	if strings.TrimSpace(runID) == "" {
		return errors.New("save metrics: run id must not be empty")
	}
	if len(stepMetrics) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save metrics: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT OR REPLACE INTO step_metrics (
        run_id,
        seq,
        step_name,
        elapsed_seconds,
        memory_mb,
        recorded_at
    )
    VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("save metrics: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, m := range stepMetrics {
		if _, err := stmt.ExecContext(
			ctx, runID, i, m.Step, m.Elapsed.Seconds(), m.MemoryMB, m.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z"),
		); err != nil {
			return fmt.Errorf("save metrics: insert step %q: %w", m.Step, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save metrics: commit: %w", err)
	}
	return nil
}
