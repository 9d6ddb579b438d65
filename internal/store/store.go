// Package store keeps a local history of planning runs and the
// lifecycle events reported against them, in a SQLite database under
// the workspace directory.
package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/waveplan/waveplan/internal/schedule"
)

type Store struct {
	db *sql.DB
}

// Open opens (or creates) the history database at the given path.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// WAL keeps readers (board, history) from blocking status writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id                INTEGER PRIMARY KEY AUTOINCREMENT,
		plan_id           TEXT NOT NULL UNIQUE,
		task_count        INTEGER NOT NULL,
		layer_count       INTEGER NOT NULL,
		checkpoint_count  INTEGER NOT NULL,
		sequential_total  REAL NOT NULL,
		parallel_total    REAL NOT NULL,
		savings_percent   REAL NOT NULL,
		created_at        DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS events (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		plan_id     TEXT NOT NULL,
		task_id     TEXT NOT NULL DEFAULT '',
		event_type  TEXT NOT NULL,
		detail      TEXT NOT NULL DEFAULT '',
		timestamp   DATETIME NOT NULL
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}
	return nil
}

// RecordRun inserts one row per sealed plan.
func (s *Store) RecordRun(p *schedule.Plan) (*Run, error) {
	now := time.Now().UTC()
	res, err := s.db.Exec(
		`INSERT INTO runs (plan_id, task_count, layer_count, checkpoint_count,
		                   sequential_total, parallel_total, savings_percent, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, len(p.Tasks()), len(p.Layers), len(p.Checkpoints),
		p.Estimate.SequentialTotal, p.Estimate.ParallelTotal, p.Estimate.SavingsPercent, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}
	id, _ := res.LastInsertId()

	s.AddEvent(p.ID, "", "sealed", fmt.Sprintf("%d tasks, %d layers", len(p.Tasks()), len(p.Layers)))

	return &Run{
		ID:              id,
		PlanID:          p.ID,
		TaskCount:       len(p.Tasks()),
		LayerCount:      len(p.Layers),
		CheckpointCount: len(p.Checkpoints),
		SequentialTotal: p.Estimate.SequentialTotal,
		ParallelTotal:   p.Estimate.ParallelTotal,
		SavingsPercent:  p.Estimate.SavingsPercent,
		CreatedAt:       now,
	}, nil
}

// ListRuns returns the most recent planning runs, newest first.
func (s *Store) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, plan_id, task_count, layer_count, checkpoint_count,
		        sequential_total, parallel_total, savings_percent, created_at
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.PlanID, &r.TaskCount, &r.LayerCount, &r.CheckpointCount,
			&r.SequentialTotal, &r.ParallelTotal, &r.SavingsPercent, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// AddEvent appends to the audit trail. Failures here are deliberately
// swallowed by callers on non-critical paths; the state file remains
// the source of truth.
func (s *Store) AddEvent(planID, taskID, eventType, detail string) error {
	_, err := s.db.Exec(
		`INSERT INTO events (plan_id, task_id, event_type, detail, timestamp)
		 VALUES (?, ?, ?, ?, ?)`,
		planID, taskID, eventType, detail, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// ListEvents returns a plan's events oldest first.
func (s *Store) ListEvents(planID string) ([]Event, error) {
	rows, err := s.db.Query(
		`SELECT id, plan_id, task_id, event_type, detail, timestamp
		 FROM events WHERE plan_id = ? ORDER BY id ASC`, planID)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.PlanID, &e.TaskID, &e.Type, &e.Detail, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
