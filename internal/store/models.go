package store

import "time"

// Run summarizes one planning run for the history view.
type Run struct {
	ID              int64     `json:"id"`
	PlanID          string    `json:"plan_id"`
	TaskCount       int       `json:"task_count"`
	LayerCount      int       `json:"layer_count"`
	CheckpointCount int       `json:"checkpoint_count"`
	SequentialTotal float64   `json:"sequential_total"`
	ParallelTotal   float64   `json:"parallel_total"`
	SavingsPercent  float64   `json:"savings_percent"`
	CreatedAt       time.Time `json:"created_at"`
}

// Event records something that happened to a plan or one of its tasks:
// sealed, status transitions, stable signals, re-plans from watch mode.
type Event struct {
	ID        int64     `json:"id"`
	PlanID    string    `json:"plan_id"`
	TaskID    string    `json:"task_id,omitempty"`
	Type      string    `json:"event_type"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
