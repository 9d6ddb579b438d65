// Package state persists sealed plans and the lifecycle progress the
// executor collaborator reports against them. The plan itself is
// immutable once sealed; only per-task lifecycle state changes here.
package state

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	yamlv3 "gopkg.in/yaml.v3"

	"github.com/waveplan/waveplan/internal/lock"
	"github.com/waveplan/waveplan/internal/schedule"
	"github.com/waveplan/waveplan/internal/task"
	yamlutil "github.com/waveplan/waveplan/internal/yaml"
)

// PlanStatus is the derived, plan-level view of executor progress.
type PlanStatus string

const (
	PlanStatusSealed    PlanStatus = "sealed"
	PlanStatusRunning   PlanStatus = "running"
	PlanStatusCompleted PlanStatus = "completed"
	PlanStatusFailed    PlanStatus = "failed"
)

// PlanState is the on-disk record for one sealed plan.
type PlanState struct {
	SchemaVersion int    `yaml:"schema_version"`
	FileType      string `yaml:"file_type"`

	PlanID      string                `yaml:"plan_id"`
	GeneratedAt time.Time             `yaml:"generated_at"`
	Tasks       []task.Task           `yaml:"tasks"`
	Layers      []schedule.Layer      `yaml:"layers"`
	Checkpoints []schedule.Checkpoint `yaml:"checkpoints"`
	Estimate    schedule.Estimate     `yaml:"estimate"`

	TaskStates map[string]task.Status `yaml:"task_states"`
	StableAt   map[string]time.Time   `yaml:"stable_at,omitempty"`

	CreatedAt time.Time `yaml:"created_at"`
	UpdatedAt time.Time `yaml:"updated_at"`
}

// Manager reads and writes plan state files under <baseDir>/state with
// per-plan locking and atomic writes.
type Manager struct {
	baseDir string
	lockMap *lock.MutexMap
}

func NewManager(baseDir string) *Manager {
	return &Manager{
		baseDir: baseDir,
		lockMap: lock.NewMutexMap(),
	}
}

func (m *Manager) StatePath(planID string) string {
	return filepath.Join(m.baseDir, "state", planID+".yaml")
}

func (m *Manager) Exists(planID string) bool {
	_, err := os.Stat(m.StatePath(planID))
	return err == nil
}

// Seal persists a freshly built plan. Every task starts in scheduled:
// assignment to a layer is exactly what a sealed plan means.
func (m *Manager) Seal(p *schedule.Plan) (*PlanState, error) {
	states := make(map[string]task.Status, len(p.Tasks()))
	for _, t := range p.Tasks() {
		states[t.ID] = task.StatusScheduled
	}

	now := time.Now().UTC()
	st := &PlanState{
		SchemaVersion: yamlutil.CurrentSchemaVersion,
		FileType:      "plan_state",
		PlanID:        p.ID,
		GeneratedAt:   p.GeneratedAt,
		Tasks:         p.Tasks(),
		Layers:        p.Layers,
		Checkpoints:   p.Checkpoints,
		Estimate:      p.Estimate,
		TaskStates:    states,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	m.lockMap.Lock("state:" + p.ID)
	defer m.lockMap.Unlock("state:" + p.ID)
	if err := m.save(st); err != nil {
		return nil, err
	}
	return st, nil
}

func (m *Manager) save(st *PlanState) error {
	path := m.StatePath(st.PlanID)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	return yamlutil.AtomicWrite(path, st)
}

// Load reads and validates a plan state file. A file that fails to
// parse is quarantined, then restored from its backup if one survives.
func (m *Manager) Load(planID string) (*PlanState, error) {
	path := m.StatePath(planID)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("plan %s not found", planID)
		}
		return nil, fmt.Errorf("read plan state %s: %w", planID, err)
	}

	st, err := decodeState(data, planID)
	if err == nil {
		return st, nil
	}

	// Corrupt state file: move it aside and try the backup once.
	if _, qerr := yamlutil.Quarantine(m.baseDir, path); qerr != nil {
		return nil, fmt.Errorf("plan state %s corrupt (%v), quarantine failed: %w", planID, err, qerr)
	}
	if rerr := yamlutil.RestoreFromBackup(path); rerr != nil {
		return nil, fmt.Errorf("plan state %s corrupt and unrecoverable: %w", planID, err)
	}
	data, rerr := os.ReadFile(path)
	if rerr != nil {
		return nil, fmt.Errorf("read restored plan state %s: %w", planID, rerr)
	}
	return decodeState(data, planID)
}

func decodeState(data []byte, planID string) (*PlanState, error) {
	if err := yamlutil.ValidateSchemaHeader(data, "plan_state"); err != nil {
		return nil, fmt.Errorf("plan state %s: %w", planID, err)
	}
	var st PlanState
	if err := yamlv3.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("parse plan state %s: %w", planID, err)
	}
	return &st, nil
}

// SetTaskStatus records an executor-reported lifecycle transition.
func (m *Manager) SetTaskStatus(planID, taskID string, to task.Status) (*PlanState, error) {
	m.lockMap.Lock("state:" + planID)
	defer m.lockMap.Unlock("state:" + planID)

	st, err := m.Load(planID)
	if err != nil {
		return nil, err
	}

	from, ok := st.TaskStates[taskID]
	if !ok {
		return nil, fmt.Errorf("plan %s has no task %q", planID, taskID)
	}
	if err := task.ValidateTransition(from, to); err != nil {
		return nil, fmt.Errorf("task %q: %w", taskID, err)
	}

	st.TaskStates[taskID] = to
	st.UpdatedAt = time.Now().UTC()
	if err := m.save(st); err != nil {
		return nil, err
	}
	return st, nil
}

// MarkStable records the external stability signal for a completed
// task. Stability is never inferred from completion.
func (m *Manager) MarkStable(planID, taskID string) (*PlanState, error) {
	m.lockMap.Lock("state:" + planID)
	defer m.lockMap.Unlock("state:" + planID)

	st, err := m.Load(planID)
	if err != nil {
		return nil, err
	}

	from, ok := st.TaskStates[taskID]
	if !ok {
		return nil, fmt.Errorf("plan %s has no task %q", planID, taskID)
	}
	if err := task.ValidateTransition(from, task.StatusStable); err != nil {
		return nil, fmt.Errorf("task %q: %w", taskID, err)
	}

	st.TaskStates[taskID] = task.StatusStable
	if st.StableAt == nil {
		st.StableAt = make(map[string]time.Time)
	}
	st.StableAt[taskID] = time.Now().UTC()
	st.UpdatedAt = time.Now().UTC()
	if err := m.save(st); err != nil {
		return nil, err
	}
	return st, nil
}

// List returns known plan ids, newest first by id (plan ids embed their
// creation timestamp).
func (m *Manager) List() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(m.baseDir, "state"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read state dir: %w", err)
	}

	var ids []string
	for _, e := range entries {
		name := e.Name()
		if filepath.Ext(name) != ".yaml" {
			continue
		}
		id := name[:len(name)-len(".yaml")]
		if task.ValidPlanID(id) {
			ids = append(ids, id)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(ids)))
	return ids, nil
}

// DeriveStatus folds per-task states into a plan-level status: failed
// beats everything, then completed when every task settled, running
// once anything started, otherwise still sealed.
func DeriveStatus(st *PlanState) PlanStatus {
	anyStarted := false
	allSettled := true
	for _, s := range st.TaskStates {
		switch s {
		case task.StatusFailed:
			return PlanStatusFailed
		case task.StatusRunning, task.StatusCompleted, task.StatusStable:
			anyStarted = true
		}
		if !task.Settled(s) {
			allSettled = false
		}
	}
	if allSettled && len(st.TaskStates) > 0 {
		return PlanStatusCompleted
	}
	if anyStarted {
		return PlanStatusRunning
	}
	return PlanStatusSealed
}
