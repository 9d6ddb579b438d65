package state

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waveplan/waveplan/internal/schedule"
	"github.com/waveplan/waveplan/internal/task"
)

func sealTestPlan(t *testing.T, m *Manager) *schedule.Plan {
	t.Helper()
	tasks := []task.Task{
		{ID: "core", EstimatedDuration: 4, Kind: task.KindImplementation},
		{ID: "migrate", EstimatedDuration: 2, RequiresStable: []string{"core"}},
	}
	p, err := schedule.BuildPlan(tasks)
	require.NoError(t, err)
	_, err = m.Seal(p)
	require.NoError(t, err)
	return p
}

func TestSealAndLoad(t *testing.T) {
	m := NewManager(t.TempDir())
	p := sealTestPlan(t, m)

	require.True(t, m.Exists(p.ID))

	st, err := m.Load(p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, st.PlanID)
	assert.Equal(t, "plan_state", st.FileType)
	assert.Len(t, st.Tasks, 2)
	assert.Len(t, st.Checkpoints, 1)

	// Sealing a plan schedules every task.
	for id, s := range st.TaskStates {
		assert.Equal(t, task.StatusScheduled, s, "task %s", id)
	}
	assert.Equal(t, PlanStatusSealed, DeriveStatus(st))
}

func TestLoad_UnknownPlan(t *testing.T) {
	m := NewManager(t.TempDir())
	_, err := m.Load("plan_0000000000_00000000")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSetTaskStatus_WalksLifecycle(t *testing.T) {
	m := NewManager(t.TempDir())
	p := sealTestPlan(t, m)

	st, err := m.SetTaskStatus(p.ID, "core", task.StatusRunning)
	require.NoError(t, err)
	assert.Equal(t, task.StatusRunning, st.TaskStates["core"])
	assert.Equal(t, PlanStatusRunning, DeriveStatus(st))

	st, err = m.SetTaskStatus(p.ID, "core", task.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, task.StatusCompleted, st.TaskStates["core"])
}

func TestSetTaskStatus_RejectsInvalidTransition(t *testing.T) {
	m := NewManager(t.TempDir())
	p := sealTestPlan(t, m)

	_, err := m.SetTaskStatus(p.ID, "core", task.StatusCompleted)
	require.Error(t, err, "scheduled may not jump straight to completed")

	_, err = m.SetTaskStatus(p.ID, "ghost", task.StatusRunning)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghost")
}

func TestMarkStable(t *testing.T) {
	m := NewManager(t.TempDir())
	p := sealTestPlan(t, m)

	// Stability requires completion first.
	_, err := m.MarkStable(p.ID, "core")
	require.Error(t, err)

	_, err = m.SetTaskStatus(p.ID, "core", task.StatusRunning)
	require.NoError(t, err)
	_, err = m.SetTaskStatus(p.ID, "core", task.StatusCompleted)
	require.NoError(t, err)

	st, err := m.MarkStable(p.ID, "core")
	require.NoError(t, err)
	assert.Equal(t, task.StatusStable, st.TaskStates["core"])
	assert.Contains(t, st.StableAt, "core")
}

func TestDeriveStatus(t *testing.T) {
	st := &PlanState{TaskStates: map[string]task.Status{
		"a": task.StatusScheduled,
		"b": task.StatusScheduled,
	}}
	assert.Equal(t, PlanStatusSealed, DeriveStatus(st))

	st.TaskStates["a"] = task.StatusRunning
	assert.Equal(t, PlanStatusRunning, DeriveStatus(st))

	st.TaskStates["a"] = task.StatusFailed
	assert.Equal(t, PlanStatusFailed, DeriveStatus(st))

	st.TaskStates = map[string]task.Status{
		"a": task.StatusCompleted,
		"b": task.StatusStable,
	}
	assert.Equal(t, PlanStatusCompleted, DeriveStatus(st))
}

func TestList_NewestFirst(t *testing.T) {
	m := NewManager(t.TempDir())
	first := sealTestPlan(t, m)
	second := sealTestPlan(t, m)

	ids, err := m.List()
	require.NoError(t, err)
	require.Len(t, ids, 2)
	assert.Contains(t, ids, first.ID)
	assert.Contains(t, ids, second.ID)
	assert.GreaterOrEqual(t, ids[0], ids[1], "ids sort newest first")
}

func TestLoad_CorruptFileQuarantinedAndRestored(t *testing.T) {
	baseDir := t.TempDir()
	m := NewManager(baseDir)
	p := sealTestPlan(t, m)

	// A status write creates the .bak of the sealed version.
	_, err := m.SetTaskStatus(p.ID, "core", task.StatusRunning)
	require.NoError(t, err)

	// Corrupt the live file.
	path := m.StatePath(p.ID)
	require.NoError(t, os.WriteFile(path, []byte("{not yaml: ["), 0644))

	st, err := m.Load(p.ID)
	require.NoError(t, err, "load should recover from the backup")
	assert.Equal(t, p.ID, st.PlanID)

	// The corrupt bytes were preserved for inspection.
	entries, err := os.ReadDir(filepath.Join(baseDir, "quarantine"))
	require.NoError(t, err)
	assert.NotEmpty(t, entries)
}

func TestLoad_WrongFileType(t *testing.T) {
	baseDir := t.TempDir()
	m := NewManager(baseDir)
	p := sealTestPlan(t, m)

	// No .bak exists yet, so the mismatched header is unrecoverable.
	path := m.StatePath(p.ID)
	require.NoError(t, os.WriteFile(path, []byte("schema_version: 1\nfile_type: config\n"), 0644))

	_, err := m.Load(p.ID)
	require.Error(t, err)
}
