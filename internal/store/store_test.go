package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waveplan/waveplan/internal/schedule"
	"github.com/waveplan/waveplan/internal/task"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func buildTestPlan(t *testing.T) *schedule.Plan {
	t.Helper()
	p, err := schedule.BuildPlan([]task.Task{
		{ID: "a", EstimatedDuration: 4},
		{ID: "b", EstimatedDuration: 2},
	})
	require.NoError(t, err)
	return p
}

func TestRecordRunAndListRuns(t *testing.T) {
	s := openTestStore(t)

	first := buildTestPlan(t)
	second := buildTestPlan(t)

	_, err := s.RecordRun(first)
	require.NoError(t, err)
	run, err := s.RecordRun(second)
	require.NoError(t, err)

	assert.Equal(t, second.ID, run.PlanID)
	assert.Equal(t, 2, run.TaskCount)
	assert.Equal(t, 1, run.LayerCount)

	runs, err := s.ListRuns(0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second.ID, runs[0].PlanID, "newest run first")
	assert.Equal(t, first.ID, runs[1].PlanID)
}

func TestRecordRun_DuplicatePlanIDRejected(t *testing.T) {
	s := openTestStore(t)
	p := buildTestPlan(t)

	_, err := s.RecordRun(p)
	require.NoError(t, err)
	_, err = s.RecordRun(p)
	require.Error(t, err, "plan ids are unique per run")
}

func TestListRuns_Limit(t *testing.T) {
	s := openTestStore(t)
	for i := 0; i < 3; i++ {
		_, err := s.RecordRun(buildTestPlan(t))
		require.NoError(t, err)
	}

	runs, err := s.ListRuns(2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestEvents(t *testing.T) {
	s := openTestStore(t)
	p := buildTestPlan(t)

	_, err := s.RecordRun(p)
	require.NoError(t, err)
	require.NoError(t, s.AddEvent(p.ID, "a", "status", "running"))
	require.NoError(t, s.AddEvent(p.ID, "a", "stable", ""))

	events, err := s.ListEvents(p.ID)
	require.NoError(t, err)
	require.Len(t, events, 3, "sealed event plus two explicit ones")

	assert.Equal(t, "sealed", events[0].Type)
	assert.Equal(t, "status", events[1].Type)
	assert.Equal(t, "a", events[1].TaskID)
	assert.Equal(t, "running", events[1].Detail)
	assert.Equal(t, "stable", events[2].Type)

	other, err := s.ListEvents("plan_0000000000_00000000")
	require.NoError(t, err)
	assert.Empty(t, other)
}
