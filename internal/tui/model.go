// Package tui is a read-only board over a sealed plan: one column per
// execution layer, live task statuses from the state file, checkpoint
// markers between the layers they guard.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/waveplan/waveplan/internal/state"
	"github.com/waveplan/waveplan/internal/task"
)

// Model is the top-level bubbletea model.
type Model struct {
	manager *state.Manager
	planID  string

	width  int
	height int

	// Snapshot of the plan state, refreshed on tick and on 'r'.
	st     *state.PlanState
	status state.PlanStatus

	// Cursor over layers (columns).
	cursorLayer int

	statusMsg  string
	statusTime time.Time
	loadErr    string

	refreshing bool
	quitting   bool
}

// New creates a board over one plan.
func New(m *state.Manager, planID string) Model {
	return Model{
		manager: m,
		planID:  planID,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadState(), tickCmd())
}

type stateLoadedMsg struct {
	st  *state.PlanState
	err error
}

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(2*time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) loadState() tea.Cmd {
	return func() tea.Msg {
		st, err := m.manager.Load(m.planID)
		return stateLoadedMsg{st: st, err: err}
	}
}

func (m *Model) clampCursor() {
	if m.st == nil {
		m.cursorLayer = 0
		return
	}
	if m.cursorLayer < 0 {
		m.cursorLayer = 0
	}
	if n := len(m.st.Layers); m.cursorLayer >= n && n > 0 {
		m.cursorLayer = n - 1
	}
}

func (m *Model) setStatus(msg string) {
	m.statusMsg = msg
	m.statusTime = time.Now()
}

// taskStatus looks up the live status for a task id, defaulting to
// scheduled for ids the state file has never seen.
func (m *Model) taskStatus(id string) task.Status {
	if m.st == nil {
		return task.StatusScheduled
	}
	if s, ok := m.st.TaskStates[id]; ok {
		return s
	}
	return task.StatusScheduled
}
