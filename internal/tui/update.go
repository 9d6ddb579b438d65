package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/waveplan/waveplan/internal/state"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case stateLoadedMsg:
		m.refreshing = false
		if msg.err != nil {
			m.loadErr = msg.err.Error()
			return m, nil
		}
		m.loadErr = ""
		m.st = msg.st
		m.status = state.DeriveStatus(msg.st)
		m.clampCursor()
		return m, nil

	case tickMsg:
		var cmds []tea.Cmd
		cmds = append(cmds, tickCmd())
		if m.statusMsg != "" && time.Since(m.statusTime) > 5*time.Second {
			m.statusMsg = ""
		}
		if !m.refreshing {
			m.refreshing = true
			cmds = append(cmds, m.loadState())
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit

	case "h", "left":
		m.cursorLayer--
		m.clampCursor()

	case "l", "right":
		m.cursorLayer++
		m.clampCursor()

	case "r":
		if !m.refreshing {
			m.refreshing = true
			m.setStatus("Refreshing...")
			return m, m.loadState()
		}
	}

	return m, nil
}
