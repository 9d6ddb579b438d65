package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/waveplan/waveplan/internal/task"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))

	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Width(26)

	activeColumnStyle = columnStyle.
				BorderForeground(lipgloss.Color("212"))

	columnHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))

	checkpointStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	errStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	statusStyles = map[task.Status]lipgloss.Style{
		task.StatusPending:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		task.StatusScheduled: lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		task.StatusRunning:   lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		task.StatusCompleted: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		task.StatusStable:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		task.StatusFailed:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	}

	statusGlyphs = map[task.Status]string{
		task.StatusPending:   "·",
		task.StatusScheduled: "○",
		task.StatusRunning:   "◐",
		task.StatusCompleted: "●",
		task.StatusStable:    "◆",
		task.StatusFailed:    "✗",
	}
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.loadErr != "" {
		return errStyle.Render("error: "+m.loadErr) + "\n" +
			helpStyle.Render("r refresh · q quit") + "\n"
	}
	if m.st == nil {
		return "Loading plan...\n"
	}

	var b strings.Builder

	header := fmt.Sprintf("%s  [%s]  %d tasks · %d layers · savings %.1f%%",
		m.st.PlanID, m.status, len(m.st.Tasks), len(m.st.Layers),
		m.st.Estimate.SavingsPercent)
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	// Checkpoints keyed by the layer they follow.
	checkpointsAfter := make(map[int][]string)
	for _, cp := range m.st.Checkpoints {
		checkpointsAfter[cp.AfterLayer] = append(checkpointsAfter[cp.AfterLayer],
			fmt.Sprintf("%s → %s", cp.GatingTask, cp.DependentTask))
	}

	var columns []string
	for i, layer := range m.st.Layers {
		var col strings.Builder
		col.WriteString(columnHeaderStyle.Render(fmt.Sprintf("LAYER %d (%.1f)", layer.Index, layer.Duration)))
		col.WriteString("\n")
		for _, id := range layer.TaskIDs {
			s := m.taskStatus(id)
			style, ok := statusStyles[s]
			if !ok {
				style = statusStyles[task.StatusScheduled]
			}
			glyph := statusGlyphs[s]
			col.WriteString(style.Render(fmt.Sprintf("%s %s", glyph, id)))
			col.WriteString("\n")
		}

		box := columnStyle
		if i == m.cursorLayer {
			box = activeColumnStyle
		}
		rendered := box.Render(strings.TrimRight(col.String(), "\n"))

		if gates := checkpointsAfter[layer.Index]; len(gates) > 0 {
			rendered = lipgloss.JoinVertical(lipgloss.Left, rendered,
				checkpointStyle.Render("▮ checkpoint: "+strings.Join(gates, ", ")))
		}
		columns = append(columns, rendered)
	}

	if len(columns) == 0 {
		b.WriteString(helpStyle.Render("(empty plan)"))
		b.WriteString("\n")
	} else {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, columns...))
		b.WriteString("\n")
	}

	if m.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(m.statusMsg))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("←/→ select layer · r refresh · q quit"))
	b.WriteString("\n")

	return b.String()
}
