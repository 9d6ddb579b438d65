package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle      = lipgloss.NewStyle().Bold(true)
	layerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	taskStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	dimStyle        = lipgloss.NewStyle().Faint(true)
	checkpointStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	savingsStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	riskStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// Text renders the human-readable summary: layers in execution order
// with checkpoint barriers in between, then totals and risk notes.
func (r *Report) Text(unit string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s\n", titleStyle.Render(fmt.Sprintf("Execution plan %s", r.PlanID)))
	fmt.Fprintf(&sb, "%s\n\n", dimStyle.Render(fmt.Sprintf("%d tasks across %d layers", len(r.TaskDetails), len(r.Layers))))

	checkpointsAfter := make(map[int][]string)
	for _, cp := range r.Checkpoints {
		checkpointsAfter[cp.AfterLayer] = append(checkpointsAfter[cp.AfterLayer], cp.Rationale)
	}

	detail := make(map[string]TaskDetail, len(r.TaskDetails))
	for _, d := range r.TaskDetails {
		detail[d.ID] = d
	}

	for _, l := range r.Layers {
		fmt.Fprintf(&sb, "%s %s\n",
			layerStyle.Render(fmt.Sprintf("Layer %d", l.Index)),
			dimStyle.Render(fmt.Sprintf("(%s)", formatDuration(l.Duration, unit))))
		for _, id := range l.TaskIDs {
			d := detail[id]
			line := fmt.Sprintf("  %s %s", taskStyle.Render(id), dimStyle.Render(formatDuration(d.Duration, unit)))
			if d.Kind != "" {
				line += dimStyle.Render(fmt.Sprintf(" [%s]", d.Kind))
			}
			sb.WriteString(line + "\n")
			for _, e := range d.DependsOn {
				reasons := make([]string, 0, len(e.Reasons))
				for _, reason := range e.Reasons {
					reasons = append(reasons, string(reason))
				}
				fmt.Fprintf(&sb, "    %s\n", dimStyle.Render(fmt.Sprintf("after %s (%s)", e.From, strings.Join(reasons, ", "))))
			}
		}
		for _, rationale := range checkpointsAfter[l.Index] {
			fmt.Fprintf(&sb, "%s %s\n", checkpointStyle.Render("── CHECKPOINT ──"), rationale)
		}
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "Sequential: %s   Parallel: %s   %s\n",
		formatDuration(r.SequentialTotal, unit),
		formatDuration(r.ParallelTotal, unit),
		savingsStyle.Render(fmt.Sprintf("Savings: %.1f%%", r.SavingsPercent)))

	if len(r.RiskNotes) > 0 {
		sb.WriteString("\n" + titleStyle.Render("Risk notes") + "\n")
		for _, n := range r.RiskNotes {
			fmt.Fprintf(&sb, "  %s %s + %s: %s\n",
				riskStyle.Render(n.Classification), n.Tasks[0], n.Tasks[1], dimStyle.Render(n.Note))
		}
	}

	return sb.String()
}

func formatDuration(d float64, unit string) string {
	if unit == "" {
		return fmt.Sprintf("%g", d)
	}
	return fmt.Sprintf("%g%s", d, unit)
}
