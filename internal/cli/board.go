package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/waveplan/waveplan/internal/tui"
)

var boardCmd = &cobra.Command{
	Use:   "board [plan-id]",
	Short: "Open the live layer board for a sealed plan",
	Long: "board shows one column per execution layer with live task statuses.\n" +
		"With no plan id it opens the most recently sealed plan.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		baseDir, err := requireWorkspace()
		if err != nil {
			return err
		}
		manager := newManager(baseDir)

		var planID string
		if len(args) == 1 {
			planID = args[0]
		} else {
			ids, err := manager.List()
			if err != nil {
				return err
			}
			if len(ids) == 0 {
				return fmt.Errorf("no sealed plans. Run: waveplan plan")
			}
			planID = ids[0]
		}

		p := tea.NewProgram(tui.New(manager, planID), tea.WithAltScreen())
		_, err = p.Run()
		return err
	},
}
