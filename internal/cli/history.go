package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history [plan-id]",
	Short: "Show past planning runs, or one plan's event trail",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		baseDir, err := requireWorkspace()
		if err != nil {
			return err
		}
		s, err := openStore(baseDir)
		if err != nil {
			return err
		}
		defer s.Close()

		if len(args) == 1 {
			events, err := s.ListEvents(args[0])
			if err != nil {
				return err
			}
			if len(events) == 0 {
				fmt.Printf("no events recorded for %s\n", args[0])
				return nil
			}
			for _, e := range events {
				line := fmt.Sprintf("%s  %-8s", e.Timestamp.Local().Format("2006-01-02 15:04:05"), e.Type)
				if e.TaskID != "" {
					line += "  " + e.TaskID
				}
				if e.Detail != "" {
					line += "  " + e.Detail
				}
				fmt.Println(line)
			}
			return nil
		}

		runs, err := s.ListRuns(historyLimit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("no planning runs recorded")
			return nil
		}
		fmt.Printf("%-26s %6s %7s %12s %11s %9s  %s\n",
			"PLAN", "TASKS", "LAYERS", "SEQUENTIAL", "PARALLEL", "SAVINGS", "CREATED")
		for _, r := range runs {
			fmt.Printf("%-26s %6d %7d %12.1f %11.1f %8.1f%%  %s\n",
				r.PlanID, r.TaskCount, r.LayerCount,
				r.SequentialTotal, r.ParallelTotal, r.SavingsPercent,
				r.CreatedAt.Local().Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum runs to show")
}
