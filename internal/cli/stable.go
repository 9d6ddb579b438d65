package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var stableCmd = &cobra.Command{
	Use:   "stable <plan-id> <task-id>",
	Short: "Mark a completed task stable",
	Long: "stable records the external stability signal for a completed task:\n" +
		"tests passing and no known defects. Checkpoints gate on this signal,\n" +
		"never on mere completion.",
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		baseDir, err := requireWorkspace()
		if err != nil {
			return err
		}
		planID, taskID := args[0], args[1]

		if _, err := newManager(baseDir).MarkStable(planID, taskID); err != nil {
			return err
		}

		if s, serr := openStore(baseDir); serr == nil {
			s.AddEvent(planID, taskID, "stable", "")
			s.Close()
		}

		fmt.Printf("%s is now stable (plan %s)\n", taskID, planID)
		return nil
	},
}
