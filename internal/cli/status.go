package cli

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/waveplan/waveplan/internal/state"
	"github.com/waveplan/waveplan/internal/task"
)

var statusShowJSON bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report and inspect task lifecycle state on a sealed plan",
}

var statusSetCmd = &cobra.Command{
	Use:   "set <plan-id> <task-id> <status>",
	Short: "Record an executor-reported task transition",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		baseDir, err := requireWorkspace()
		if err != nil {
			return err
		}
		planID, taskID := args[0], args[1]

		to, err := task.ParseStatus(args[2])
		if err != nil {
			return err
		}

		if _, err := newManager(baseDir).SetTaskStatus(planID, taskID, to); err != nil {
			return err
		}

		// History write is best-effort; the state file already holds
		// the truth.
		if s, serr := openStore(baseDir); serr == nil {
			s.AddEvent(planID, taskID, "status", string(to))
			s.Close()
		}

		fmt.Printf("%s is now %s (plan %s)\n", taskID, to, planID)
		return nil
	},
}

var statusShowCmd = &cobra.Command{
	Use:   "show <plan-id>",
	Short: "Show the plan's derived status and every task's state",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		baseDir, err := requireWorkspace()
		if err != nil {
			return err
		}

		st, err := newManager(baseDir).Load(args[0])
		if err != nil {
			return err
		}
		derived := state.DeriveStatus(st)

		if statusShowJSON {
			out, err := json.MarshalIndent(map[string]any{
				"plan_id":     st.PlanID,
				"plan_status": derived,
				"task_states": st.TaskStates,
				"updated_at":  st.UpdatedAt,
			}, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		}

		fmt.Printf("Plan %s: %s\n", st.PlanID, derived)
		ids := make([]string, 0, len(st.TaskStates))
		for id := range st.TaskStates {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			fmt.Printf("  %-24s %s\n", id, st.TaskStates[id])
		}
		return nil
	},
}

func init() {
	statusShowCmd.Flags().BoolVar(&statusShowJSON, "json", false, "emit JSON")
	statusCmd.AddCommand(statusSetCmd)
	statusCmd.AddCommand(statusShowCmd)
}
