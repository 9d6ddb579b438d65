package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/waveplan/waveplan/internal/graph"
	"github.com/waveplan/waveplan/internal/task"
)

var validateFile string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a task list without building a plan",
	Long: "validate loads the task list, checks every task's fields, and builds\n" +
		"the dependency graph to surface duplicate ids, unknown references, and\n" +
		"cycles. Nothing is sealed or recorded.",
	RunE: func(cmd *cobra.Command, args []string) error {
		tasks, err := task.Load(validateFile)
		if err != nil {
			return err
		}

		if verrs := task.ValidateTasks(tasks); verrs != nil {
			return verrs
		}

		g, err := graph.Build(tasks)
		if err != nil {
			return err
		}

		fmt.Printf("OK: %d tasks, %d dependency edges\n", g.Len(), len(g.Edges()))
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVarP(&validateFile, "file", "f", "tasks.yaml", "task list file (JSON or YAML)")
}
