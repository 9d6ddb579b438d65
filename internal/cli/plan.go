package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/waveplan/waveplan/internal/report"
	"github.com/waveplan/waveplan/internal/schedule"
	"github.com/waveplan/waveplan/internal/task"
)

var (
	planFile   string
	planFormat string
	planDryRun bool
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Build a layered execution plan from a task list",
	Long: "plan reads a task list (JSON or YAML), derives the dependency graph,\n" +
		"schedules conflict-free parallel layers, inserts stability checkpoints,\n" +
		"and prints the plan report. Unless --dry-run is given the plan is sealed\n" +
		"into the workspace and recorded in the history database.",
	RunE: func(cmd *cobra.Command, args []string) error {
		baseDir, err := requireWorkspace()
		if err != nil {
			return err
		}
		cfg, err := loadWorkspaceConfig(baseDir)
		if err != nil {
			return err
		}

		format := planFormat
		if format == "" {
			format = cfg.Output.Format
		}
		if format != "text" && format != "json" {
			return fmt.Errorf("--format must be 'text' or 'json', got %q", format)
		}

		tasks, err := task.Load(planFile)
		if err != nil {
			return err
		}

		p, err := schedule.BuildPlan(tasks)
		if err != nil {
			return err
		}

		r := report.Render(p)
		switch format {
		case "json":
			out, err := r.JSON()
			if err != nil {
				return err
			}
			fmt.Println(string(out))
		default:
			fmt.Print(r.Text(cfg.DurationUnit))
		}

		if planDryRun {
			return nil
		}

		if _, err := newManager(baseDir).Seal(p); err != nil {
			return fmt.Errorf("seal plan: %w", err)
		}
		s, err := openStore(baseDir)
		if err != nil {
			return err
		}
		defer s.Close()
		if _, err := s.RecordRun(p); err != nil {
			return err
		}

		fmt.Printf("\nSealed plan %s\n", p.ID)
		return nil
	},
}

func init() {
	planCmd.Flags().StringVarP(&planFile, "file", "f", "tasks.yaml", "task list file (JSON or YAML)")
	planCmd.Flags().StringVar(&planFormat, "format", "", "output format: text or json (default from config)")
	planCmd.Flags().BoolVar(&planDryRun, "dry-run", false, "print the plan without sealing or recording it")
}
