package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/waveplan/waveplan/internal/schedule"
	"github.com/waveplan/waveplan/internal/watch"
)

var watchFile string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-plan automatically whenever the task list changes",
	Long: "watch plans once, then watches the task list file and re-plans on\n" +
		"every change. Each successful plan is sealed and recorded; invalid\n" +
		"input is logged and the previous plan stays in effect. Stops on\n" +
		"SIGINT or SIGTERM.",
	RunE: func(cmd *cobra.Command, args []string) error {
		baseDir, err := requireWorkspace()
		if err != nil {
			return err
		}
		cfg, err := loadWorkspaceConfig(baseDir)
		if err != nil {
			return err
		}

		s, err := openStore(baseDir)
		if err != nil {
			return err
		}
		defer s.Close()
		manager := newManager(baseDir)

		onPlan := func(p *schedule.Plan) error {
			if _, err := manager.Seal(p); err != nil {
				return err
			}
			if _, err := s.RecordRun(p); err != nil {
				return err
			}
			return nil
		}

		w, err := watch.New(baseDir, watchFile, cfg, os.Stderr, onPlan)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return w.Run(ctx)
	},
}

func init() {
	watchCmd.Flags().StringVarP(&watchFile, "file", "f", "tasks.yaml", "task list file to watch")
}
