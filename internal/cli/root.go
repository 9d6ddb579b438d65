// Package cli wires the waveplan commands. Each command lives in its
// own file and registers itself on the root here.
package cli

import (
	"github.com/spf13/cobra"
)

// Version is stamped by the build; "dev" for local builds.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "waveplan",
	Short: "Dependency-aware parallel execution planner",
	Long: "waveplan — turns a flat task list into a layered execution plan:\n" +
		"conflict-free parallel layers, stability checkpoints, and a savings estimate.",
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(stableCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(watchCmd)
}
