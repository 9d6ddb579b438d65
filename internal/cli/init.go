package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/waveplan/waveplan/internal/config"
	yamlutil "github.com/waveplan/waveplan/internal/yaml"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a waveplan workspace in the current directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		baseDir := workspaceDirName
		if info, err := os.Stat(baseDir); err == nil && info.IsDir() {
			return fmt.Errorf("%s already exists", baseDir)
		}

		for _, sub := range []string{"state", "locks", "quarantine"} {
			if err := os.MkdirAll(filepath.Join(baseDir, sub), 0755); err != nil {
				return fmt.Errorf("create %s: %w", filepath.Join(baseDir, sub), err)
			}
		}

		if err := writeDefaultConfig(baseDir); err != nil {
			return err
		}

		// Create the history database up front so every later command
		// can assume it exists.
		s, err := openStore(baseDir)
		if err != nil {
			return fmt.Errorf("create history database: %w", err)
		}
		s.Close()

		fmt.Printf("Initialized waveplan workspace in %s\n", baseDir)
		return nil
	},
}

func writeDefaultConfig(baseDir string) error {
	// The config file carries the same schema header as state files so
	// a stray rename is caught on load.
	type configFile struct {
		SchemaVersion int    `yaml:"schema_version"`
		FileType      string `yaml:"file_type"`
		config.Config `yaml:",inline"`
	}

	data, err := yamlv3.Marshal(configFile{
		SchemaVersion: yamlutil.CurrentSchemaVersion,
		FileType:      "config",
		Config:        config.Default(),
	})
	if err != nil {
		return fmt.Errorf("marshal default config: %w", err)
	}
	return yamlutil.AtomicWriteRaw(filepath.Join(baseDir, "config.yaml"), data)
}
