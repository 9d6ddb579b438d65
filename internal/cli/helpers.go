package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/waveplan/waveplan/internal/config"
	"github.com/waveplan/waveplan/internal/state"
	"github.com/waveplan/waveplan/internal/store"
)

const workspaceDirName = ".waveplan"

// findWorkspace walks up from the current directory looking for a
// .waveplan directory, so commands work from anywhere in the tree.
func findWorkspace() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(dir, workspaceDirName)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

func requireWorkspace() (string, error) {
	baseDir := findWorkspace()
	if baseDir == "" {
		return "", fmt.Errorf("no %s directory found. Run: waveplan init", workspaceDirName)
	}
	return baseDir, nil
}

func loadWorkspaceConfig(baseDir string) (config.Config, error) {
	return config.Load(baseDir)
}

func openStore(baseDir string) (*store.Store, error) {
	return store.Open(filepath.Join(baseDir, "history.db"))
}

func newManager(baseDir string) *state.Manager {
	return state.NewManager(baseDir)
}
