// Package config loads the workspace configuration from
// .waveplan/config.yaml. Every field has a working zero-config default.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	yamlv3 "gopkg.in/yaml.v3"
)

type Config struct {
	Version int `yaml:"version"`

	// DurationUnit is a display label only ("h", "d", "pt"); task
	// durations are unit-agnostic and never converted.
	DurationUnit string `yaml:"duration_unit"`

	Output  Output  `yaml:"output"`
	Watch   Watch   `yaml:"watch"`
	Logging Logging `yaml:"logging"`
}

type Output struct {
	Format string `yaml:"format"` // "text" or "json"
}

type Watch struct {
	DebounceMS int `yaml:"debounce_ms"`
}

type Logging struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

func Default() Config {
	return Config{
		Version:      1,
		DurationUnit: "h",
		Output:       Output{Format: "text"},
		Watch:        Watch{DebounceMS: 500},
		Logging:      Logging{Level: "info"},
	}
}

// Load reads config.yaml from the workspace dir, falling back to
// defaults when the file is absent. Unset fields get their defaults so
// a partial config file stays valid.
func Load(baseDir string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filepath.Join(baseDir, "config.yaml"))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config.yaml: %w", err)
	}

	if err := yamlv3.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config.yaml: %w", err)
	}

	if cfg.DurationUnit == "" {
		cfg.DurationUnit = "h"
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = "text"
	}
	if cfg.Output.Format != "text" && cfg.Output.Format != "json" {
		return Default(), fmt.Errorf("output.format must be 'text' or 'json', got %q", cfg.Output.Format)
	}
	if cfg.Watch.DebounceMS <= 0 {
		cfg.Watch.DebounceMS = 500
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	return cfg, nil
}
