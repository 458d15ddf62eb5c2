// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Grid    GridConfig    `toml:"grid"`
	Summary SummaryConfig `toml:"summary"`
}

// GridConfig maps grid sizing and target placement settings.
type GridConfig struct {
	Breakpoint *float64 `toml:"breakpoint"`
	Small      *int     `toml:"small"`
	Large      *int     `toml:"large"`
	Fill       *float64 `toml:"fill"`
	Gap        *int     `toml:"gap"`
	Seed       *int64   `toml:"seed"`
}

// SummaryConfig maps exit summary settings.
type SummaryConfig struct {
	Enabled     *bool `toml:"enabled"`
	CurveWindow *int  `toml:"curve-window"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
