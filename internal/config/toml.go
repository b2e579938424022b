// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	History  HistoryConfig  `toml:"history"`
	Table    TableConfig    `toml:"table"`
	Copyedit CopyeditConfig `toml:"copyedit"`
}

// HistoryConfig maps run-history settings.
type HistoryConfig struct {
	DBPath *string `toml:"db"`
	Last   *int    `toml:"last"`
	Window *int    `toml:"window"`
}

// TableConfig maps settings for the human-readable table output.
type TableConfig struct {
	Color *string `toml:"color"`
}

// CopyeditConfig maps settings for the copy-editing checks.
type CopyeditConfig struct {
	Words *string `toml:"words"`
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
