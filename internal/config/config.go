// Package config loads application configuration from TOML files in the
// XDG config directories.
package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all user-tunable settings.
type Config struct {
	DataDir string  `koanf:"data_dir"` // overrides the XDG data location
	Volume  float64 `koanf:"volume"`   // initial volume, 0.0-1.0
	Rate    float64 `koanf:"rate"`     // initial playback rate
	Mode    string  `koanf:"mode"`     // sequential, loop-all, loop-one, shuffle

	Log LogConfig `koanf:"log"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level      string `koanf:"level"` // debug, info, warn, error
	File       string `koanf:"file"`  // empty disables file logging
	MaxSizeMB  int    `koanf:"max_size_mb"`
	MaxBackups int    `koanf:"max_backups"`
	MaxAgeDays int    `koanf:"max_age_days"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		Volume: 0.5,
		Rate:   1.0,
		Mode:   "sequential",
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 30,
		},
	}
}

// Load reads configuration from the standard locations, later files
// overriding earlier ones. A missing file is not an error.
func Load() (*Config, error) {
	return loadFrom(configPaths()...)
}

func loadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, err
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if cfg.DataDir != "" {
		cfg.DataDir = expandPath(cfg.DataDir)
	}
	if cfg.Log.File != "" {
		cfg.Log.File = expandPath(cfg.Log.File)
	}
	return cfg, nil
}

func configPaths() []string {
	var paths []string
	for _, dir := range xdg.ConfigDirs {
		paths = append(paths, filepath.Join(dir, "fermata", "config.toml"))
	}
	// User config wins over system dirs.
	paths = append(paths, filepath.Join(xdg.ConfigHome, "fermata", "config.toml"))
	return paths
}

func expandPath(path string) string {
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
