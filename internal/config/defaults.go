package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/cuprace.yaml
var defaultYAML []byte

// Default returns the built-in configuration. It matches the embedded YAML.
func Default() Config {
	return Config{
		Players: PlayersConfig{
			Left:  "Left",
			Right: "Right",
		},
		Theme: ThemeConfig{
			Grey:   "245",
			Blue:   "33",
			Green:  "42",
			Yellow: "220",
			Red:    "196",
			Accent: "213",
			Muted:  "240",
		},
		Log: LogConfig{
			Level: "info",
			File:  "~/.cuprace/cuprace.log",
		},
		Storage: StorageConfig{
			DBPath: "~/.cuprace/results.db",
		},
		SSH: SSHConfig{
			Address:     ":23235",
			IdleTimeout: 30 * time.Minute,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
