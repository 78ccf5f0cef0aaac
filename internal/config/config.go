// Package config provides YAML-based configuration loading for cuprace.
// Only presentation and session settings live here; the rule table is fixed.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Config is the complete application configuration.
type Config struct {
	Players PlayersConfig `yaml:"players"`
	Game    GameConfig    `yaml:"game"`
	Theme   ThemeConfig   `yaml:"theme"`
	Log     LogConfig     `yaml:"log"`
	Storage StorageConfig `yaml:"storage"`
	SSH     SSHConfig     `yaml:"ssh"`
}

// PlayersConfig holds the display names of both seats.
type PlayersConfig struct {
	Left  string `yaml:"left" env:"CUPRACE_LEFT_NAME"`
	Right string `yaml:"right" env:"CUPRACE_RIGHT_NAME"`
}

// GameConfig holds session settings for the rules engine.
type GameConfig struct {
	Seed   int64 `yaml:"seed" env:"CUPRACE_SEED"`     // 0 = seed from the clock
	Strict bool  `yaml:"strict" env:"CUPRACE_STRICT"` // Halt on invariant violations
}

// ThemeConfig maps cube colors to terminal colors (lipgloss color strings).
type ThemeConfig struct {
	Grey   string `yaml:"grey"`
	Blue   string `yaml:"blue"`
	Green  string `yaml:"green"`
	Yellow string `yaml:"yellow"`
	Red    string `yaml:"red"`
	Accent string `yaml:"accent"`
	Muted  string `yaml:"muted"`
}

// LogConfig controls the application logger.
type LogConfig struct {
	Level string `yaml:"level" env:"CUPRACE_LOG_LEVEL"`
	File  string `yaml:"file" env:"CUPRACE_LOG_FILE"` // Empty disables logging in play mode
}

// StorageConfig locates the results database.
type StorageConfig struct {
	DBPath string `yaml:"db_path" env:"CUPRACE_DB"`
}

// SSHConfig configures the SSH server.
type SSHConfig struct {
	Address     string        `yaml:"address" env:"CUPRACE_SSH_ADDRESS"`
	HostKeyPath string        `yaml:"host_key" env:"CUPRACE_SSH_HOST_KEY"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"CUPRACE_SSH_IDLE_TIMEOUT"`
}

// Validate checks values that would otherwise fail late.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Players.Left) == "" || strings.TrimSpace(c.Players.Right) == "" {
		errs = append(errs, errors.New("players: both names are required"))
	}
	if strings.EqualFold(strings.TrimSpace(c.Players.Left), strings.TrimSpace(c.Players.Right)) {
		errs = append(errs, fmt.Errorf("players: names must differ, both are %q", c.Players.Left))
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log: %w", err))
	}
	if c.Storage.DBPath == "" {
		errs = append(errs, errors.New("storage: db_path is required"))
	}
	if c.SSH.Address == "" {
		errs = append(errs, errors.New("ssh: address is required"))
	}
	if c.SSH.IdleTimeout <= 0 {
		errs = append(errs, fmt.Errorf("ssh: idle_timeout must be positive, got %s", c.SSH.IdleTimeout))
	}
	return errors.Join(errs...)
}

// LogLevel returns the parsed log level, falling back to info.
func (c Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
