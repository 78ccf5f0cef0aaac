package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Source names where a configuration was read from.
type Source string

const (
	SourceCustom   Source = "custom"
	SourceUser     Source = "user"
	SourceLocal    Source = "local"
	SourceEmbedded Source = "embedded"
	SourceBuiltin  Source = "builtin"
)

// Load loads the configuration and applies environment overrides.
// Search order: customPath -> ~/.cuprace/config.yaml -> ./configs/cuprace.yaml -> embedded default
func Load(customPath string) (Config, Source, error) {
	cfg, src, err := loadFile(customPath)
	if err != nil {
		return cfg, src, err
	}
	if err := ApplyEnv(&cfg); err != nil {
		return cfg, src, err
	}
	return cfg, src, nil
}

func loadFile(customPath string) (Config, Source, error) {
	// Try custom path first
	if customPath != "" {
		cfg := Default()
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, SourceCustom, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, SourceCustom, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, SourceCustom, nil
	}

	// Try user config directory
	if path := userConfigPath(); path != "" {
		if cfg, ok := readYAML(path); ok {
			return cfg, SourceUser, nil
		}
	}

	// Try local configs directory
	if cfg, ok := readYAML(filepath.Join("configs", "cuprace.yaml")); ok {
		return cfg, SourceLocal, nil
	}

	// Use embedded default YAML
	cfg := Default()
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return Default(), SourceBuiltin, nil // Fallback to hardcoded if embed fails
	}
	return cfg, SourceEmbedded, nil
}

// readYAML decodes a file over the defaults. Unreadable files are skipped.
func readYAML(path string) (Config, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, false
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, false
	}
	return cfg, true
}

// userConfigPath returns the path to the user config file, or empty if home is unavailable.
func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cuprace", "config.yaml")
}

// ApplyEnv loads dotenv files (./.env when none are given) without replacing
// variables that are already set, then decodes CUPRACE_* variables into cfg.
func ApplyEnv(cfg *Config, envFiles ...string) error {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	if err := envdecode.Decode(cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return fmt.Errorf("failed to decode environment: %w", err)
	}
	return nil
}
