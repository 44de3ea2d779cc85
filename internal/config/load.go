package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config file names searched in each standard location, in order.
var configNames = []string{"config.yaml", "config.yml", "config.toml"}

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	// Start with defaults
	cfg := Default()

	// Try to load from file (explicit path takes priority)
	if configPath := Path(); configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	// Apply CLI flags (highest priority)
	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Path returns the config file Load reads: the -config flag if set,
// otherwise the first file found in the standard locations, or "".
func Path() string {
	if p := ConfigPath(); p != "" {
		return p
	}
	return findConfigFile()
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	for _, dir := range []string{".", ConfigDir()} {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "ColorShredder")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "ColorShredder")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "color-shredder")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "color-shredder")
	}
}

// loadFromFile loads config from a YAML or TOML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if isTOML(path) {
		return toml.Unmarshal(data, cfg)
	}
	return yaml.Unmarshal(data, cfg)
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}
