package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Save writes the config to the user's config directory.
func (c *Config) Save() error {
	return c.SaveTo(filepath.Join(ConfigDir(), "config.yaml"))
}

// SaveTo writes the config to a specific path. A .toml extension selects
// TOML, anything else YAML.
func (c *Config) SaveTo(path string) error {
	// Create parent directory if needed
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	marshal := yaml.Marshal
	if isTOML(path) {
		marshal = toml.Marshal
	}
	data, err := marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}
