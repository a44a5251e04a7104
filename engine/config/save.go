package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SavePath returns where a config should be written: path when given, the
// file Load would find otherwise, or config.yaml in ConfigDir.
func SavePath(path string) string {
	if path != "" {
		return path
	}
	if found := findConfigFile(); found != "" {
		return found
	}
	return filepath.Join(ConfigDir(), "config.yaml")
}

// SaveTo writes the config to path, creating parent directories.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
