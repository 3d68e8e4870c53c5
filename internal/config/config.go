// Package config loads the optional codexmeter YAML settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EnvPath overrides the config file location.
const EnvPath = "CODEXMETER_CONFIG"

type Config struct {
	UsageURL         string   `yaml:"usage_url"`
	UserAgent        string   `yaml:"user_agent"`
	KeychainServices []string `yaml:"keychain_services"`
}

// DefaultPath returns $EnvPath if set, else <user config dir>/codexmeter/config.yaml.
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvPath); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "codexmeter", "config.yaml"), nil
}

// Load reads path. A missing file yields a zero Config, which callers
// treat as "use the built-in defaults".
func Load(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
