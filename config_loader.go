package laminar

import (
	"strings"

	"github.com/arloliu/fuda"
)

// FromEnv builds a Config from the process environment, applying the
// documented defaults for everything except APIKey.
func FromEnv() (*Config, error) {
	cfg := &Config{}
	if err := fuda.SetDefaults(cfg); err != nil {
		return nil, err
	}
	if err := fuda.LoadEnv(cfg); err != nil {
		return nil, err
	}
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)

	return cfg, nil
}

// LoadConfig loads a Config from a file path.
// It supports YAML and JSON formats.
// Environment variables are also parsed and override file values.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	// fuda.LoadFile handles reading, parsing, env vars, and defaults
	if err := fuda.LoadFile(path, &cfg); err != nil {
		return nil, err
	}
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)

	return &cfg, nil
}

// ParseConfig parses a Config from a byte slice.
// It supports YAML and JSON formats (auto-detected).
// Environment variables are also parsed and override file values.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := fuda.LoadBytes(data, &cfg); err != nil {
		return nil, err
	}
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)

	return &cfg, nil
}
