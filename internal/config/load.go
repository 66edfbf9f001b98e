package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"qfrbench/internal/spec"
)

// Load reads, parses, normalizes, and validates a config file. Files ending in
// .toml are decoded as TOML, everything else as YAML.
func Load(path string) (spec.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return spec.Config{}, fmt.Errorf("read config: %w", err)
	}
	parse := spec.ParseConfig
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		parse = spec.ParseConfigTOML
	}
	cfg, err := parse(data)
	if err != nil {
		return spec.Config{}, err
	}
	Normalize(&cfg)
	if err := Validate(&cfg, RepoRootFromConfigPath(path)); err != nil {
		return spec.Config{}, err
	}
	return cfg, nil
}
