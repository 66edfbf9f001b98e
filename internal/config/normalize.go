package config

import (
	"strings"

	"qfrbench/internal/generator"
	"qfrbench/internal/spec"
)

// Collaborator types.
const (
	TypeBuiltin   = "builtin"
	TypeDirectory = "directory"
	TypeCommand   = "command"
)

func Normalize(cfg *spec.Config) {
	cfg.AbstractionLevel = strings.TrimSpace(cfg.AbstractionLevel)
	if cfg.AbstractionLevel == "" {
		cfg.AbstractionLevel = generator.DefaultLevel
	}
	if strings.TrimSpace(cfg.Output.Dir) == "" {
		cfg.Output.Dir = DefaultOutputDir
	}
	cfg.Generator.Type = strings.ToLower(strings.TrimSpace(cfg.Generator.Type))
	if cfg.Generator.Type == "" {
		cfg.Generator.Type = TypeBuiltin
	}
	cfg.Constructor.Type = strings.ToLower(strings.TrimSpace(cfg.Constructor.Type))
	if cfg.Constructor.Type == "" {
		cfg.Constructor.Type = TypeBuiltin
	}
	for i := range cfg.Benchmarks {
		cfg.Benchmarks[i] = strings.TrimSpace(cfg.Benchmarks[i])
	}
}
