package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"qfrbench/internal/evaluation"
	"qfrbench/internal/spec"
	"qfrbench/internal/store"
)

// Validate checks a config for correctness and referenced paths.
func Validate(cfg *spec.Config, baseDir string) error {
	collector := &issueCollector{}

	if cfg.Version == 0 {
		collector.add("version", "is required")
	} else if cfg.Version != 1 {
		collector.addf("version", "unsupported version %d", cfg.Version)
	}

	if baseDir == "" {
		baseDir = "."
	}

	validateSweep(cfg, collector.add)
	validateParams(cfg, collector.add)
	validateOutput(cfg, collector.add)
	validateGenerator(cfg, baseDir, collector.add)
	validateConstructor(cfg, collector.add)

	return collector.result()
}

func validateSweep(cfg *spec.Config, add issueAdder) {
	if len(cfg.Benchmarks) == 0 {
		add("benchmarks", "at least one benchmark is required")
	}
	seen := map[string]struct{}{}
	for i, name := range cfg.Benchmarks {
		if name == "" {
			add(fmt.Sprintf("benchmarks[%d]", i), "is empty")
			continue
		}
		if _, ok := seen[name]; ok {
			add("benchmarks", fmt.Sprintf("duplicate benchmark %q", name))
		}
		seen[name] = struct{}{}
	}
	r := evaluation.Range{Start: cfg.Qubits.Start, Stop: cfg.Qubits.Stop}
	if err := r.Check(); err != nil {
		add("qubits", err.Error())
	} else if r.Len() == 0 {
		add("qubits", fmt.Sprintf("range [%d, %d) is empty", r.Start, r.Stop))
	}
}

func validateParams(cfg *spec.Config, add issueAdder) {
	if len(cfg.Params) == 0 {
		add("params", "at least one parameter set is required")
	}
	for i, params := range cfg.Params {
		if strings.TrimSpace(params.Label) == "" {
			add(fmt.Sprintf("params[%d].label", i), "is required")
		}
	}
}

func validateOutput(cfg *spec.Config, add issueAdder) {
	if cfg.Output.Database == "" {
		return
	}
	if _, _, err := store.ParseDSN(cfg.Output.Database); err != nil {
		add("output.database", err.Error())
	}
}

func validateGenerator(cfg *spec.Config, baseDir string, add issueAdder) {
	switch cfg.Generator.Type {
	case TypeBuiltin:
	case TypeDirectory:
		if strings.TrimSpace(cfg.Generator.Dir) == "" {
			add("generator.dir", "is required for directory generators")
			return
		}
		dir := cfg.Generator.Dir
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(baseDir, dir)
		}
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			add("generator.dir", fmt.Sprintf("directory not found: %s", cfg.Generator.Dir))
		}
	case TypeCommand:
		if len(cfg.Generator.Command) == 0 {
			add("generator.command", "is required for command generators")
		}
	default:
		add("generator.type", fmt.Sprintf("unsupported type %q", cfg.Generator.Type))
	}
}

func validateConstructor(cfg *spec.Config, add issueAdder) {
	switch cfg.Constructor.Type {
	case TypeBuiltin:
	case TypeCommand:
		if len(cfg.Constructor.Command) == 0 {
			add("constructor.command", "is required for command constructors")
		}
	default:
		add("constructor.type", fmt.Sprintf("unsupported type %q", cfg.Constructor.Type))
	}
	if cfg.Constructor.MaxQubits < 0 {
		add("constructor.max_qubits", "must be >= 0")
	}
}
