package cli

import (
	"fmt"

	"qfrbench/internal/config"
	"qfrbench/internal/construct"
	"qfrbench/internal/generator"
	"qfrbench/internal/spec"
	"qfrbench/internal/store"
)

// newGenerator builds the circuit source named by the config. Relative
// directories resolve against the project root.
func newGenerator(cfg spec.GeneratorConfig, root string) (generator.Generator, error) {
	switch cfg.Type {
	case "", config.TypeBuiltin:
		return &generator.Builtin{Seed: cfg.Seed}, nil
	case config.TypeDirectory:
		return &generator.Directory{Root: config.ResolvePath(root, cfg.Dir)}, nil
	case config.TypeCommand:
		return &generator.Command{Argv: append([]string(nil), cfg.Command...), Dir: root}, nil
	default:
		return nil, fmt.Errorf("unknown generator type %q", cfg.Type)
	}
}

// newConstructor builds the decision diagram constructor named by the config.
func newConstructor(cfg spec.ConstructorConfig, root string) (construct.Constructor, error) {
	switch cfg.Type {
	case "", config.TypeBuiltin:
		builtin := construct.NewBuiltin()
		if cfg.MaxQubits > 0 {
			builtin.MaxQubits = cfg.MaxQubits
		}
		return builtin, nil
	case config.TypeCommand:
		return &construct.Command{Argv: append([]string(nil), cfg.Command...), Dir: root}, nil
	default:
		return nil, fmt.Errorf("unknown constructor type %q", cfg.Type)
	}
}

// resolveDSN rewrites a relative database path in dsn against root.
func resolveDSN(root, dsn string) (string, error) {
	driver, path, err := store.ParseDSN(dsn)
	if err != nil {
		return "", err
	}
	if path == "" || path == ":memory:" {
		return driver + "://" + path, nil
	}
	return driver + "://" + config.ResolvePath(root, path), nil
}
