package cucumber

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"qfrbench/internal/config"
)

// aProjectWithValidConfig creates a temp project and switches into it so the
// CLI finds the config by walking up from the working directory.
func (s *featureState) aProjectWithValidConfig() error {
	if s.projectDir != "" {
		return nil
	}
	dir, err := os.MkdirTemp("", "qfrbench-feature-*")
	if err != nil {
		return fmt.Errorf("create temp project: %w", err)
	}
	s.projectDir = dir
	s.configPath = config.ConfigPath(dir)
	if err := os.MkdirAll(filepath.Dir(s.configPath), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := s.writeConfig(s.validConfigYAML()); err != nil {
		return err
	}
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working dir: %w", err)
	}
	s.previousWD = wd
	if err := os.Chdir(dir); err != nil {
		return fmt.Errorf("chdir: %w", err)
	}
	return nil
}

func (s *featureState) theSweepCoversBenchmarks(list string) error {
	s.benchmarks = nil
	for _, name := range strings.Split(list, ",") {
		s.benchmarks = append(s.benchmarks, strings.TrimSpace(name))
	}
	return s.rewriteConfig()
}

func (s *featureState) theQubitRangeIs(start, stop string) error {
	first, err := strconv.Atoi(start)
	if err != nil {
		return err
	}
	last, err := strconv.Atoi(stop)
	if err != nil {
		return err
	}
	s.qubits = [2]int{first, last}
	return s.rewriteConfig()
}

// theConfigIsInvalid replaces the config with an invalid configuration.
func (s *featureState) theConfigIsInvalid() error {
	if err := s.aProjectWithValidConfig(); err != nil {
		return err
	}
	return s.writeConfig("version: 2\nbenchmarks: [ghz]\nqubits: {start: 3, stop: 5}\nparams: [{label: regular}]\n")
}

func (s *featureState) rewriteConfig() error {
	if err := s.aProjectWithValidConfig(); err != nil {
		return err
	}
	return s.writeConfig(s.validConfigYAML())
}

// writeConfig persists configuration content to the project config path.
func (s *featureState) writeConfig(contents string) error {
	if s.configPath == "" {
		return fmt.Errorf("config path is not set")
	}
	if err := os.WriteFile(s.configPath, []byte(contents), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (s *featureState) validConfigYAML() string {
	return fmt.Sprintf(`version: 1
benchmarks: [%s]
qubits: {start: %d, stop: %d}
params:
  - label: regular
    store_matrix: true
  - label: reduceT
    store_matrix: true
    reduce_t: true
check_equality: true
output:
  dir: results
`, strings.Join(s.benchmarks, ", "), s.qubits[0], s.qubits[1])
}

func (s *featureState) outputDir() string {
	return filepath.Join(s.projectDir, "results")
}
