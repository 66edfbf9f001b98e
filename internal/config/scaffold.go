package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// defaultConfig reproduces the reference sweep: Grover with a v-chain oracle
// over 3 to 6 qubits, built regular and with transpose-aware reduction.
const defaultConfig = `version: 1
benchmarks:
  - grover-v-chain
qubits:
  start: 3
  stop: 7
abstraction_level: alg
params:
  - label: regular
    store_dd: false
    store_matrix: true
    reduce_t: false
  - label: reduceT
    store_dd: false
    store_matrix: true
    reduce_t: true
check_equality: true
verbose: false

output:
  dir: %q
  # database: "duckdb://.qfrbench/results/qfrbench.duckdb"
  metrics_file: false
  report_html: true

# generator:
#   type: command
#   command: ["python3", "-m", "qfrbench_mqt_bridge"]
generator:
  type: builtin

constructor:
  type: builtin
  max_qubits: 10
`

// Scaffold writes the default config to specPath with results going to
// outputDir. It never overwrites.
func Scaffold(specPath, outputDir string) error {
	if specPath == "" {
		return fmt.Errorf("spec path is required")
	}
	if info, err := os.Stat(specPath); err == nil {
		if info.IsDir() {
			return fmt.Errorf("spec path %q is a directory", specPath)
		}
		return fmt.Errorf("spec file already exists at %q", specPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat spec file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(specPath), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if strings.TrimSpace(outputDir) == "" {
		outputDir = DefaultOutputDir
	}
	body := fmt.Sprintf(defaultConfig, filepath.ToSlash(outputDir))
	if err := os.WriteFile(specPath, []byte(body), 0o644); err != nil {
		return fmt.Errorf("write spec file: %w", err)
	}
	return nil
}
