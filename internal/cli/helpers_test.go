package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

const sweepConfig = `version: 1
benchmarks: [ghz, qft]
qubits: {start: 2, stop: 4}
params:
  - label: regular
    store_matrix: true
  - label: reduceT
    store_matrix: true
    reduce_t: true
check_equality: true
output:
  dir: out
  database: "sqlite://out/runs.db"
  metrics_file: true
  report_html: true
`

// writeProject creates root/.qfrbench/config.yml and returns its path.
func writeProject(t *testing.T, body string) string {
	t.Helper()
	root := t.TempDir()
	path := filepath.Join(root, ".qfrbench", "config.yml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create config dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// plainTerminal forces non-TTY output for the duration of a test.
func plainTerminal(t *testing.T) {
	t.Helper()
	original := isTerminal
	isTerminal = func(io.Writer) bool { return false }
	t.Cleanup(func() { isTerminal = original })
}

func globOne(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(pattern)
	if err != nil {
		t.Fatalf("glob %s: %v", pattern, err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected one match for %s, got %v", pattern, matches)
	}
	return matches[0]
}
