package spec

import "testing"

// TestParseConfigValid verifies valid config parsing succeeds.
func TestParseConfigValid(t *testing.T) {
	data := []byte(`version: 1
benchmarks: [ghz, qft]
qubits:
  start: 3
  stop: 7
params:
  - label: regular
    store_matrix: true
  - label: reduceT
    reduce_t: true
output:
  dir: "./out"
  json: false
generator:
  type: directory
  dir: circuits
`)
	cfg, err := ParseConfig(data)
	if err != nil {
		t.Fatalf("expected parse to succeed, got %v", err)
	}
	if len(cfg.Benchmarks) != 2 || cfg.Qubits.Stop != 7 || !cfg.Params[1].ReduceT {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Output.WriteJSON() {
		t.Fatalf("expected json output disabled")
	}
	if cfg.Generator.Type != "directory" || cfg.Generator.Dir != "circuits" {
		t.Fatalf("unexpected generator %+v", cfg.Generator)
	}
}

// TestParseConfigUnknownField verifies unknown fields are rejected.
func TestParseConfigUnknownField(t *testing.T) {
	data := []byte(`version: 1
benchmarks: [ghz]
unknown: true
`)
	if _, err := ParseConfig(data); err == nil {
		t.Fatalf("expected parse error for unknown field")
	}
}

// TestParseConfigRejectsMultipleDocs verifies multiple YAML docs are rejected.
func TestParseConfigRejectsMultipleDocs(t *testing.T) {
	data := []byte("version: 1\n---\nversion: 1\n")
	if _, err := ParseConfig(data); err == nil {
		t.Fatalf("expected parse error for multiple documents")
	}
}

func TestParseConfigTOML(t *testing.T) {
	data := []byte(`version = 1
benchmarks = ["ghz"]
check_equality = true

[qubits]
start = 2
stop = 4

[[params]]
label = "regular"
store_matrix = true

[constructor]
type = "command"
command = ["python3", "qfr.py"]
`)
	cfg, err := ParseConfigTOML(data)
	if err != nil {
		t.Fatalf("expected parse to succeed, got %v", err)
	}
	if !cfg.CheckEquality || cfg.Qubits.Start != 2 || cfg.Params[0].Label != "regular" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if len(cfg.Constructor.Command) != 2 || !cfg.Output.WriteJSON() {
		t.Fatalf("unexpected constructor %+v", cfg.Constructor)
	}
}

func TestParseConfigTOMLUnknownField(t *testing.T) {
	data := []byte("version = 1\n[qubits]\nstart = 2\nwidth = 3\n")
	if _, err := ParseConfigTOML(data); err == nil {
		t.Fatalf("expected parse error for unknown field")
	}
}
