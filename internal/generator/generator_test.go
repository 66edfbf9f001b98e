package generator

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

func TestBuiltinGeneratesAllNames(t *testing.T) {
	g := &Builtin{Seed: 7}
	for _, name := range g.Names() {
		for _, n := range []int{2, 3, 5} {
			c, err := g.Generate(context.Background(), name, "alg", n)
			if err != nil {
				t.Fatalf("%s/%d: %v", name, n, err)
			}
			if c.NumQubits != n {
				t.Fatalf("%s/%d: expected %d qubits, got %d", name, n, n, c.NumQubits)
			}
			if c.Name != name {
				t.Fatalf("%s/%d: unexpected name %q", name, n, c.Name)
			}
			if c.RemoveFinalMeasurements() == 0 {
				t.Fatalf("%s/%d: expected final measurements to strip", name, n)
			}
			for _, gate := range c.Gates {
				if gate.IsMeasurement() {
					t.Fatalf("%s/%d: measurement left after stripping", name, n)
				}
			}
		}
	}
}

func TestBuiltinIsDeterministic(t *testing.T) {
	a, err := (&Builtin{Seed: 1}).Generate(context.Background(), "realamprandom", "alg", 4)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	b, err := (&Builtin{Seed: 1}).Generate(context.Background(), "realamprandom", "alg", 4)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if a.QASM() != b.QASM() {
		t.Fatalf("expected identical circuits for identical seeds")
	}
}

func TestBuiltinErrors(t *testing.T) {
	g := &Builtin{}
	if _, err := g.Generate(context.Background(), "nope", "alg", 3); !errors.Is(err, ErrUnknownBenchmark) {
		t.Fatalf("expected ErrUnknownBenchmark, got %v", err)
	}
	if _, err := g.Generate(context.Background(), "ghz", "mapped", 3); !errors.Is(err, ErrUnsupportedLevel) {
		t.Fatalf("expected ErrUnsupportedLevel, got %v", err)
	}
	if _, err := g.Generate(context.Background(), "ghz", "alg", 1); !errors.Is(err, ErrTooFewQubits) {
		t.Fatalf("expected ErrTooFewQubits, got %v", err)
	}
}

func TestDirectoryGenerator(t *testing.T) {
	dir := t.TempDir()
	qasm := "OPENQASM 2.0;\ninclude \"qelib1.inc\";\nqreg q[2];\ncreg c[2];\nh q[0];\ncx q[0],q[1];\nmeasure q -> c;\n"
	if err := os.WriteFile(filepath.Join(dir, "ghz_alg_2.qasm"), []byte(qasm), 0o644); err != nil {
		t.Fatalf("write qasm: %v", err)
	}
	g := &Directory{Root: dir}

	c, err := g.Generate(context.Background(), "ghz", "", 2)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(c.Gates) != 4 {
		t.Fatalf("expected 4 gates, got %d", len(c.Gates))
	}
	if _, err := g.Generate(context.Background(), "ghz", "alg", 3); !errors.Is(err, ErrUnknownBenchmark) {
		t.Fatalf("expected ErrUnknownBenchmark for missing file, got %v", err)
	}
}

func TestCommandGenerator(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	script := `printf 'OPENQASM 2.0;\nqreg q[%s];\nh q[0];\n' "$3"`
	g := &Command{Argv: []string{"sh", "-c", script, "gen"}}
	c, err := g.Generate(context.Background(), "ghz", "alg", 3)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if c.NumQubits != 3 {
		t.Fatalf("expected 3 qubits, got %d", c.NumQubits)
	}

	failing := &Command{Argv: []string{"sh", "-c", "exit 1"}}
	if _, err := failing.Generate(context.Background(), "ghz", "alg", 3); err == nil {
		t.Fatalf("expected failure")
	}
}
