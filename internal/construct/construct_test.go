package construct

import (
	"context"
	"errors"
	"math"
	"os/exec"
	"testing"

	"qfrbench/internal/circuit"
)

func nodeCount(t *testing.T, res Result) int {
	t.Helper()
	v, ok := res.Statistics.Get("final_nodecount")
	if !ok {
		t.Fatalf("final_nodecount missing from %v", res.Statistics.Keys())
	}
	return v.(int)
}

func TestBuiltinIdentityNodeCount(t *testing.T) {
	c := circuit.New("empty", 4)
	res, err := NewBuiltin().Construct(context.Background(), c, Options{StoreMatrix: true})
	if err != nil {
		t.Fatalf("construct: %v", err)
	}
	if got := nodeCount(t, res); got != 5 {
		t.Fatalf("expected 5 nodes for 4-qubit identity, got %d", got)
	}
	if !res.Matrix().Equal(Identity(16), DefaultTolerance) {
		t.Fatalf("expected identity matrix")
	}
}

func TestBuiltinBellMatrix(t *testing.T) {
	c := circuit.New("bell", 2)
	c.Op("h", 0)
	c.Controlled("cx", []int{0}, 1)

	res, err := NewBuiltin().Construct(context.Background(), c, Options{StoreMatrix: true, StoreDD: true})
	if err != nil {
		t.Fatalf("construct: %v", err)
	}
	s := complex(1/math.Sqrt2, 0)
	// Little-endian: qubit 0 is the least significant bit.
	want := Matrix{
		{s, s, 0, 0},
		{0, 0, s, -s},
		{0, 0, s, s},
		{s, -s, 0, 0},
	}
	if !res.Matrix().Equal(want, DefaultTolerance) {
		t.Fatalf("unexpected bell unitary: %v", res.Matrix())
	}
	if res.Functionality.DD == "" {
		t.Fatalf("expected dd dump when StoreDD is set")
	}
	keys := res.Circuit.Keys()
	if len(keys) < 3 || keys[0] != "name" || keys[1] != "n_qubits" || keys[2] != "n_gates" {
		t.Fatalf("unexpected circuit keys %v", keys)
	}
}

func TestBuiltinReduceTPreservesFunctionality(t *testing.T) {
	c := circuit.New("mix", 3)
	c.Op("h", 0)
	c.Op("t", 1)
	c.Controlled("cp", []int{0}, 2, math.Pi/3)
	c.Op("ry", 2, 0.7)
	c.Swap(0, 2)
	c.Controlled("ccx", []int{0, 1}, 2)
	c.Append(circuit.Gate{Name: "rzz", Targets: []int{1, 2}, Params: []float64{0.4}})
	c.Append(circuit.Gate{Name: "rxx", Targets: []int{0, 1}, Params: []float64{1.1}})
	c.Op("sx", 1)
	c.Op("u", 0, 0.1, 0.2, 0.3)

	b := NewBuiltin()
	regular, err := b.Construct(context.Background(), c, Options{StoreMatrix: true})
	if err != nil {
		t.Fatalf("regular: %v", err)
	}
	reduced, err := b.Construct(context.Background(), c, Options{StoreMatrix: true, ReduceT: true})
	if err != nil {
		t.Fatalf("reduceT: %v", err)
	}
	if !regular.Matrix().Equal(reduced.Matrix(), 1e-8) {
		t.Fatalf("reduceT changed functionality")
	}
	if nodeCount(t, reduced) > nodeCount(t, regular) {
		t.Fatalf("reduceT increased node count: %d > %d", nodeCount(t, reduced), nodeCount(t, regular))
	}
	if unitaryError(regular.Matrix()) > 1e-9 {
		t.Fatalf("expected unitary matrix")
	}
}

func TestDiagramSharesTransposedNodes(t *testing.T) {
	m := Matrix{
		{1, 2, 1, 3},
		{3, 4, 2, 4},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}
	regular := newDiagram(false)
	root := regular.build(m)
	if regular.NodeCount() != 4 {
		t.Fatalf("expected 4 nodes without sharing, got %d", regular.NodeCount())
	}
	if !regular.expand(root, 4).Equal(m, 1e-12) {
		t.Fatalf("regular expansion mismatch")
	}

	shared := newDiagram(true)
	root = shared.build(m)
	if shared.NodeCount() != 3 {
		t.Fatalf("expected 3 nodes with transpose sharing, got %d", shared.NodeCount())
	}
	if !shared.expand(root, 4).Equal(m, 1e-12) {
		t.Fatalf("shared expansion mismatch: %v", shared.expand(root, 4))
	}
}

func TestBuiltinErrors(t *testing.T) {
	b := &Builtin{MaxQubits: 2}
	wide := circuit.New("wide", 3)
	if _, err := b.Construct(context.Background(), wide, Options{}); !errors.Is(err, ErrCircuitTooLarge) {
		t.Fatalf("expected ErrCircuitTooLarge, got %v", err)
	}

	measured := circuit.New("m", 1)
	measured.Op("h", 0)
	measured.Measure(0, 0)
	if _, err := b.Construct(context.Background(), measured, Options{}); !errors.Is(err, ErrNonUnitary) {
		t.Fatalf("expected ErrNonUnitary, got %v", err)
	}

	odd := circuit.New("odd", 1)
	odd.Op("frobnicate", 0)
	if _, err := b.Construct(context.Background(), odd, Options{}); !errors.Is(err, ErrUnsupportedGate) {
		t.Fatalf("expected ErrUnsupportedGate, got %v", err)
	}
}

func TestMatrixEqual(t *testing.T) {
	a := Matrix{{1, 0}, {0, 1i}}
	if !a.Equal(Matrix{{1, 0}, {0, 1i + 1e-12}}, DefaultTolerance) {
		t.Fatalf("expected near-equal matrices to be equal")
	}
	if a.Equal(Matrix{{1, 0}, {0, -1i}}, DefaultTolerance) {
		t.Fatalf("expected different matrices to differ")
	}
	if a.Equal(Identity(4), DefaultTolerance) {
		t.Fatalf("expected shape mismatch to differ")
	}
}

func TestDecodeResult(t *testing.T) {
	payload := []byte(`{
  "circuit": {"name": "ghz", "n_qubits": 3, "n_gates": 3},
  "statistics": {"construction_time": 0.25, "final_nodecount": 7},
  "functionality": {"matrix": [[[1, 0], 0], [0, [0, 1]]]}
}`)
	res, err := DecodeResult(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if keys := res.Statistics.Keys(); keys[0] != "construction_time" || keys[1] != "final_nodecount" {
		t.Fatalf("unexpected statistics order %v", keys)
	}
	if !res.Matrix().Equal(Matrix{{1, 0}, {0, 1i}}, DefaultTolerance) {
		t.Fatalf("unexpected matrix %v", res.Matrix())
	}

	if _, err := DecodeResult([]byte(`{"circuit": {}}`)); err == nil {
		t.Fatalf("expected error when statistics are missing")
	}
}

func TestCommandConstructor(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	cmd := &Command{Argv: []string{"sh", "-c", `cat >/dev/null; echo '{"circuit":{"name":"x"},"statistics":{"final_nodecount":2}}'`}}
	res, err := cmd.Construct(context.Background(), circuit.New("x", 1), Options{})
	if err != nil {
		t.Fatalf("construct: %v", err)
	}
	if v, _ := res.Statistics.Get("final_nodecount"); v != int64(2) {
		t.Fatalf("expected final_nodecount 2, got %v", v)
	}

	failing := &Command{Argv: []string{"sh", "-c", "echo boom >&2; exit 3"}}
	if _, err := failing.Construct(context.Background(), circuit.New("x", 1), Options{}); err == nil {
		t.Fatalf("expected command failure")
	}
}

// unitaryError returns max |(U U†) - I| over all elements.
func unitaryError(u Matrix) float64 {
	worst := 0.0
	for i := range u {
		for j := range u {
			var sum complex128
			for k := range u {
				sum += u[i][k] * complexConj(u[j][k])
			}
			if i == j {
				sum -= 1
			}
			worst = math.Max(worst, math.Hypot(real(sum), imag(sum)))
		}
	}
	return worst
}

func complexConj(v complex128) complex128 {
	return complex(real(v), -imag(v))
}
