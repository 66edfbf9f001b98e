package generator

import (
	"context"
	"errors"

	"qfrbench/internal/circuit"
)

// Generator produces a benchmark circuit at an abstraction level and width.
type Generator interface {
	Generate(ctx context.Context, name, level string, qubits int) (*circuit.Circuit, error)
}

// Func adapts a function to the Generator interface.
type Func func(ctx context.Context, name, level string, qubits int) (*circuit.Circuit, error)

// Generate calls f.
func (f Func) Generate(ctx context.Context, name, level string, qubits int) (*circuit.Circuit, error) {
	return f(ctx, name, level, qubits)
}

var (
	// ErrUnknownBenchmark is returned for benchmark names a generator does not provide.
	ErrUnknownBenchmark = errors.New("unknown benchmark")
	// ErrUnsupportedLevel is returned for abstraction levels a generator does not provide.
	ErrUnsupportedLevel = errors.New("unsupported abstraction level")
	// ErrTooFewQubits is returned when a benchmark cannot be built at the requested width.
	ErrTooFewQubits = errors.New("too few qubits")
)

// DefaultLevel is the abstraction level used when none is configured.
const DefaultLevel = "alg"

// ScalableBenchmarks are the benchmark families that can be generated at any width.
var ScalableBenchmarks = []string{
	"ae", "dj", "grover-noancilla", "grover-v-chain", "ghz",
	"graphstate", "portfolioqaoa", "portfoliovqe", "qaoa", "qft",
	"qftentangled", "qgan", "qpeexact", "qpeinexact", "qwalk-noancilla",
	"qwalk-v-chain", "realamprandom", "su2random", "twolocalrandom",
	"vqe", "wstate",
}
