package generator

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"sort"

	"qfrbench/internal/circuit"
)

type buildFunc func(n int, rng *rand.Rand) (*circuit.Circuit, error)

// Builtin generates a subset of the scalable benchmarks natively. Random
// benchmarks are seeded from Seed and the width so results are reproducible.
type Builtin struct {
	Seed uint64
}

var builtinBenchmarks = map[string]buildFunc{
	"ghz":              ghz,
	"dj":               dj,
	"qft":              qft,
	"qftentangled":     qftEntangled,
	"graphstate":       graphState,
	"grover-noancilla": groverNoAncilla,
	"grover-v-chain":   groverVChain,
	"wstate":           wState,
	"qpeexact":         qpeExact,
	"realamprandom":    realAmpRandom,
	"su2random":        su2Random,
	"twolocalrandom":   twoLocalRandom,
}

var builtinLevels = []string{"alg", "indep"}

// Names returns the benchmark names the builtin generator supports, sorted.
func (b *Builtin) Names() []string {
	names := make([]string, 0, len(builtinBenchmarks))
	for name := range builtinBenchmarks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Generate implements Generator.
func (b *Builtin) Generate(ctx context.Context, name, level string, qubits int) (*circuit.Circuit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	build, ok := builtinBenchmarks[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBenchmark, name)
	}
	if level == "" {
		level = DefaultLevel
	}
	if !slices.Contains(builtinLevels, level) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLevel, level)
	}
	if qubits < 2 {
		return nil, fmt.Errorf("%w: %s needs at least 2, got %d", ErrTooFewQubits, name, qubits)
	}
	rng := rand.New(rand.NewPCG(b.Seed, uint64(qubits)))
	c, err := build(qubits, rng)
	if err != nil {
		return nil, err
	}
	c.Name = name
	return c, nil
}

func ghz(n int, _ *rand.Rand) (*circuit.Circuit, error) {
	c := circuit.New("ghz", n)
	c.Op("h", 0)
	for q := 0; q+1 < n; q++ {
		c.Controlled("cx", []int{q}, q+1)
	}
	c.MeasureAll()
	return c, nil
}

// dj builds Deutsch-Jozsa with a random balanced oracle over n-1 inputs.
func dj(n int, rng *rand.Rand) (*circuit.Circuit, error) {
	c := circuit.New("dj", n)
	inputs := n - 1
	ancilla := n - 1
	c.Op("x", ancilla)
	for q := 0; q < n; q++ {
		c.Op("h", q)
	}
	mask := make([]bool, inputs)
	for q := range mask {
		mask[q] = rng.IntN(2) == 1
	}
	c.Barrier()
	for q := 0; q < inputs; q++ {
		if mask[q] {
			c.Op("x", q)
		}
	}
	for q := 0; q < inputs; q++ {
		c.Controlled("cx", []int{q}, ancilla)
	}
	for q := 0; q < inputs; q++ {
		if mask[q] {
			c.Op("x", q)
		}
	}
	c.Barrier()
	for q := 0; q < inputs; q++ {
		c.Op("h", q)
	}
	c.Barrier()
	for q := 0; q < inputs; q++ {
		c.Measure(q, q)
	}
	return c, nil
}

func appendQFT(c *circuit.Circuit, qubits []int) {
	n := len(qubits)
	for i := n - 1; i >= 0; i-- {
		c.Op("h", qubits[i])
		for j := i - 1; j >= 0; j-- {
			c.Controlled("cp", []int{qubits[j]}, qubits[i], math.Pi/float64(int(1)<<(i-j)))
		}
	}
	for i := 0; i < n/2; i++ {
		c.Swap(qubits[i], qubits[n-1-i])
	}
}

func appendInverseQFT(c *circuit.Circuit, qubits []int) {
	n := len(qubits)
	for i := 0; i < n/2; i++ {
		c.Swap(qubits[i], qubits[n-1-i])
	}
	for i := 0; i < n; i++ {
		for j := 0; j < i; j++ {
			c.Controlled("cp", []int{qubits[j]}, qubits[i], -math.Pi/float64(int(1)<<(i-j)))
		}
		c.Op("h", qubits[i])
	}
}

func register(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func qft(n int, _ *rand.Rand) (*circuit.Circuit, error) {
	c := circuit.New("qft", n)
	appendQFT(c, register(n))
	c.MeasureAll()
	return c, nil
}

func qftEntangled(n int, _ *rand.Rand) (*circuit.Circuit, error) {
	c := circuit.New("qftentangled", n)
	c.Op("h", n-1)
	for q := n - 1; q > 0; q-- {
		c.Controlled("cx", []int{q}, q-1)
	}
	appendQFT(c, register(n))
	c.MeasureAll()
	return c, nil
}

// graphState prepares the graph state of a random 2-regular graph (a cycle
// through a random permutation of the qubits).
func graphState(n int, rng *rand.Rand) (*circuit.Circuit, error) {
	c := circuit.New("graphstate", n)
	order := rng.Perm(n)
	for q := 0; q < n; q++ {
		c.Op("h", q)
	}
	edges := n
	if n == 2 {
		edges = 1
	}
	for i := 0; i < edges; i++ {
		c.Controlled("cz", []int{order[i]}, order[(i+1)%n])
	}
	c.MeasureAll()
	return c, nil
}

func wState(n int, _ *rand.Rand) (*circuit.Circuit, error) {
	c := circuit.New("wstate", n)
	c.Op("x", n-1)
	for m := 1; m < n; m++ {
		control, target := n-m, n-m-1
		theta := math.Acos(math.Sqrt(1 / float64(n-m+1)))
		c.Op("ry", target, -theta)
		c.Controlled("cz", []int{control}, target)
		c.Op("ry", target, theta)
	}
	for k := n - 1; k > 0; k-- {
		c.Controlled("cx", []int{k - 1}, k)
	}
	c.MeasureAll()
	return c, nil
}

// qpeExact estimates a random phase that is exactly representable in n-1 bits.
func qpeExact(n int, rng *rand.Rand) (*circuit.Circuit, error) {
	counting := n - 1
	c := circuit.New("qpeexact", n)
	target := counting
	numerator := rng.IntN(1<<counting-1) + 1
	theta := float64(numerator) / float64(int(1)<<counting)

	c.Op("x", target)
	for q := 0; q < counting; q++ {
		c.Op("h", q)
	}
	for q := 0; q < counting; q++ {
		angle := 2 * math.Pi * theta * float64(int(1)<<q)
		c.Controlled("cp", []int{q}, target, math.Remainder(angle, 2*math.Pi))
	}
	appendInverseQFT(c, register(counting))
	c.Barrier()
	for q := 0; q < counting; q++ {
		c.Measure(q, q)
	}
	return c, nil
}

// twoLocal appends reps layers of rotations followed by full entanglement,
// then a final rotation layer.
func twoLocal(c *circuit.Circuit, rng *rand.Rand, rotations []string, entangler string, reps int) {
	n := c.NumQubits
	rotate := func() {
		for _, gate := range rotations {
			for q := 0; q < n; q++ {
				c.Op(gate, q, rng.Float64()*2*math.Pi)
			}
		}
	}
	for r := 0; r < reps; r++ {
		rotate()
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				c.Controlled(entangler, []int{i}, j)
			}
		}
	}
	rotate()
}

func realAmpRandom(n int, rng *rand.Rand) (*circuit.Circuit, error) {
	c := circuit.New("realamprandom", n)
	twoLocal(c, rng, []string{"ry"}, "cx", 3)
	c.MeasureAll()
	return c, nil
}

func su2Random(n int, rng *rand.Rand) (*circuit.Circuit, error) {
	c := circuit.New("su2random", n)
	twoLocal(c, rng, []string{"ry", "rz"}, "cx", 3)
	c.MeasureAll()
	return c, nil
}

func twoLocalRandom(n int, rng *rand.Rand) (*circuit.Circuit, error) {
	c := circuit.New("twolocalrandom", n)
	twoLocal(c, rng, []string{"ry"}, "cz", 3)
	c.MeasureAll()
	return c, nil
}
