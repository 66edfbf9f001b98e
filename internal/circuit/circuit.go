package circuit

import "slices"

// Gate is a single operation placed on the circuit.
type Gate struct {
	Name     string
	Targets  []int
	Controls []int
	Params   []float64
	Clbits   []int
}

// Qubits returns controls followed by targets.
func (g Gate) Qubits() []int {
	out := make([]int, 0, len(g.Controls)+len(g.Targets))
	out = append(out, g.Controls...)
	return append(out, g.Targets...)
}

// IsMeasurement reports whether the gate is a measurement.
func (g Gate) IsMeasurement() bool {
	return g.Name == "measure"
}

// IsBarrier reports whether the gate is a barrier.
func (g Gate) IsBarrier() bool {
	return g.Name == "barrier"
}

// IsDirective reports whether the gate has no effect on the quantum state.
func (g Gate) IsDirective() bool {
	return g.IsBarrier() || g.IsMeasurement()
}

// Circuit is an ordered list of gates over a fixed qubit register.
type Circuit struct {
	Name      string
	NumQubits int
	NumClbits int
	Gates     []Gate
}

// New returns an empty circuit with the given name and width.
func New(name string, qubits int) *Circuit {
	return &Circuit{Name: name, NumQubits: qubits}
}

// Clone returns a deep copy of the circuit.
func (c *Circuit) Clone() *Circuit {
	out := &Circuit{Name: c.Name, NumQubits: c.NumQubits, NumClbits: c.NumClbits}
	out.Gates = make([]Gate, len(c.Gates))
	for i, g := range c.Gates {
		out.Gates[i] = Gate{
			Name:     g.Name,
			Targets:  slices.Clone(g.Targets),
			Controls: slices.Clone(g.Controls),
			Params:   slices.Clone(g.Params),
			Clbits:   slices.Clone(g.Clbits),
		}
	}
	return out
}

// Append adds a gate to the end of the circuit.
func (c *Circuit) Append(g Gate) {
	c.Gates = append(c.Gates, g)
}

// Op appends an uncontrolled gate.
func (c *Circuit) Op(name string, target int, params ...float64) {
	c.Append(Gate{Name: name, Targets: []int{target}, Params: params})
}

// Controlled appends a gate with the given controls, e.g. Controlled("cx", []int{0}, 1).
func (c *Circuit) Controlled(name string, controls []int, target int, params ...float64) {
	c.Append(Gate{Name: name, Targets: []int{target}, Controls: append([]int(nil), controls...), Params: params})
}

// Swap appends a swap between two qubits.
func (c *Circuit) Swap(a, b int) {
	c.Append(Gate{Name: "swap", Targets: []int{a, b}})
}

// Barrier appends a barrier across the given qubits, or all qubits when none are given.
func (c *Circuit) Barrier(qubits ...int) {
	if len(qubits) == 0 {
		qubits = make([]int, c.NumQubits)
		for i := range qubits {
			qubits[i] = i
		}
	}
	c.Append(Gate{Name: "barrier", Targets: qubits})
}

// Measure appends a measurement of qubit into clbit.
func (c *Circuit) Measure(qubit, clbit int) {
	c.Append(Gate{Name: "measure", Targets: []int{qubit}, Clbits: []int{clbit}})
	if clbit >= c.NumClbits {
		c.NumClbits = clbit + 1
	}
}

// MeasureAll appends a barrier followed by a measurement of every qubit.
func (c *Circuit) MeasureAll() {
	c.Barrier()
	for q := 0; q < c.NumQubits; q++ {
		c.Measure(q, q)
	}
}

// CountOps returns the number of gates that are not barriers.
func (c *Circuit) CountOps() int {
	n := 0
	for _, g := range c.Gates {
		if !g.IsBarrier() {
			n++
		}
	}
	return n
}

// Depth returns the number of layers when gates are scheduled as early as possible.
func (c *Circuit) Depth() int {
	level := make([]int, c.NumQubits)
	depth := 0
	for _, g := range c.Gates {
		if g.IsBarrier() {
			continue
		}
		start := 0
		for _, q := range g.Qubits() {
			if q >= 0 && q < len(level) && level[q] > start {
				start = level[q]
			}
		}
		for _, q := range g.Qubits() {
			if q >= 0 && q < len(level) {
				level[q] = start + 1
			}
		}
		depth = max(depth, start+1)
	}
	return depth
}

// Metadata describes a circuit in the terms reported by construction routines.
type Metadata struct {
	Name      string
	NumQubits int
	NumGates  int
	Depth     int
}

// Metadata summarises the circuit.
func (c *Circuit) Metadata() Metadata {
	return Metadata{
		Name:      c.Name,
		NumQubits: c.NumQubits,
		NumGates:  c.CountOps(),
		Depth:     c.Depth(),
	}
}

// RemoveFinalMeasurements drops measurements that are not followed by any
// other operation on the same qubit, along with barriers that only precede
// such measurements. The classical register is dropped when no measurement
// remains. It returns the number of removed gates.
func (c *Circuit) RemoveFinalMeasurements() int {
	busy := make(map[int]bool, c.NumQubits)
	kept := make([]Gate, 0, len(c.Gates))
	removed := 0
	for i := len(c.Gates) - 1; i >= 0; i-- {
		g := c.Gates[i]
		switch {
		case g.IsMeasurement() && !anyBusy(busy, g.Targets):
			removed++
			continue
		case g.IsBarrier() && !anyBusy(busy, g.Targets):
			removed++
			continue
		}
		for _, q := range g.Qubits() {
			busy[q] = true
		}
		kept = append(kept, g)
	}
	slices.Reverse(kept)
	c.Gates = kept

	if removed > 0 && !slices.ContainsFunc(c.Gates, Gate.IsMeasurement) {
		c.NumClbits = 0
	}
	return removed
}

func anyBusy(busy map[int]bool, qubits []int) bool {
	for _, q := range qubits {
		if busy[q] {
			return true
		}
	}
	return false
}
