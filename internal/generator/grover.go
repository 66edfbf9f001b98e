package generator

import (
	"math"
	"math/rand/v2"

	"qfrbench/internal/circuit"
)

// groverNoAncilla searches for |1...1> over n-1 qubits using a phase oracle on
// a flag qubit. Multi-controlled gates are decomposed without ancillas.
func groverNoAncilla(n int, _ *rand.Rand) (*circuit.Circuit, error) {
	search := register(n - 1)
	flag := n - 1
	c := circuit.New("grover-noancilla", n)
	mcx := func(controls []int, target int) { appendMCX(c, controls, target) }
	appendGrover(c, search, flag, mcx)
	c.MeasureAll()
	return c, nil
}

// groverVChain is groverNoAncilla with multi-controlled X gates built from a
// Toffoli ladder over ancilla qubits. The search register is the largest that
// fits in n qubits together with the flag and the ladder's ancillas; leftover
// qubits stay idle.
func groverVChain(n int, _ *rand.Rand) (*circuit.Circuit, error) {
	m := 1
	for m+1 < n && vChainWidth(m+1) <= n {
		m++
	}
	search := register(m)
	flag := m
	ancillas := make([]int, 0, max(0, m-2))
	for q := m + 1; q < m+1+max(0, m-2); q++ {
		ancillas = append(ancillas, q)
	}
	c := circuit.New("grover-v-chain", n)
	mcx := func(controls []int, target int) { appendVChainMCX(c, controls, target, ancillas) }
	appendGrover(c, search, flag, mcx)
	c.MeasureAll()
	return c, nil
}

func vChainWidth(m int) int {
	return m + 1 + max(0, m-2)
}

// appendGrover prepares the uniform superposition and applies the optimal
// number of oracle and diffusion rounds.
func appendGrover(c *circuit.Circuit, search []int, flag int, mcx func(controls []int, target int)) {
	m := len(search)
	for _, q := range search {
		c.Op("h", q)
	}
	c.Op("x", flag)
	iterations := int(math.Pi / 4 * math.Sqrt(float64(int(1)<<m)))
	for range iterations {
		// oracle: phase flip on |1...1> via the flag
		c.Op("h", flag)
		mcx(search, flag)
		c.Op("h", flag)

		// diffusion about the uniform superposition
		for _, q := range search {
			c.Op("h", q)
			c.Op("x", q)
		}
		last := search[m-1]
		if m == 1 {
			c.Op("z", last)
		} else {
			c.Op("h", last)
			mcx(search[:m-1], last)
			c.Op("h", last)
		}
		for _, q := range search {
			c.Op("x", q)
			c.Op("h", q)
		}
	}
}

// appendMCX appends a multi-controlled X without ancillas.
func appendMCX(c *circuit.Circuit, controls []int, target int) {
	switch len(controls) {
	case 1:
		c.Controlled("cx", controls, target)
	case 2:
		c.Controlled("ccx", controls, target)
	default:
		c.Op("h", target)
		appendMCP(c, math.Pi, controls, target)
		c.Op("h", target)
	}
}

// appendMCP appends a multi-controlled phase using the recursive
// square-root decomposition.
func appendMCP(c *circuit.Circuit, lambda float64, controls []int, target int) {
	k := len(controls)
	if k == 1 {
		c.Controlled("cp", controls, target, lambda)
		return
	}
	last, rest := controls[k-1], controls[:k-1]
	c.Controlled("cp", []int{last}, target, lambda/2)
	appendMCX(c, rest, last)
	c.Controlled("cp", []int{last}, target, -lambda/2)
	appendMCX(c, rest, last)
	appendMCP(c, lambda/2, rest, target)
}

// appendVChainMCX appends a multi-controlled X as a Toffoli ladder. It needs
// len(controls)-2 clean ancillas and returns them to |0>.
func appendVChainMCX(c *circuit.Circuit, controls []int, target int, ancillas []int) {
	k := len(controls)
	if k <= 2 || len(ancillas) < k-2 {
		appendMCX(c, controls, target)
		return
	}
	var ladder []circuit.Gate
	ladder = append(ladder, toffoli(controls[0], controls[1], ancillas[0]))
	for i := 2; i < k-1; i++ {
		ladder = append(ladder, toffoli(controls[i], ancillas[i-2], ancillas[i-1]))
	}
	for _, g := range ladder {
		c.Append(g)
	}
	c.Append(toffoli(controls[k-1], ancillas[k-3], target))
	for i := len(ladder) - 1; i >= 0; i-- {
		c.Append(ladder[i])
	}
}

func toffoli(a, b, target int) circuit.Gate {
	return circuit.Gate{Name: "ccx", Controls: []int{a, b}, Targets: []int{target}}
}
