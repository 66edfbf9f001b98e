package circuit

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

const bellQASM = `OPENQASM 2.0;
include "qelib1.inc";
qreg q[2];
creg meas[2];
h q[0];
cx q[0],q[1];
barrier q[0],q[1];
measure q[0] -> meas[0];
measure q[1] -> meas[1];
`

func TestParseQASMBell(t *testing.T) {
	c, err := ParseQASM("bell", bellQASM)
	require.NoError(t, err)
	require.Equal(t, 2, c.NumQubits)
	require.Equal(t, 2, c.NumClbits)
	require.Len(t, c.Gates, 5)
	require.Equal(t, "cx", c.Gates[1].Name)
	require.Equal(t, []int{0}, c.Gates[1].Controls)
	require.Equal(t, []int{1}, c.Gates[1].Targets)
}

func TestParseQASMParamsAndBroadcast(t *testing.T) {
	src := `OPENQASM 2.0;
qreg q[3];
h q;
rz(-pi/4) q[2]; u1(2*pi/3) q[0];
cu1(pi/2) q[0],q[1];
ccx q[0],q[1],q[2];
`
	c, err := ParseQASM("p", src)
	require.NoError(t, err)
	require.Len(t, c.Gates, 7)
	require.InDelta(t, -math.Pi/4, c.Gates[3].Params[0], 1e-12)
	require.Equal(t, "p", c.Gates[4].Name)
	require.InDelta(t, 2*math.Pi/3, c.Gates[4].Params[0], 1e-12)
	require.Equal(t, "cp", c.Gates[5].Name)
	require.Equal(t, []int{0, 1}, c.Gates[6].Controls)
	require.Equal(t, []int{2}, c.Gates[6].Targets)
}

func TestParseQASMErrors(t *testing.T) {
	cases := map[string]string{
		"unknown gate":  "qreg q[1];\nfoo q[0];\n",
		"bad index":     "qreg q[1];\nh q[3];\n",
		"missing qreg":  "h q[0];\n",
		"no registers":  "OPENQASM 2.0;\n",
		"param arity":   "qreg q[1];\nrz q[0];\n",
		"operand count": "qreg q[2];\ncx q[0];\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseQASM("x", src)
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrParse))
		})
	}
}

func TestQASMRoundTripKeepsGates(t *testing.T) {
	c := New("rt", 3)
	c.Op("h", 0)
	c.Controlled("cp", []int{0}, 2, math.Pi/8)
	c.Swap(1, 2)
	c.MeasureAll()

	parsed, err := ParseQASM("rt", c.QASM())
	require.NoError(t, err)
	require.Equal(t, c.NumQubits, parsed.NumQubits)
	require.Equal(t, c.NumClbits, parsed.NumClbits)
	require.Equal(t, len(c.Gates), len(parsed.Gates))
	require.InDelta(t, math.Pi/8, parsed.Gates[1].Params[0], 1e-15)
}

func TestRemoveFinalMeasurements(t *testing.T) {
	c, err := ParseQASM("bell", bellQASM)
	require.NoError(t, err)

	removed := c.RemoveFinalMeasurements()

	require.Equal(t, 3, removed)
	require.Len(t, c.Gates, 2)
	require.Zero(t, c.NumClbits)
}

func TestRemoveFinalMeasurementsKeepsMidCircuit(t *testing.T) {
	c := New("mid", 2)
	c.Op("h", 0)
	c.Measure(0, 0)
	c.Op("x", 0)
	c.Measure(1, 1)

	removed := c.RemoveFinalMeasurements()

	require.Equal(t, 1, removed)
	require.Len(t, c.Gates, 3)
	require.True(t, c.Gates[1].IsMeasurement())
	require.Equal(t, 2, c.NumClbits)
}

func TestMetadata(t *testing.T) {
	c := New("ghz", 3)
	c.Op("h", 0)
	c.Controlled("cx", []int{0}, 1)
	c.Controlled("cx", []int{1}, 2)
	c.Barrier()

	meta := c.Metadata()
	require.Equal(t, Metadata{Name: "ghz", NumQubits: 3, NumGates: 3, Depth: 3}, meta)
}

func TestEvalParam(t *testing.T) {
	cases := map[string]float64{
		"pi":         math.Pi,
		"-pi/2":      -math.Pi / 2,
		"3*pi/4":     3 * math.Pi / 4,
		"(1+2)*0.5":  1.5,
		"1e-3":       0.001,
		" 2 - -1 ":   3,
		"pi/(2*2)":   math.Pi / 4,
		"0.785398":   0.785398,
		"-(pi)+pi*2": math.Pi,
	}
	for expr, want := range cases {
		got, err := EvalParam(expr)
		require.NoError(t, err, expr)
		require.InDelta(t, want, got, 1e-12, expr)
	}
	for _, bad := range []string{"", "pi/0", "(1", "2x", "theta"} {
		_, err := EvalParam(bad)
		require.Error(t, err, bad)
	}
}
