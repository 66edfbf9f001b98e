package construct

import (
	"fmt"
	"math"
	"math/cmplx"

	"qfrbench/internal/circuit"
)

type unitary2 [2][2]complex128

var controlledBase = map[string]string{
	"cx": "x", "cy": "y", "cz": "z", "ch": "h", "cp": "p",
	"crx": "rx", "cry": "ry", "crz": "rz", "ccx": "x", "cswap": "swap",
}

// baseName strips the control prefix from a controlled gate name.
func baseName(name string) string {
	if base, ok := controlledBase[name]; ok {
		return base
	}
	return name
}

func singleQubit(name string, params []float64) (unitary2, error) {
	param := func(i int) float64 {
		if i < len(params) {
			return params[i]
		}
		return 0
	}
	invSqrt2 := complex(1/math.Sqrt2, 0)
	switch name {
	case "id":
		return unitary2{{1, 0}, {0, 1}}, nil
	case "x":
		return unitary2{{0, 1}, {1, 0}}, nil
	case "y":
		return unitary2{{0, -1i}, {1i, 0}}, nil
	case "z":
		return unitary2{{1, 0}, {0, -1}}, nil
	case "h":
		return unitary2{{invSqrt2, invSqrt2}, {invSqrt2, -invSqrt2}}, nil
	case "s":
		return unitary2{{1, 0}, {0, 1i}}, nil
	case "sdg":
		return unitary2{{1, 0}, {0, -1i}}, nil
	case "t":
		return unitary2{{1, 0}, {0, cmplx.Exp(1i * math.Pi / 4)}}, nil
	case "tdg":
		return unitary2{{1, 0}, {0, cmplx.Exp(-1i * math.Pi / 4)}}, nil
	case "sx":
		return unitary2{{(1 + 1i) / 2, (1 - 1i) / 2}, {(1 - 1i) / 2, (1 + 1i) / 2}}, nil
	case "sxdg":
		return unitary2{{(1 - 1i) / 2, (1 + 1i) / 2}, {(1 + 1i) / 2, (1 - 1i) / 2}}, nil
	case "rx":
		c, s := math.Cos(param(0)/2), math.Sin(param(0)/2)
		return unitary2{{complex(c, 0), complex(0, -s)}, {complex(0, -s), complex(c, 0)}}, nil
	case "ry":
		c, s := math.Cos(param(0)/2), math.Sin(param(0)/2)
		return unitary2{{complex(c, 0), complex(-s, 0)}, {complex(s, 0), complex(c, 0)}}, nil
	case "rz":
		half := param(0) / 2
		return unitary2{{cmplx.Exp(complex(0, -half)), 0}, {0, cmplx.Exp(complex(0, half))}}, nil
	case "p":
		return unitary2{{1, 0}, {0, cmplx.Exp(complex(0, param(0)))}}, nil
	case "u2":
		return u3(math.Pi/2, param(0), param(1)), nil
	case "u":
		return u3(param(0), param(1), param(2)), nil
	default:
		return unitary2{}, fmt.Errorf("%w: %s", ErrUnsupportedGate, name)
	}
}

func u3(theta, phi, lambda float64) unitary2 {
	c, s := math.Cos(theta/2), math.Sin(theta/2)
	return unitary2{
		{complex(c, 0), -cmplx.Exp(complex(0, lambda)) * complex(s, 0)},
		{cmplx.Exp(complex(0, phi)) * complex(s, 0), cmplx.Exp(complex(0, phi+lambda)) * complex(c, 0)},
	}
}

// kernel applies one gate in place to a state vector indexed little-endian by qubit.
type kernel func(v []complex128)

func compile(g circuit.Gate) (kernel, error) {
	var controls int
	for _, q := range g.Controls {
		controls |= 1 << q
	}
	switch base := baseName(g.Name); base {
	case "swap":
		if len(g.Targets) != 2 {
			return nil, fmt.Errorf("%w: swap needs two targets", ErrUnsupportedGate)
		}
		a, b := 1<<g.Targets[0], 1<<g.Targets[1]
		return func(v []complex128) {
			for i := range v {
				if i&controls == controls && i&a != 0 && i&b == 0 {
					j := i ^ a ^ b
					v[i], v[j] = v[j], v[i]
				}
			}
		}, nil
	case "rzz":
		a, b := 1<<g.Targets[0], 1<<g.Targets[1]
		half := g.Params[0] / 2
		same, diff := cmplx.Exp(complex(0, -half)), cmplx.Exp(complex(0, half))
		return func(v []complex128) {
			for i := range v {
				if (i&a == 0) == (i&b == 0) {
					v[i] *= same
				} else {
					v[i] *= diff
				}
			}
		}, nil
	case "rxx":
		a, b := 1<<g.Targets[0], 1<<g.Targets[1]
		c, s := complex(math.Cos(g.Params[0]/2), 0), complex(0, -math.Sin(g.Params[0]/2))
		return func(v []complex128) {
			for i := range v {
				j := i ^ a ^ b
				if i < j {
					x, y := v[i], v[j]
					v[i] = c*x + s*y
					v[j] = s*x + c*y
				}
			}
		}, nil
	default:
		m, err := singleQubit(base, g.Params)
		if err != nil {
			return nil, err
		}
		if len(g.Targets) != 1 {
			return nil, fmt.Errorf("%w: %s on %d targets", ErrUnsupportedGate, g.Name, len(g.Targets))
		}
		t := 1 << g.Targets[0]
		return func(v []complex128) {
			for i := range v {
				if i&t == 0 && i&controls == controls {
					x, y := v[i], v[i|t]
					v[i] = m[0][0]*x + m[0][1]*y
					v[i|t] = m[1][0]*x + m[1][1]*y
				}
			}
		}, nil
	}
}
