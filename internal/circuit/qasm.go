package circuit

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrParse wraps all QASM parse failures.
var ErrParse = errors.New("qasm parse error")

var (
	regDeclRegex = regexp.MustCompile(`^(qreg|creg)\s+(\w+)\s*\[\s*(\d+)\s*\]$`)
	measureRegex = regexp.MustCompile(`^measure\s+(.+?)\s*->\s*(.+)$`)
	opRegex      = regexp.MustCompile(`^(\w+)\s*(?:\((.*)\))?\s*(.*)$`)
	argRegex     = regexp.MustCompile(`^(\w+)\s*(?:\[\s*(\d+)\s*\])?$`)
)

// gateShape is the number of controls and targets a QASM gate name takes.
type gateShape struct {
	controls int
	targets  int
	params   int
}

var gateShapes = map[string]gateShape{
	"id": {0, 1, 0}, "x": {0, 1, 0}, "y": {0, 1, 0}, "z": {0, 1, 0},
	"h": {0, 1, 0}, "s": {0, 1, 0}, "sdg": {0, 1, 0}, "t": {0, 1, 0},
	"tdg": {0, 1, 0}, "sx": {0, 1, 0}, "sxdg": {0, 1, 0},
	"rx": {0, 1, 1}, "ry": {0, 1, 1}, "rz": {0, 1, 1}, "p": {0, 1, 1},
	"u1": {0, 1, 1}, "u2": {0, 1, 2}, "u3": {0, 1, 3}, "u": {0, 1, 3},
	"cx": {1, 1, 0}, "cy": {1, 1, 0}, "cz": {1, 1, 0}, "ch": {1, 1, 0},
	"cp": {1, 1, 1}, "cu1": {1, 1, 1}, "crx": {1, 1, 1}, "cry": {1, 1, 1},
	"crz": {1, 1, 1}, "swap": {0, 2, 0}, "ccx": {2, 1, 0}, "cswap": {1, 2, 0},
	"rxx": {0, 2, 1}, "rzz": {0, 2, 1},
}

// SupportedGates reports whether name is a gate the QASM reader accepts.
func SupportedGates(name string) bool {
	_, ok := gateShapes[name]
	return ok
}

type register struct {
	offset int
	size   int
}

type qasmReader struct {
	circuit *Circuit
	qregs   map[string]register
	cregs   map[string]register
}

// ParseQASM parses an OpenQASM 2.0 program into a circuit with the given name.
func ParseQASM(name, source string) (*Circuit, error) {
	r := &qasmReader{
		circuit: New(name, 0),
		qregs:   map[string]register{},
		cregs:   map[string]register{},
	}
	for _, statement := range splitStatements(source) {
		if err := r.statement(statement.text); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrParse, statement.line, err)
		}
	}
	if r.circuit.NumQubits == 0 {
		return nil, fmt.Errorf("%w: no qreg declared", ErrParse)
	}
	return r.circuit, nil
}

type qasmStatement struct {
	text string
	line int
}

// splitStatements strips comments and splits the source on semicolons.
func splitStatements(source string) []qasmStatement {
	var out []qasmStatement
	var current strings.Builder
	startLine := 1
	for i, raw := range strings.Split(source, "\n") {
		line := raw
		if idx := strings.Index(line, "//"); idx >= 0 {
			line = line[:idx]
		}
		for _, part := range strings.SplitAfter(line, ";") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			if strings.TrimSpace(current.String()) == "" {
				startLine = i + 1
			}
			trimmed := strings.TrimSuffix(part, ";")
			current.WriteString(trimmed)
			current.WriteByte(' ')
			if strings.HasSuffix(part, ";") {
				text := strings.TrimSpace(current.String())
				if text != "" {
					out = append(out, qasmStatement{text: text, line: startLine})
				}
				current.Reset()
			}
		}
	}
	if text := strings.TrimSpace(current.String()); text != "" {
		out = append(out, qasmStatement{text: text, line: startLine})
	}
	return out
}

func (r *qasmReader) statement(text string) error {
	switch {
	case strings.HasPrefix(text, "OPENQASM"), strings.HasPrefix(text, "include"):
		return nil
	case strings.HasPrefix(text, "qreg"), strings.HasPrefix(text, "creg"):
		return r.declare(text)
	case strings.HasPrefix(text, "measure"):
		return r.measure(text)
	case strings.HasPrefix(text, "barrier"):
		qubits, err := r.qubitList(strings.TrimSpace(strings.TrimPrefix(text, "barrier")))
		if err != nil {
			return err
		}
		r.circuit.Append(Gate{Name: "barrier", Targets: qubits})
		return nil
	default:
		return r.gate(text)
	}
}

func (r *qasmReader) declare(text string) error {
	matches := regDeclRegex.FindStringSubmatch(text)
	if matches == nil {
		return fmt.Errorf("invalid register declaration %q", text)
	}
	size, err := strconv.Atoi(matches[3])
	if err != nil {
		return err
	}
	if matches[1] == "qreg" {
		r.qregs[matches[2]] = register{offset: r.circuit.NumQubits, size: size}
		r.circuit.NumQubits += size
		return nil
	}
	r.cregs[matches[2]] = register{offset: r.circuit.NumClbits, size: size}
	r.circuit.NumClbits += size
	return nil
}

func (r *qasmReader) measure(text string) error {
	matches := measureRegex.FindStringSubmatch(text)
	if matches == nil {
		return fmt.Errorf("invalid measurement %q", text)
	}
	qubits, err := r.resolve(r.qregs, matches[1])
	if err != nil {
		return err
	}
	clbits, err := r.resolve(r.cregs, matches[2])
	if err != nil {
		return err
	}
	if len(qubits) != len(clbits) {
		return fmt.Errorf("measurement width mismatch in %q", text)
	}
	for i := range qubits {
		r.circuit.Append(Gate{Name: "measure", Targets: []int{qubits[i]}, Clbits: []int{clbits[i]}})
	}
	return nil
}

func (r *qasmReader) gate(text string) error {
	matches := opRegex.FindStringSubmatch(text)
	if matches == nil {
		return fmt.Errorf("invalid statement %q", text)
	}
	name := matches[1]
	shape, ok := gateShapes[name]
	if !ok {
		return fmt.Errorf("unsupported gate %q", name)
	}
	var params []float64
	if strings.TrimSpace(matches[2]) != "" {
		for _, expr := range strings.Split(matches[2], ",") {
			value, err := EvalParam(expr)
			if err != nil {
				return fmt.Errorf("gate %s: %w", name, err)
			}
			params = append(params, value)
		}
	}
	if len(params) != shape.params {
		return fmt.Errorf("gate %s expects %d parameters, got %d", name, shape.params, len(params))
	}

	args := strings.Split(matches[3], ",")
	if len(args) != shape.controls+shape.targets {
		return fmt.Errorf("gate %s expects %d operands, got %d", name, shape.controls+shape.targets, len(args))
	}
	operands := make([][]int, len(args))
	width := 1
	for i, arg := range args {
		qubits, err := r.resolve(r.qregs, arg)
		if err != nil {
			return err
		}
		operands[i] = qubits
		if len(qubits) > 1 {
			if width > 1 && len(qubits) != width {
				return fmt.Errorf("gate %s register width mismatch", name)
			}
			width = len(qubits)
		}
	}
	// Whole-register operands broadcast the gate across the register.
	for k := 0; k < width; k++ {
		g := Gate{Name: canonicalName(name), Params: params}
		for i, qubits := range operands {
			q := qubits[0]
			if len(qubits) > 1 {
				q = qubits[k]
			}
			if i < shape.controls {
				g.Controls = append(g.Controls, q)
			} else {
				g.Targets = append(g.Targets, q)
			}
		}
		r.circuit.Append(g)
	}
	return nil
}

func canonicalName(name string) string {
	switch name {
	case "u1":
		return "p"
	case "cu1":
		return "cp"
	case "u3":
		return "u"
	default:
		return name
	}
}

func (r *qasmReader) qubitList(text string) ([]int, error) {
	var out []int
	for _, arg := range strings.Split(text, ",") {
		qubits, err := r.resolve(r.qregs, arg)
		if err != nil {
			return nil, err
		}
		out = append(out, qubits...)
	}
	return out, nil
}

func (r *qasmReader) resolve(regs map[string]register, arg string) ([]int, error) {
	matches := argRegex.FindStringSubmatch(strings.TrimSpace(arg))
	if matches == nil {
		return nil, fmt.Errorf("invalid operand %q", arg)
	}
	reg, ok := regs[matches[1]]
	if !ok {
		return nil, fmt.Errorf("unknown register %q", matches[1])
	}
	if matches[2] == "" {
		out := make([]int, reg.size)
		for i := range out {
			out[i] = reg.offset + i
		}
		return out, nil
	}
	idx, err := strconv.Atoi(matches[2])
	if err != nil {
		return nil, err
	}
	if idx >= reg.size {
		return nil, fmt.Errorf("index %d out of range for register %s[%d]", idx, matches[1], reg.size)
	}
	return []int{reg.offset + idx}, nil
}

// QASM renders the circuit as OpenQASM 2.0 over a single q/c register pair.
func (c *Circuit) QASM() string {
	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n")
	fmt.Fprintf(&sb, "qreg q[%d];\n", c.NumQubits)
	if c.NumClbits > 0 {
		fmt.Fprintf(&sb, "creg c[%d];\n", c.NumClbits)
	}
	for _, g := range c.Gates {
		switch {
		case g.IsMeasurement():
			fmt.Fprintf(&sb, "measure q[%d] -> c[%d];\n", g.Targets[0], g.Clbits[0])
			continue
		case g.IsBarrier():
			sb.WriteString("barrier ")
		default:
			sb.WriteString(g.Name)
			if len(g.Params) > 0 {
				parts := make([]string, len(g.Params))
				for i, p := range g.Params {
					parts[i] = strconv.FormatFloat(p, 'g', 17, 64)
				}
				sb.WriteString("(" + strings.Join(parts, ",") + ")")
			}
			sb.WriteByte(' ')
		}
		qubits := g.Qubits()
		parts := make([]string, len(qubits))
		for i, q := range qubits {
			parts[i] = fmt.Sprintf("q[%d]", q)
		}
		sb.WriteString(strings.Join(parts, ","))
		sb.WriteString(";\n")
	}
	return sb.String()
}
