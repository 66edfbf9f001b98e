package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"qfrbench/internal/circuit"
)

// Directory loads pre-generated circuits named <name>_<level>_<qubits>.qasm.
type Directory struct {
	Root string
}

// Path returns the file a benchmark is loaded from.
func (d *Directory) Path(name, level string, qubits int) string {
	if level == "" {
		level = DefaultLevel
	}
	return filepath.Join(d.Root, fmt.Sprintf("%s_%s_%d.qasm", name, level, qubits))
}

// Generate implements Generator.
func (d *Directory) Generate(ctx context.Context, name, level string, qubits int) (*circuit.Circuit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := d.Path(name, level, qubits)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s at level %s with %d qubits (%s)", ErrUnknownBenchmark, name, level, qubits, path)
		}
		return nil, fmt.Errorf("read benchmark: %w", err)
	}
	c, err := circuit.ParseQASM(name, string(data))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", filepath.Base(path), err)
	}
	if c.NumQubits != qubits {
		return nil, fmt.Errorf("load %s: expected %d qubits, got %d", filepath.Base(path), qubits, c.NumQubits)
	}
	return c, nil
}

// Command runs an external program with the benchmark name, level and width
// appended to Argv, and parses the OpenQASM it prints.
type Command struct {
	Argv []string
	Dir  string
}

// Generate implements Generator.
func (g *Command) Generate(ctx context.Context, name, level string, qubits int) (*circuit.Circuit, error) {
	if len(g.Argv) == 0 {
		return nil, errors.New("generator command is empty")
	}
	if level == "" {
		level = DefaultLevel
	}
	args := append(append([]string{}, g.Argv[1:]...), name, level, strconv.Itoa(qubits))
	cmd := exec.CommandContext(ctx, g.Argv[0], args...)
	cmd.Dir = g.Dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("generator command failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	c, err := circuit.ParseQASM(name, stdout.String())
	if err != nil {
		return nil, fmt.Errorf("generator output: %w", err)
	}
	return c, nil
}
