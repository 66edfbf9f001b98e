package construct

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"qfrbench/internal/circuit"
)

// Command delegates construction to an external program. The program reads a
// JSON request on stdin and prints a JSON Result on stdout.
type Command struct {
	Argv []string
	Dir  string
}

type commandRequest struct {
	Name string `json:"name"`
	QASM string `json:"qasm"`
	Options
}

// Construct implements Constructor.
func (c *Command) Construct(ctx context.Context, circ *circuit.Circuit, opts Options) (Result, error) {
	if len(c.Argv) == 0 {
		return Result{}, errors.New("construct command is empty")
	}
	payload, err := json.Marshal(commandRequest{Name: circ.Name, QASM: circ.QASM(), Options: opts})
	if err != nil {
		return Result{}, fmt.Errorf("encode construct request: %w", err)
	}
	cmd := exec.CommandContext(ctx, c.Argv[0], c.Argv[1:]...)
	cmd.Dir = c.Dir
	cmd.Stdin = bytes.NewReader(payload)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return Result{}, fmt.Errorf("construct command failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return DecodeResult(stdout.Bytes())
}

// DecodeResult parses a JSON construction result.
func DecodeResult(data []byte) (Result, error) {
	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		return Result{}, fmt.Errorf("decode construct result: %w", err)
	}
	if len(result.Statistics) == 0 {
		return Result{}, errors.New("decode construct result: statistics are missing")
	}
	return result, nil
}
