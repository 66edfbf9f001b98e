package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

// TestValidateCommandSuccess verifies validate command success path.
func TestValidateCommandSuccess(t *testing.T) {
	path := writeProject(t, sweepConfig)

	var out, errOut bytes.Buffer
	code := Run([]string{"validate", "--config", path}, &out, &errOut)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (%s)", ExitOK, code, errOut.String())
	}
	if errOut.Len() != 0 {
		t.Fatalf("expected no stderr output, got %q", errOut.String())
	}
	if !strings.Contains(out.String(), "Config OK") {
		t.Fatalf("expected success message, got %q", out.String())
	}
	if !strings.Contains(out.String(), "= 8 attempts") {
		t.Fatalf("expected attempt count, got %q", out.String())
	}
}

// TestValidateCommandFailure verifies validate command error handling.
func TestValidateCommandFailure(t *testing.T) {
	path := writeProject(t, `version: 2
benchmarks: []
qubits: {start: 1, stop: 4}
params: []
`)

	var out, errOut bytes.Buffer
	code := Run([]string{"validate", "--config", path}, &out, &errOut)
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no stdout output, got %q", out.String())
	}
	for _, want := range []string{"Validation failed", "version", "benchmarks", "qubits", "params"} {
		if !strings.Contains(errOut.String(), want) {
			t.Fatalf("expected %q in %q", want, errOut.String())
		}
	}
}

func TestValidateCommandMissingConfig(t *testing.T) {
	var out, errOut bytes.Buffer
	code := Run([]string{"validate", "--config", filepath.Join(t.TempDir(), "missing.yml")}, &out, &errOut)
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
}

func TestValidateCommandRejectsArguments(t *testing.T) {
	var out, errOut bytes.Buffer
	code := Run([]string{"validate", "extra"}, &out, &errOut)
	if code != ExitUsage {
		t.Fatalf("expected exit %d, got %d", ExitUsage, code)
	}
	if !strings.Contains(errOut.String(), "unexpected arguments: extra") {
		t.Fatalf("unexpected stderr %q", errOut.String())
	}
}
