package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestRunWithoutArgsPrintsUsage(t *testing.T) {
	var out, errOut bytes.Buffer
	code := Run(nil, &out, &errOut)
	if code != ExitUsage {
		t.Fatalf("expected exit %d, got %d", ExitUsage, code)
	}
	if !strings.Contains(out.String(), "qfrbench <command>") {
		t.Fatalf("expected usage, got %q", out.String())
	}
	for _, name := range []string{"init", "validate", "run", "list", "runs", "report"} {
		if !strings.Contains(out.String(), "  "+name) {
			t.Fatalf("expected command %s in usage, got %q", name, out.String())
		}
	}
}

func TestRunUnknownCommand(t *testing.T) {
	var out, errOut bytes.Buffer
	code := Run([]string{"bogus"}, &out, &errOut)
	if code != ExitUsage {
		t.Fatalf("expected exit %d, got %d", ExitUsage, code)
	}
	if !strings.Contains(errOut.String(), "Unknown command: bogus") {
		t.Fatalf("unexpected stderr %q", errOut.String())
	}
}

func TestCommandHelp(t *testing.T) {
	var out, errOut bytes.Buffer
	code := Run([]string{"run", "--help"}, &out, &errOut)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d", ExitOK, code)
	}
	if !strings.Contains(out.String(), "--fail-on-partial") {
		t.Fatalf("expected run usage, got %q", out.String())
	}
}

func TestListCommand(t *testing.T) {
	var out, errOut bytes.Buffer
	if code := Run([]string{"list"}, &out, &errOut); code != ExitOK {
		t.Fatalf("expected exit %d, got %d (%s)", ExitOK, code, errOut.String())
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if lines[0] != "dj" {
		t.Fatalf("expected sorted names, got %v", lines)
	}
	if !strings.Contains(out.String(), "grover-v-chain\n") {
		t.Fatalf("expected grover-v-chain, got %q", out.String())
	}

	out.Reset()
	if code := Run([]string{"list", "--scalable"}, &out, &errOut); code != ExitOK {
		t.Fatalf("expected exit %d, got %d", ExitOK, code)
	}
	if !strings.Contains(out.String(), "ghz (builtin)\n") || !strings.Contains(out.String(), "qaoa\n") {
		t.Fatalf("unexpected scalable list %q", out.String())
	}
}

func TestListRejectsArguments(t *testing.T) {
	var out, errOut bytes.Buffer
	if code := Run([]string{"list", "extra"}, &out, &errOut); code != ExitUsage {
		t.Fatalf("expected exit %d, got %d", ExitUsage, code)
	}
}
