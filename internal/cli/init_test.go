package cli

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"qfrbench/internal/config"
)

func withInitInput(t *testing.T, input string) {
	t.Helper()
	original := initInput
	initInput = strings.NewReader(input)
	t.Cleanup(func() { initInput = original })
}

func TestInitCommandCreatesConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "qfrbench.yml")
	withInitInput(t, "\n\n")

	var out, errOut bytes.Buffer
	code := Run([]string{"init", "--config", path}, &out, &errOut)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (%s)", ExitOK, code, errOut.String())
	}
	if !strings.Contains(out.String(), "Wrote "+path) {
		t.Fatalf("expected output to include writes, got %q", out.String())
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load scaffold: %v", err)
	}
	if cfg.Output.Dir != config.DefaultOutputDir {
		t.Fatalf("unexpected output dir %q", cfg.Output.Dir)
	}
}

func TestInitCommandUpdatesGitignore(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir .git: %v", err)
	}
	path := filepath.Join(root, ".qfrbench", "config.yml")
	withInitInput(t, "y\nbench-results\ny\n")

	var out, errOut bytes.Buffer
	code := Run([]string{"init", "--config", path}, &out, &errOut)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (%s)", ExitOK, code, errOut.String())
	}
	data, err := os.ReadFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		t.Fatalf("read .gitignore: %v", err)
	}
	if string(data) != "bench-results\n" {
		t.Fatalf("unexpected .gitignore %q", string(data))
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load scaffold: %v", err)
	}
	if cfg.Output.Dir != "bench-results" {
		t.Fatalf("unexpected output dir %q", cfg.Output.Dir)
	}
}

func TestInitCommandCancelled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qfrbench.yml")
	withInitInput(t, "n\n")

	var out, errOut bytes.Buffer
	code := Run([]string{"init", "--config", path}, &out, &errOut)
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected no config file, got %v", err)
	}
}

func TestInitCommandRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qfrbench.yml")
	if err := os.WriteFile(path, []byte("version: 1\n"), 0o644); err != nil {
		t.Fatalf("write spec: %v", err)
	}
	withInitInput(t, "")

	var out, errOut bytes.Buffer
	code := Run([]string{"init", "--config", path}, &out, &errOut)
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no stdout output, got %q", out.String())
	}
	if !strings.Contains(errOut.String(), "already exists") {
		t.Fatalf("expected overwrite warning, got %q", errOut.String())
	}
}

func TestDiscoverGitRoot(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if got := discoverGitRoot(nested); got != "" {
		t.Fatalf("expected no git root, got %q", got)
	}
	if err := os.Mkdir(filepath.Join(root, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir .git: %v", err)
	}
	if got := discoverGitRoot(nested); got != root {
		t.Fatalf("expected %q, got %q", root, got)
	}
}

func TestPromptYesNoRetries(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("maybe\nyes\n"))
	answer, err := promptYesNo(reader, &out, "Continue?", false)
	if err != nil {
		t.Fatalf("prompt: %v", err)
	}
	if !answer {
		t.Fatalf("expected yes")
	}
	if !strings.Contains(out.String(), "Please answer yes or no.") {
		t.Fatalf("expected retry message, got %q", out.String())
	}
}

func TestNormalizeGitignorePath(t *testing.T) {
	root := t.TempDir()
	entry, err := normalizeGitignorePath(root, filepath.Join(root, "out", "xlsx"))
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if entry != "out/xlsx" {
		t.Fatalf("unexpected entry %q", entry)
	}
	if _, err := normalizeGitignorePath(root, "../elsewhere"); err == nil {
		t.Fatalf("expected error for path outside root")
	}
}

func TestAddGitignoreEntrySkipsEquivalentLines(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, ".gitignore"), []byte("node_modules\n/results/"), 0o644); err != nil {
		t.Fatalf("write .gitignore: %v", err)
	}
	updated, err := addGitignoreEntry(root, "results")
	if err != nil {
		t.Fatalf("add entry: %v", err)
	}
	if updated {
		t.Fatalf("expected existing /results/ to match")
	}
	updated, err = addGitignoreEntry(root, "./bench")
	if err != nil {
		t.Fatalf("add entry: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		t.Fatalf("read .gitignore: %v", err)
	}
	if !updated || string(data) != "node_modules\n/results/\nbench\n" {
		t.Fatalf("unexpected .gitignore %q", string(data))
	}
}

func TestInitCommandAssumeYes(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir .git: %v", err)
	}
	path := filepath.Join(root, ".qfrbench", "config.yml")
	withInitInput(t, "")

	var out, errOut bytes.Buffer
	code := Run([]string{"init", "--config", path, "--yes", "--output-dir", "xlsx"}, &out, &errOut)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (%s)", ExitOK, code, errOut.String())
	}
	if strings.Contains(out.String(), "[Y/n]") {
		t.Fatalf("expected no prompts, got %q", out.String())
	}
	data, err := os.ReadFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		t.Fatalf("read .gitignore: %v", err)
	}
	if string(data) != "xlsx\n" {
		t.Fatalf("unexpected .gitignore %q", string(data))
	}
}
