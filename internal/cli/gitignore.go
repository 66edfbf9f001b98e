package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// addGitignoreEntry appends the results folder to root/.gitignore. It reports
// false when an equivalent entry ("out", "out/" or "/out") is already listed.
func addGitignoreEntry(root, outputDir string) (bool, error) {
	entry, err := normalizeGitignorePath(root, outputDir)
	if err != nil {
		return false, err
	}

	path := filepath.Join(root, ".gitignore")
	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return false, fmt.Errorf("read .gitignore: %w", err)
	}
	for _, line := range strings.Split(string(existing), "\n") {
		if strings.Trim(strings.TrimSpace(line), "/") == entry {
			return false, nil
		}
	}

	updated := string(existing)
	if updated != "" && !strings.HasSuffix(updated, "\n") {
		updated += "\n"
	}
	updated += entry + "\n"
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		return false, fmt.Errorf("write .gitignore: %w", err)
	}
	return true, nil
}

// normalizeGitignorePath turns outputDir into a slash-separated path relative
// to root. Paths that leave root are rejected.
func normalizeGitignorePath(root, outputDir string) (string, error) {
	if strings.TrimSpace(outputDir) == "" {
		return "", fmt.Errorf("output dir is required")
	}
	clean := filepath.Clean(outputDir)
	if filepath.IsAbs(clean) {
		rel, err := filepath.Rel(root, clean)
		if err != nil {
			return "", fmt.Errorf("resolve output dir: %w", err)
		}
		clean = rel
	}
	if clean == "." || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("output dir %q is outside the project root", outputDir)
	}
	return filepath.ToSlash(clean), nil
}
