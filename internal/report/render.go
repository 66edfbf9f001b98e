package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// RenderHTML renders the report page into a string.
func RenderHTML(ctx context.Context, doc Document) (string, error) {
	var builder strings.Builder
	if err := Page(doc).Render(ctx, &builder); err != nil {
		return "", err
	}
	return builder.String(), nil
}

// WriteHTML renders the report page to path.
func WriteHTML(ctx context.Context, path string, doc Document) error {
	html, err := RenderHTML(ctx, doc)
	if err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
