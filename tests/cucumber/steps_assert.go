package cucumber

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
	"github.com/xuri/excelize/v2"

	"qfrbench/internal/export"
)

// theOutputListsCommands asserts the output contains expected command names.
func (s *featureState) theOutputListsCommands(table *godog.Table) error {
	output := s.stdout.String()
	for _, row := range table.Rows {
		for _, cell := range row.Cells {
			command := strings.TrimSpace(cell.Value)
			if command == "" {
				continue
			}
			if !strings.Contains(output, command) {
				return fmt.Errorf("expected command %q in output", command)
			}
		}
	}
	return nil
}

func (s *featureState) theExitCodeIs(code string) error {
	want, err := strconv.Atoi(code)
	if err != nil {
		return err
	}
	if s.exitCode != want {
		return fmt.Errorf("expected exit code %d, got %d (stderr %q)", want, s.exitCode, s.stderr.String())
	}
	return nil
}

// theExitCodeIsNonZero asserts that the CLI returned an error code.
func (s *featureState) theExitCodeIsNonZero() error {
	if s.exitCode == 0 {
		return fmt.Errorf("expected non-zero exit code")
	}
	return nil
}

func (s *featureState) theOutputContains(text string) error {
	if !strings.Contains(s.stdout.String(), text) {
		return fmt.Errorf("expected %q in output %q", text, s.stdout.String())
	}
	return nil
}

func (s *featureState) theErrorOutputContains(text string) error {
	if !strings.Contains(s.stderr.String(), text) {
		return fmt.Errorf("expected %q in error output %q", text, s.stderr.String())
	}
	return nil
}

// theErrorMessagePointsToInvalidField checks the error output for hints.
func (s *featureState) theErrorMessagePointsToInvalidField() error {
	errOutput := s.stderr.String()
	if !strings.Contains(errOutput, "version") {
		return fmt.Errorf("expected error to mention version, got %q", errOutput)
	}
	return nil
}

// aWorkbookIsWritten opens the run's workbook and counts the label tables
// laid out on its single sheet.
func (s *featureState) aWorkbookIsWritten(count string) error {
	want, err := strconv.Atoi(count)
	if err != nil {
		return err
	}
	matches, err := filepath.Glob(filepath.Join(s.outputDir(), "*.xlsx"))
	if err != nil {
		return err
	}
	if len(matches) != 1 {
		return fmt.Errorf("expected one workbook, got %v", matches)
	}
	f, err := excelize.OpenFile(matches[0])
	if err != nil {
		return fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	rows, err := f.GetRows(export.SheetName)
	if err != nil {
		return fmt.Errorf("read sheet: %w", err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("workbook is empty")
	}
	tables := 0
	for _, header := range rows[0] {
		if header == "label" {
			tables++
		}
	}
	if tables != want {
		return fmt.Errorf("expected %d label tables, got %d (%v)", want, tables, rows[0])
	}
	return nil
}

func (s *featureState) noWorkbookIsWritten() error {
	matches, err := filepath.Glob(filepath.Join(s.outputDir(), "*.xlsx"))
	if err != nil {
		return err
	}
	if len(matches) != 0 {
		return fmt.Errorf("expected no workbook, got %v", matches)
	}
	return nil
}
