package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/xuri/excelize/v2"

	"qfrbench/internal/record"
)

// SheetName is the single worksheet all label tables are written to.
const SheetName = "Sheet_1"

// Table is one label's rows placed on the worksheet.
type Table struct {
	Label string
	// Column is the zero-based column the table starts at.
	Column  int
	Headers []string
	Rows    [][]any
}

// Width returns the number of columns the table spans.
func (t Table) Width() int {
	return len(t.Headers)
}

// Layout places one table per label side by side, each starting one blank
// column after the previous one. Headers are the union of the label's row
// keys in first-appearance order.
func Layout(results *record.Results) []Table {
	labels := results.Labels()
	tables := make([]Table, 0, len(labels))
	column := 0
	for _, label := range labels {
		rows := results.Rows(label)
		table := Table{Label: label, Column: column}
		index := map[string]int{}
		for _, row := range rows {
			for _, key := range row.Keys() {
				if _, ok := index[key]; !ok {
					index[key] = len(table.Headers)
					table.Headers = append(table.Headers, key)
				}
			}
		}
		for _, row := range rows {
			values := make([]any, len(table.Headers))
			for _, field := range row {
				values[index[field.Key]] = cellValue(field.Value)
			}
			table.Rows = append(table.Rows, values)
		}
		tables = append(tables, table)
		column += table.Width() + 1
	}
	return tables
}

// WriteExcel writes results to dir/<YYYYMMDD_HHMMSS>.xlsx. Nothing is written
// when results are empty, in which case written is false.
func WriteExcel(results *record.Results, dir string, now time.Time) (path string, written bool, err error) {
	if results.Empty() {
		return "", false, nil
	}
	paths, err := NewOutputPaths(dir, now)
	if err != nil {
		return "", false, err
	}
	if err := os.MkdirAll(paths.Dir, 0o755); err != nil {
		return "", false, fmt.Errorf("create output dir: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return "", false, fmt.Errorf("rename sheet: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return "", false, fmt.Errorf("create header style: %w", err)
	}
	for _, table := range Layout(results) {
		if err := writeTable(f, table, headerStyle); err != nil {
			return "", false, fmt.Errorf("write table %s: %w", table.Label, err)
		}
	}
	path = paths.WorkbookPath()
	if err := f.SaveAs(path); err != nil {
		return "", false, fmt.Errorf("save workbook: %w", err)
	}
	return path, true, nil
}

func writeTable(f *excelize.File, table Table, headerStyle int) error {
	if table.Width() == 0 {
		return nil
	}
	// excelize coordinates are one-based.
	first, err := excelize.CoordinatesToCellName(table.Column+1, 1)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(table.Column+table.Width(), 1)
	if err != nil {
		return err
	}
	headers := make([]any, len(table.Headers))
	for i, h := range table.Headers {
		headers[i] = h
	}
	if err := f.SetSheetRow(SheetName, first, &headers); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, first, last, headerStyle); err != nil {
		return err
	}
	for i, row := range table.Rows {
		cell, err := excelize.CoordinatesToCellName(table.Column+1, i+2)
		if err != nil {
			return err
		}
		values := row
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return err
		}
	}
	return nil
}

// cellValue keeps scalar values and renders anything else as JSON text.
func cellValue(v any) any {
	switch x := v.(type) {
	case nil, string, bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64, time.Time, time.Duration:
		return v
	case json.Number:
		return x.String()
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}
