package export

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"qfrbench/internal/record"
)

func sampleResults() *record.Results {
	results := record.NewResults()
	results.Append("L1", record.Of("label", "L1", "name", "ghz", "final_nodecount", 4))
	results.Append("L1", record.Of("label", "L1", "name", "qft", "final_nodecount", 9))
	results.Append("L2", record.Of("label", "L2", "name", "ghz", "n_qubits", 3, "depth", 3, "final_nodecount", 4))
	return results
}

func TestLayoutOffsetsTables(t *testing.T) {
	tables := Layout(sampleResults())
	require.Len(t, tables, 2)
	require.Equal(t, "L1", tables[0].Label)
	require.Equal(t, 0, tables[0].Column)
	require.Equal(t, 3, tables[0].Width())
	require.Equal(t, "L2", tables[1].Label)
	require.Equal(t, 4, tables[1].Column)
	require.Equal(t, 5, tables[1].Width())
	require.Equal(t, []string{"label", "name", "n_qubits", "depth", "final_nodecount"}, tables[1].Headers)
	require.Len(t, tables[0].Rows, 2)
}

func TestLayoutUnionsHeadersInFirstAppearanceOrder(t *testing.T) {
	results := record.NewResults()
	results.Append("L", record.Of("label", "L", "a", 1))
	results.Append("L", record.Of("label", "L", "b", 2, "a", 3))

	tables := Layout(results)
	require.Equal(t, []string{"label", "a", "b"}, tables[0].Headers)
	require.Equal(t, []any{"L", 1, nil}, tables[0].Rows[0])
	require.Equal(t, []any{"L", 3, 2}, tables[0].Rows[1])
}

func TestWriteExcelWritesTimestampedWorkbook(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "results")
	now := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)

	path, written, err := WriteExcel(sampleResults(), dir, now)
	require.NoError(t, err)
	require.True(t, written)
	require.Equal(t, filepath.Join(dir, "20240305_140709.xlsx"), path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	require.Equal(t, []string{SheetName}, f.GetSheetList())

	cell := func(name string) string {
		t.Helper()
		value, err := f.GetCellValue(SheetName, name)
		require.NoError(t, err)
		return value
	}
	require.Equal(t, "label", cell("A1"))
	require.Equal(t, "final_nodecount", cell("C1"))
	require.Equal(t, "ghz", cell("B2"))
	require.Equal(t, "9", cell("C3"))
	require.Equal(t, "", cell("D1"))
	require.Equal(t, "label", cell("E1"))
	require.Equal(t, "final_nodecount", cell("I1"))
	require.Equal(t, "L2", cell("E2"))
}

func TestWriteExcelSkipsEmptyResults(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "results")

	path, written, err := WriteExcel(record.NewResults(), dir, time.Now())
	require.NoError(t, err)
	require.False(t, written)
	require.Empty(t, path)
	_, statErr := os.Stat(dir)
	require.True(t, os.IsNotExist(statErr))
}

func TestCellValueStringifiesComposites(t *testing.T) {
	require.Equal(t, 3, cellValue(3))
	require.Equal(t, "[1,2]", cellValue([]int{1, 2}))
	require.Equal(t, `{"a":1}`, cellValue(map[string]int{"a": 1}))
}

func TestOutputPaths(t *testing.T) {
	paths, err := NewOutputPaths("out", time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
	require.NoError(t, err)
	require.Equal(t, filepath.Join("out", "20240102_030405.xlsx"), paths.WorkbookPath())
	require.Equal(t, filepath.Join("out", "20240102_030405.json"), paths.ResultsPath())
	require.Equal(t, filepath.Join("out", "20240102_030405.html"), paths.ReportPath())
	require.Equal(t, filepath.Join("out", "20240102_030405.prom"), paths.MetricsPath())

	_, err = NewOutputPaths(" ", time.Now())
	require.Error(t, err)
}

func TestWriteJSONCreatesParent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.json")
	require.NoError(t, WriteJSON(path, map[string]int{"a": 1}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.JSONEq(t, `{"a":1}`, string(data))
}
