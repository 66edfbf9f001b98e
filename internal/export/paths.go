package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// TimestampLayout is the YYYYMMDD_HHMMSS layout of output file names.
const TimestampLayout = "20060102_150405"

// OutputPaths names the files written for one run. All share a timestamp stem.
type OutputPaths struct {
	Dir  string
	Stem string
}

// NewOutputPaths validates dir and derives the stem from now.
func NewOutputPaths(dir string, now time.Time) (OutputPaths, error) {
	if strings.TrimSpace(dir) == "" {
		return OutputPaths{}, fmt.Errorf("output directory is empty")
	}
	return OutputPaths{Dir: dir, Stem: now.Format(TimestampLayout)}, nil
}

// WorkbookPath returns the path of the spreadsheet.
func (o OutputPaths) WorkbookPath() string {
	return filepath.Join(o.Dir, o.Stem+".xlsx")
}

// ResultsPath returns the path of the JSON results.
func (o OutputPaths) ResultsPath() string {
	return filepath.Join(o.Dir, o.Stem+".json")
}

// ReportPath returns the path of the HTML report.
func (o OutputPaths) ReportPath() string {
	return filepath.Join(o.Dir, o.Stem+".html")
}

// MetricsPath returns the path of the Prometheus textfile.
func (o OutputPaths) MetricsPath() string {
	return filepath.Join(o.Dir, o.Stem+".prom")
}

// WriteJSON writes payload as indented JSON, creating the parent directory.
func WriteJSON(path string, payload any) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
