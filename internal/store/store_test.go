package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"qfrbench/internal/evaluation"
	"qfrbench/internal/record"
	"qfrbench/internal/testutil"
)

func openSQLite(t *testing.T) *Store {
	t.Helper()
	ctx := testutil.Context(t, 0)
	s, err := Open(ctx, "sqlite://"+filepath.Join(t.TempDir(), "db", "results.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleRun() (evaluation.Report, *record.Results) {
	started := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	results := record.NewResults()
	results.Append("regular", record.Of("label", "regular", "name", "ghz", "n_qubits", 3, "final_nodecount", 4))
	results.Append("regular", record.Of("label", "regular", "name", "qft", "n_qubits", 3, "final_nodecount", 9))
	results.Append("reduceT", record.Of("label", "reduceT", "name", "ghz", "n_qubits", 3, "final_nodecount", 4))
	report := evaluation.Report{
		RunID:         "20240501_120000-abcd",
		CheckEquality: true,
		StartedAt:     started,
		FinishedAt:    started.Add(time.Second),
		Outcomes: []evaluation.Outcome{
			{Progress: evaluation.Progress{Index: 1, Total: 4, Benchmark: "ghz", Qubits: 3, Label: "regular"}, Kind: evaluation.OutcomeOK},
			{Progress: evaluation.Progress{Index: 2, Total: 4, Benchmark: "ghz", Qubits: 3, Label: "reduceT"}, Kind: evaluation.OutcomeOK},
			{Progress: evaluation.Progress{Index: 3, Total: 4, Benchmark: "qft", Qubits: 3, Label: "regular"}, Kind: evaluation.OutcomeOK},
			{Progress: evaluation.Progress{Index: 4, Total: 4, Benchmark: "qft", Qubits: 3, Label: "reduceT"}, Kind: evaluation.OutcomeConstructionFailed, Error: "boom"},
		},
		Mismatches: []evaluation.EqualityMismatch{{Benchmark: "ghz", Qubits: 3, Distinct: 2, Labels: []string{"regular", "reduceT"}}},
		Summary:    evaluation.Summary{Planned: 4, Attempts: 4, Succeeded: 3, ConstructionFailures: 1, EqualityMismatches: 1},
	}
	return report, results
}

func TestParseDSN(t *testing.T) {
	cases := []struct {
		dsn, driver, path string
	}{
		{"duckdb://out/results.duckdb", DriverDuckDB, "out/results.duckdb"},
		{"duckdb://", DriverDuckDB, ""},
		{"sqlite://results.db", DriverSQLite, "results.db"},
		{"sqlite3://", DriverSQLite, ":memory:"},
	}
	for _, tc := range cases {
		driver, path, err := ParseDSN(tc.dsn)
		if err != nil {
			t.Fatalf("%s: %v", tc.dsn, err)
		}
		if driver != tc.driver || path != tc.path {
			t.Fatalf("%s: got %s %q", tc.dsn, driver, path)
		}
	}
	for _, dsn := range []string{"results.db", "postgres://x"} {
		if _, _, err := ParseDSN(dsn); !errors.Is(err, ErrUnsupportedDSN) {
			t.Fatalf("%s: expected ErrUnsupportedDSN, got %v", dsn, err)
		}
	}
}

func TestSaveAndLoadRun(t *testing.T) {
	s := openSQLite(t)
	ctx := testutil.Context(t, 0)
	report, results := sampleRun()

	if err := s.SaveRun(ctx, report, results); err != nil {
		t.Fatalf("save run: %v", err)
	}
	loaded, err := s.LoadRows(ctx, report.RunID)
	if err != nil {
		t.Fatalf("load rows: %v", err)
	}
	if labels := loaded.Labels(); len(labels) != 2 || labels[0] != "regular" || labels[1] != "reduceT" {
		t.Fatalf("unexpected labels %v", labels)
	}
	rows := loaded.Rows("regular")
	if len(rows) != 2 {
		t.Fatalf("expected 2 regular rows, got %d", len(rows))
	}
	if name, _ := rows[1].Get("name"); name != "qft" {
		t.Fatalf("unexpected row order: %v", name)
	}
	if keys := rows[0].Keys(); len(keys) != 4 || keys[3] != "final_nodecount" {
		t.Fatalf("unexpected keys %v", keys)
	}
	if n, _ := rows[0].Get("final_nodecount"); n != int64(4) {
		t.Fatalf("unexpected nodecount %#v", n)
	}

	runs, err := s.Runs(ctx)
	if err != nil {
		t.Fatalf("runs: %v", err)
	}
	if len(runs) != 1 || runs[0].Summary.Succeeded != 3 || !runs[0].StartedAt.Equal(report.StartedAt) {
		t.Fatalf("unexpected runs %+v", runs)
	}

	counts, err := s.OutcomeCounts(ctx, report.RunID)
	if err != nil {
		t.Fatalf("outcome counts: %v", err)
	}
	if counts[evaluation.OutcomeOK] != 3 || counts[evaluation.OutcomeConstructionFailed] != 1 {
		t.Fatalf("unexpected counts %v", counts)
	}
}

func TestSaveRunIsAtomic(t *testing.T) {
	s := openSQLite(t)
	ctx := testutil.Context(t, 0)
	report, results := sampleRun()
	if err := s.SaveRun(ctx, report, results); err != nil {
		t.Fatalf("save run: %v", err)
	}
	// same run id again violates the primary key and must leave no partial rows
	if err := s.SaveRun(ctx, report, results); err == nil {
		t.Fatalf("expected duplicate run to fail")
	}
	var n int
	if err := s.DB().QueryRowContext(ctx, `SELECT COUNT(*) FROM results`).Scan(&n); err != nil {
		t.Fatalf("count results: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 result rows, got %d", n)
	}
}

func TestLoadRowsUnknownRun(t *testing.T) {
	s := openSQLite(t)
	if _, err := s.LoadRows(testutil.Context(t, 0), "missing"); !errors.Is(err, ErrRunNotFound) {
		t.Fatalf("expected ErrRunNotFound, got %v", err)
	}
}

func TestSaveRunRequiresRunID(t *testing.T) {
	s := openSQLite(t)
	report, results := sampleRun()
	report.RunID = ""
	if err := s.SaveRun(testutil.Context(t, 0), report, results); err == nil {
		t.Fatalf("expected error for empty run id")
	}
}
