package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"qfrbench/internal/evaluation"
	"qfrbench/internal/record"
)

// Driver names registered by the imported database/sql drivers.
const (
	DriverDuckDB = "duckdb"
	DriverSQLite = "sqlite"
)

// ErrUnsupportedDSN is returned for DSNs without a duckdb:// or sqlite:// scheme.
var ErrUnsupportedDSN = errors.New("unsupported database dsn")

// ErrRunNotFound is returned when a run id is not stored.
var ErrRunNotFound = errors.New("run not found")

// ParseDSN splits a duckdb:// or sqlite:// DSN into driver and path. An empty
// path opens an in-memory database.
func ParseDSN(dsn string) (driver, path string, err error) {
	scheme, rest, ok := strings.Cut(strings.TrimSpace(dsn), "://")
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrUnsupportedDSN, dsn)
	}
	switch strings.ToLower(scheme) {
	case DriverDuckDB:
		return DriverDuckDB, rest, nil
	case DriverSQLite, "sqlite3":
		if rest == "" {
			rest = ":memory:"
		}
		return DriverSQLite, rest, nil
	default:
		return "", "", fmt.Errorf("%w: scheme %q", ErrUnsupportedDSN, scheme)
	}
}

// Store persists evaluation runs.
type Store struct {
	db     *sql.DB
	driver string
}

// Open connects to dsn, creating the parent directory of file databases, and
// applies the schema.
func Open(ctx context.Context, dsn string) (*Store, error) {
	driver, path, err := ParseDSN(dsn)
	if err != nil {
		return nil, err
	}
	if path != "" && path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}
	db, err := sql.Open(driver, path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if driver == DriverSQLite {
		// SQLite allows one writer at a time.
		db.SetMaxOpenConns(1)
		for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA foreign_keys=ON"} {
			if _, err := db.ExecContext(ctx, pragma); err != nil {
				_ = db.Close()
				return nil, fmt.Errorf("set pragma: %w", err)
			}
		}
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	if err := EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db, driver: driver}, nil
}

// Driver returns the database/sql driver name in use.
func (s *Store) Driver() string {
	return s.driver
}

// DB exposes the underlying connection.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun writes the report and its result rows in one transaction.
func (s *Store) SaveRun(ctx context.Context, report evaluation.Report, results *record.Results) (err error) {
	if strings.TrimSpace(report.RunID) == "" {
		return errors.New("save run: run id is empty")
	}
	configJSON, err := json.Marshal(report.Config)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	summaryJSON, err := json.Marshal(report.Summary)
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO runs (run_id, started_at, finished_at, check_equality, cancelled, config, summary) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		report.RunID, formatTime(report.StartedAt), formatTime(report.FinishedAt),
		report.CheckEquality, report.Cancelled, string(configJSON), string(summaryJSON),
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for pos, label := range results.Labels() {
		for seq, row := range results.Rows(label) {
			fields, marshalErr := json.Marshal(row)
			if marshalErr != nil {
				err = fmt.Errorf("marshal row: %w", marshalErr)
				return err
			}
			benchmark, qubits := rowIdentity(row)
			if _, err = tx.ExecContext(ctx,
				`INSERT INTO results (result_id, run_id, label, label_pos, seq, benchmark, n_qubits, fields) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				uuid.NewString(), report.RunID, label, pos, seq, benchmark, qubits, string(fields),
			); err != nil {
				return fmt.Errorf("insert result: %w", err)
			}
		}
	}

	for _, outcome := range report.Outcomes {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO outcomes (run_id, seq, benchmark, n_qubits, label, kind, error, duration_ns) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			report.RunID, outcome.Index, outcome.Benchmark, outcome.Qubits, outcome.Label,
			string(outcome.Kind), nullString(outcome.Error), outcome.Duration.Nanoseconds(),
		); err != nil {
			return fmt.Errorf("insert outcome: %w", err)
		}
	}

	for _, mismatch := range report.Mismatches {
		labels, marshalErr := json.Marshal(mismatch.Labels)
		if marshalErr != nil {
			err = fmt.Errorf("marshal labels: %w", marshalErr)
			return err
		}
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO mismatches (run_id, benchmark, n_qubits, distinct_count, labels) VALUES (?, ?, ?, ?, ?)`,
			report.RunID, mismatch.Benchmark, mismatch.Qubits, mismatch.Distinct, string(labels),
		); err != nil {
			return fmt.Errorf("insert mismatch: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// LoadRows reads back the rows of a run grouped by label in their original order.
func (s *Store) LoadRows(ctx context.Context, runID string) (*record.Results, error) {
	var exists int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs WHERE run_id = ?`, runID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("lookup run: %w", err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT label, fields FROM results WHERE run_id = ? ORDER BY label_pos, seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	results := record.NewResults()
	for rows.Next() {
		var label, payload string
		if err := rows.Scan(&label, &payload); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		var fields record.Fields
		if err := json.Unmarshal([]byte(payload), &fields); err != nil {
			return nil, fmt.Errorf("decode result: %w", err)
		}
		results.Append(label, fields)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}
	return results, nil
}

// RunSummary is one row of the runs table.
type RunSummary struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time
	Cancelled  bool
	Summary    evaluation.Summary
}

// Runs lists stored runs, most recent first.
func (s *Store) Runs(ctx context.Context) ([]RunSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, started_at, finished_at, cancelled, summary FROM runs ORDER BY started_at DESC, run_id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var (
			run               RunSummary
			started, finished string
			summary           string
		)
		if err := rows.Scan(&run.RunID, &started, &finished, &run.Cancelled, &summary); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if run.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, fmt.Errorf("parse started_at: %w", err)
		}
		if run.FinishedAt, err = time.Parse(time.RFC3339Nano, finished); err != nil {
			return nil, fmt.Errorf("parse finished_at: %w", err)
		}
		if err := json.Unmarshal([]byte(summary), &run.Summary); err != nil {
			return nil, fmt.Errorf("decode summary: %w", err)
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

// OutcomeCounts returns the number of stored outcomes per kind for a run.
func (s *Store) OutcomeCounts(ctx context.Context, runID string) (map[evaluation.OutcomeKind]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT kind, COUNT(*) FROM outcomes WHERE run_id = ? GROUP BY kind`, runID)
	if err != nil {
		return nil, fmt.Errorf("query outcomes: %w", err)
	}
	defer rows.Close()
	counts := map[evaluation.OutcomeKind]int{}
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("scan outcome: %w", err)
		}
		counts[evaluation.OutcomeKind(kind)] = n
	}
	return counts, rows.Err()
}

func rowIdentity(row record.Fields) (any, any) {
	var benchmark, qubits any
	if v, ok := row.Get("name"); ok {
		if s, ok := v.(string); ok {
			benchmark = s
		}
	}
	if v, ok := row.Get("n_qubits"); ok {
		switch n := v.(type) {
		case int:
			qubits = int64(n)
		case int64:
			qubits = n
		case float64:
			qubits = int64(n)
		}
	}
	return benchmark, qubits
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
