package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
)

// schemaDDL holds the schema shared by the DuckDB and SQLite backends.
//
//go:embed schema.sql
var schemaDDL string

// SchemaDDL returns the schema DDL used for initializing result databases.
func SchemaDDL() string {
	return schemaDDL
}

// EnsureSchema applies the schema DDL to the provided database connection.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("store: db is nil")
	}
	_, err := db.ExecContext(ctx, schemaDDL)
	return err
}
