package sqlindex

import (
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// Schema version tracking:
// 1 - selector_keys and table_meta
const currentSchemaVersion = 1

// Table is a SQLite-backed key table.
// Uses WAL mode for concurrent read access.
type Table struct {
	db     *sql.DB
	levels int
}

// Open creates or opens a key table with the given number of levels at
// path. Reopening an existing database with a different level count fails.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode
//   - 5-second busy timeout for lock contention
func Open(path string, levels int) (*Table, error) {
	if levels < 0 {
		return nil, fmt.Errorf("invalid level count %d", levels)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}
	if err := applySchema(db, levels); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	slog.Info("key table opened",
		"path", path,
		"levels", levels,
	)
	return &Table{db: db, levels: levels}, nil
}

// Close closes the database connection.
func (t *Table) Close() error {
	if t.db == nil {
		return nil
	}
	return t.db.Close()
}

// DB returns the underlying sql.DB for direct queries.
func (t *Table) DB() *sql.DB {
	return t.db
}

// Levels returns the number of key columns.
func (t *Table) Levels() int {
	return t.levels
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

// schemaSQL returns the DDL for a table with the given number of levels.
func schemaSQL(levels int) string {
	var b strings.Builder
	b.WriteString("CREATE TABLE IF NOT EXISTS table_meta (\n")
	b.WriteString("\tname TEXT PRIMARY KEY,\n\tvalue INTEGER NOT NULL\n);\n")
	b.WriteString("CREATE TABLE IF NOT EXISTS selector_keys (\n")
	b.WriteString("\tid INTEGER PRIMARY KEY,\n")
	for _, col := range levelColumns(levels) {
		// untyped: no affinity, atoms keep their storage class
		fmt.Fprintf(&b, "\t%s,\n", col)
	}
	b.WriteString("\tvalue INTEGER NOT NULL\n);\n")
	return b.String()
}

// applySchema creates tables if they don't exist and checks the stored
// level count. This function is idempotent.
func applySchema(db *sql.DB, levels int) error {
	if _, err := db.Exec(schemaSQL(levels)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	if _, err := db.Exec(
		"INSERT INTO table_meta (name, value) VALUES ('levels', ?) ON CONFLICT(name) DO NOTHING",
		levels,
	); err != nil {
		return fmt.Errorf("record levels: %w", err)
	}
	var stored int
	if err := db.QueryRow("SELECT value FROM table_meta WHERE name = 'levels'").Scan(&stored); err != nil {
		return fmt.Errorf("read levels: %w", err)
	}
	if stored != levels {
		return fmt.Errorf("database has %d levels, requested %d", stored, levels)
	}

	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}
	return nil
}

// levelColumns returns the key column names l0 .. l{n-1}.
func levelColumns(n int) []string {
	cols := make([]string, n)
	for i := range cols {
		cols[i] = fmt.Sprintf("l%d", i)
	}
	return cols
}

// verifyPragma checks that a pragma is set to the expected value.
// Used for testing.
func (t *Table) verifyPragma(name, expected string) error {
	var value string
	if err := t.db.QueryRow(fmt.Sprintf("PRAGMA %s", name)).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}
