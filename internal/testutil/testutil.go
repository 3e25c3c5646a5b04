// Package testutil provides shared helpers for repository and handler
// tests. Tests run against an in-memory SQLite database carrying the same
// two tables as the production MySQL schema; the repositories use only
// portable SQL, so behavior matches.
package testutil

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE accounts (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    email         TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE signoffs (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    kind            TEXT NOT NULL,
    signoff_date    TEXT NOT NULL,
    manager_name    TEXT,
    deputy_name     TEXT,
    director_name   TEXT,
    overwrites_used INTEGER NOT NULL DEFAULT 0,
    signed_at       DATETIME NOT NULL,
    fridge_temp     REAL,
    notes           TEXT,
    UNIQUE (kind, signoff_date)
);
`

// OpenTestDB opens an in-memory SQLite database named after the test and
// applies the schema. The shared cache keeps the database alive across
// the pool's connections; cleanup closes it.
func OpenTestDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", "file:"+name+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// Str returns a pointer to s, for filling optional submission fields.
func Str(s string) *string { return &s }

// Float returns a pointer to f.
func Float(f float64) *float64 { return &f }
