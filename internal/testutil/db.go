// Package testutil provides the in-memory database used by repository
// and service tests.
package testutil

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// sqliteSchema mirrors repository.Schema with SQLite column types. The
// queries themselves are portable; only the DDL differs.
const sqliteSchema = `
CREATE TABLE categories (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    organization_id INTEGER NOT NULL,
    name TEXT NOT NULL
);

CREATE TABLE accounts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    organization_id INTEGER NOT NULL,
    name TEXT NOT NULL,
    is_visible INTEGER NOT NULL DEFAULT 1,
    offset_category_id INTEGER NOT NULL REFERENCES categories (id),
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);

CREATE TABLE journal_entries (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    organization_id INTEGER NOT NULL,
    transaction_date TEXT NOT NULL,
    debit_category_id INTEGER NOT NULL,
    credit_category_id INTEGER NOT NULL,
    debit_amount INTEGER NOT NULL CHECK (debit_amount >= 0),
    credit_amount INTEGER NOT NULL CHECK (credit_amount >= 0),
    summary TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);

CREATE TABLE general_ledger_entries (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    organization_id INTEGER NOT NULL,
    transaction_date TEXT NOT NULL,
    debit_category_id INTEGER NOT NULL,
    credit_category_id INTEGER NOT NULL,
    debit_amount INTEGER NOT NULL,
    credit_amount INTEGER NOT NULL,
    summary TEXT NOT NULL DEFAULT '',
    counterparty_id INTEGER,
    department_id INTEGER,
    item_id INTEGER,
    project_tag_id INTEGER,
    memo_tag_id INTEGER,
    source_type TEXT NOT NULL,
    source_id INTEGER NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);

CREATE TABLE imported_transactions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    organization_id INTEGER NOT NULL,
    account_id INTEGER NOT NULL REFERENCES accounts (id),
    transaction_date TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    income_amount INTEGER NOT NULL CHECK (income_amount >= 0),
    expense_amount INTEGER NOT NULL CHECK (expense_amount >= 0),
    status INTEGER NOT NULL DEFAULT 0,
    journal_entry_id INTEGER,
    category_id INTEGER,
    imported_at TEXT NOT NULL
);
`

// OpenDB returns an isolated in-memory database with the schema applied.
func OpenDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	// A second connection would see a different empty :memory: database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec(sqliteSchema); err != nil {
		t.Fatalf("creating test schema: %v", err)
	}
	return db
}
