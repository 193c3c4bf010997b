package repository

import "database/sql"

// Schema defines the bookkeeping tables. Dates and timestamps are
// stored as text (YYYY-MM-DD / YYYY-MM-DD HH:MM:SS) so date-range
// filters are plain lexicographic comparisons.
const Schema = `
CREATE TABLE IF NOT EXISTS categories (
    id BIGSERIAL PRIMARY KEY,
    organization_id BIGINT NOT NULL,
    name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS accounts (
    id BIGSERIAL PRIMARY KEY,
    organization_id BIGINT NOT NULL,
    name TEXT NOT NULL,
    is_visible BOOLEAN NOT NULL DEFAULT TRUE,
    offset_category_id BIGINT NOT NULL REFERENCES categories (id),
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS journal_entries (
    id BIGSERIAL PRIMARY KEY,
    organization_id BIGINT NOT NULL,
    transaction_date TEXT NOT NULL,
    debit_category_id BIGINT NOT NULL,
    credit_category_id BIGINT NOT NULL,
    debit_amount BIGINT NOT NULL CHECK (debit_amount >= 0),
    credit_amount BIGINT NOT NULL CHECK (credit_amount >= 0),
    summary TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS general_ledger_entries (
    id BIGSERIAL PRIMARY KEY,
    organization_id BIGINT NOT NULL,
    transaction_date TEXT NOT NULL,
    debit_category_id BIGINT NOT NULL,
    credit_category_id BIGINT NOT NULL,
    debit_amount BIGINT NOT NULL,
    credit_amount BIGINT NOT NULL,
    summary TEXT NOT NULL DEFAULT '',
    counterparty_id BIGINT,
    department_id BIGINT,
    item_id BIGINT,
    project_tag_id BIGINT,
    memo_tag_id BIGINT,
    source_type TEXT NOT NULL,
    source_id BIGINT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_ledger_source
    ON general_ledger_entries (source_type, source_id);

CREATE TABLE IF NOT EXISTS imported_transactions (
    id BIGSERIAL PRIMARY KEY,
    organization_id BIGINT NOT NULL,
    account_id BIGINT NOT NULL REFERENCES accounts (id),
    transaction_date TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    income_amount BIGINT NOT NULL CHECK (income_amount >= 0),
    expense_amount BIGINT NOT NULL CHECK (expense_amount >= 0),
    status INTEGER NOT NULL DEFAULT 0,
    journal_entry_id BIGINT,
    category_id BIGINT,
    imported_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_imported_transactions_org_date
    ON imported_transactions (organization_id, transaction_date);
`

// InitSchema creates all tables if they do not exist.
func InitSchema(db *sql.DB) error {
	_, err := db.Exec(Schema)
	return err
}
