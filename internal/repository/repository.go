package repository

import (
	"database/sql"
	"fmt"
)

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Tx groups the write operations of one atomic scope. Every multi-step
// write goes through WithTx so no partial state is ever visible.
type Tx struct {
	tx *sql.Tx
}

// WithTx runs fn inside a database transaction, committing on nil error
// and rolling back otherwise.
func (r *Repository) WithTx(fn func(*Tx) error) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(&Tx{tx: tx}); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
