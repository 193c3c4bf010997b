package repository

import (
	"database/sql"
	"fmt"

	"github.com/dmatsui/bookkeeping-service/internal/apperr"
	"github.com/dmatsui/bookkeeping-service/internal/models"
)

// FindJournalEntry retrieves a tenant's journal entry by id.
func (r *Repository) FindJournalEntry(orgID, id int64) (*models.JournalEntry, error) {
	e := &models.JournalEntry{}
	query := `
		SELECT id, organization_id, transaction_date, debit_category_id,
			credit_category_id, debit_amount, credit_amount, summary,
			created_at, updated_at
		FROM journal_entries
		WHERE id = $1 AND organization_id = $2`
	err := r.db.QueryRow(query, id, orgID).Scan(&e.ID, &e.OrganizationID,
		&e.TransactionDate, &e.DebitCategoryID, &e.CreditCategoryID,
		&e.DebitAmount, &e.CreditAmount, &e.Summary, &e.CreatedAt, &e.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: journal entry", apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find journal entry: %w", err)
	}
	return e, nil
}

// ListLedgerEntriesBySource returns the ledger entries whose provenance
// points at the given source record.
func (r *Repository) ListLedgerEntriesBySource(orgID int64, sourceType string, sourceID int64) ([]models.GeneralLedgerEntry, error) {
	query := `
		SELECT id, organization_id, transaction_date, debit_category_id,
			credit_category_id, debit_amount, credit_amount, summary,
			counterparty_id, department_id, item_id, project_tag_id,
			memo_tag_id, source_type, source_id, created_at, updated_at
		FROM general_ledger_entries
		WHERE organization_id = $1 AND source_type = $2 AND source_id = $3
		ORDER BY id ASC`
	rows, err := r.db.Query(query, orgID, sourceType, sourceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []models.GeneralLedgerEntry
	for rows.Next() {
		e := models.GeneralLedgerEntry{}
		var cp, dep, item, proj, memo sql.NullInt64
		if err := rows.Scan(&e.ID, &e.OrganizationID, &e.TransactionDate,
			&e.DebitCategoryID, &e.CreditCategoryID, &e.DebitAmount,
			&e.CreditAmount, &e.Summary, &cp, &dep, &item, &proj, &memo,
			&e.SourceType, &e.SourceID, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		e.CounterpartyID = nullableID(cp)
		e.DepartmentID = nullableID(dep)
		e.ItemID = nullableID(item)
		e.ProjectTagID = nullableID(proj)
		e.MemoTagID = nullableID(memo)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func nullableID(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	id := v.Int64
	return &id
}

// CreateJournalEntry inserts a balanced journal entry.
func (t *Tx) CreateJournalEntry(e *models.JournalEntry) error {
	query := `
		INSERT INTO journal_entries
			(organization_id, transaction_date, debit_category_id,
			 credit_category_id, debit_amount, credit_amount, summary,
			 created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := t.tx.QueryRow(query, e.OrganizationID, e.TransactionDate,
		e.DebitCategoryID, e.CreditCategoryID, e.DebitAmount, e.CreditAmount,
		e.Summary, e.CreatedAt, e.UpdatedAt).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("failed to create journal entry: %w", err)
	}
	return nil
}

// CreateLedgerEntry inserts the general-ledger mirror of a journal entry.
func (t *Tx) CreateLedgerEntry(e *models.GeneralLedgerEntry) error {
	query := `
		INSERT INTO general_ledger_entries
			(organization_id, transaction_date, debit_category_id,
			 credit_category_id, debit_amount, credit_amount, summary,
			 counterparty_id, department_id, item_id, project_tag_id,
			 memo_tag_id, source_type, source_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id`
	err := t.tx.QueryRow(query, e.OrganizationID, e.TransactionDate,
		e.DebitCategoryID, e.CreditCategoryID, e.DebitAmount, e.CreditAmount,
		e.Summary, e.CounterpartyID, e.DepartmentID, e.ItemID, e.ProjectTagID,
		e.MemoTagID, e.SourceType, e.SourceID, e.CreatedAt, e.UpdatedAt).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("failed to create ledger entry: %w", err)
	}
	return nil
}

// DeleteLedgerEntriesBySource removes every ledger entry produced by
// the given source record.
func (t *Tx) DeleteLedgerEntriesBySource(orgID int64, sourceType string, sourceID int64) error {
	query := `
		DELETE FROM general_ledger_entries
		WHERE organization_id = $1 AND source_type = $2 AND source_id = $3`
	if _, err := t.tx.Exec(query, orgID, sourceType, sourceID); err != nil {
		return fmt.Errorf("failed to delete ledger entries: %w", err)
	}
	return nil
}

// DeleteJournalEntry removes a journal entry.
func (t *Tx) DeleteJournalEntry(orgID, id int64) error {
	query := `DELETE FROM journal_entries WHERE id = $1 AND organization_id = $2`
	if _, err := t.tx.Exec(query, id, orgID); err != nil {
		return fmt.Errorf("failed to delete journal entry: %w", err)
	}
	return nil
}
