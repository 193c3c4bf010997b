package repository

import (
	"database/sql"
	"fmt"

	"github.com/dmatsui/bookkeeping-service/internal/apperr"
	"github.com/dmatsui/bookkeeping-service/internal/models"
)

// ListFilter narrows the imported-transaction listing. Zero values mean
// "no filter". Dates are inclusive YYYY-MM-DD bounds.
type ListFilter struct {
	AccountID int64
	Status    *int
	DateFrom  string
	DateTo    string
}

const transactionColumns = `t.id, t.organization_id, t.account_id, a.name,
		t.transaction_date, t.description, t.income_amount, t.expense_amount,
		t.status, t.journal_entry_id, t.category_id, t.imported_at`

func scanTransaction(scan func(dest ...any) error) (*models.ImportedTransaction, error) {
	t := &models.ImportedTransaction{}
	var journalID, categoryID sql.NullInt64
	err := scan(&t.ID, &t.OrganizationID, &t.AccountID, &t.AccountName,
		&t.TransactionDate, &t.Description, &t.IncomeAmount, &t.ExpenseAmount,
		&t.Status, &journalID, &categoryID, &t.ImportedAt)
	if err != nil {
		return nil, err
	}
	if journalID.Valid {
		t.JournalEntryID = &journalID.Int64
	}
	if categoryID.Valid {
		t.CategoryID = &categoryID.Int64
	}
	return t, nil
}

// FindImportedTransaction retrieves one imported transaction with its
// account name resolved.
func (r *Repository) FindImportedTransaction(orgID, id int64) (*models.ImportedTransaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM imported_transactions t
		JOIN accounts a ON a.id = t.account_id
		WHERE t.id = $1 AND t.organization_id = $2`
	txn, err := scanTransaction(r.db.QueryRow(query, id, orgID).Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: imported transaction", apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find imported transaction: %w", err)
	}
	return txn, nil
}

// ListImportedTransactions returns the tenant's imported transactions,
// newest transaction date first.
func (r *Repository) ListImportedTransactions(orgID int64, filter ListFilter) ([]models.ImportedTransaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM imported_transactions t
		JOIN accounts a ON a.id = t.account_id
		WHERE t.organization_id = $1`
	args := []any{orgID}

	if filter.AccountID != 0 {
		args = append(args, filter.AccountID)
		query += fmt.Sprintf(" AND t.account_id = $%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(" AND t.status = $%d", len(args))
	}
	if filter.DateFrom != "" {
		args = append(args, filter.DateFrom)
		query += fmt.Sprintf(" AND t.transaction_date >= $%d", len(args))
	}
	if filter.DateTo != "" {
		args = append(args, filter.DateTo)
		query += fmt.Sprintf(" AND t.transaction_date <= $%d", len(args))
	}
	query += " ORDER BY t.transaction_date DESC, t.id DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list imported transactions: %w", err)
	}
	defer rows.Close()

	var txns []models.ImportedTransaction
	for rows.Next() {
		txn, err := scanTransaction(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan imported transaction: %w", err)
		}
		txns = append(txns, *txn)
	}
	return txns, rows.Err()
}

// CreateImportedTransaction inserts one unclassified statement row.
func (t *Tx) CreateImportedTransaction(txn *models.ImportedTransaction) error {
	query := `
		INSERT INTO imported_transactions
			(organization_id, account_id, transaction_date, description,
			 income_amount, expense_amount, status, imported_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := t.tx.QueryRow(query, txn.OrganizationID, txn.AccountID,
		txn.TransactionDate, txn.Description, txn.IncomeAmount,
		txn.ExpenseAmount, txn.Status, txn.ImportedAt).Scan(&txn.ID)
	if err != nil {
		return fmt.Errorf("failed to create imported transaction: %w", err)
	}
	return nil
}

// MarkPosted transitions a transaction unclassified -> posted as a
// single compare-and-swap. A concurrent posting that already won the
// race leaves zero rows affected, reported as ErrConflict. An empty
// description keeps the original one.
func (t *Tx) MarkPosted(orgID, id, journalEntryID, categoryID int64, description string) error {
	query := `
		UPDATE imported_transactions
		SET status = $1,
			journal_entry_id = $2,
			category_id = $3,
			description = CASE WHEN $4 = '' THEN description ELSE $4 END
		WHERE id = $5 AND organization_id = $6 AND status = $7`
	res, err := t.tx.Exec(query, models.StatusPosted, journalEntryID, categoryID,
		description, id, orgID, models.StatusUnclassified)
	if err != nil {
		return fmt.Errorf("failed to mark transaction posted: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to mark transaction posted: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: transaction already posted", apperr.ErrConflict)
	}
	return nil
}

// ResetUnclassified undoes a posting's status transition, clearing the
// journal link and category selection.
func (t *Tx) ResetUnclassified(orgID, id int64) error {
	query := `
		UPDATE imported_transactions
		SET status = $1, journal_entry_id = NULL, category_id = NULL
		WHERE id = $2 AND organization_id = $3`
	res, err := t.tx.Exec(query, models.StatusUnclassified, id, orgID)
	if err != nil {
		return fmt.Errorf("failed to reset transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to reset transaction: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: imported transaction", apperr.ErrNotFound)
	}
	return nil
}

// DeleteImportedTransaction removes a statement row.
func (t *Tx) DeleteImportedTransaction(orgID, id int64) error {
	res, err := t.tx.Exec(`DELETE FROM imported_transactions WHERE id = $1 AND organization_id = $2`, id, orgID)
	if err != nil {
		return fmt.Errorf("failed to delete imported transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete imported transaction: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: imported transaction", apperr.ErrNotFound)
	}
	return nil
}
