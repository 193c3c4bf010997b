package service

import (
	"fmt"
	"time"

	"github.com/dmatsui/bookkeeping-service/internal/apperr"
	"github.com/dmatsui/bookkeeping-service/internal/models"
	"github.com/dmatsui/bookkeeping-service/internal/repository"
)

// PostParams carries the user's classification of one imported
// transaction. Description, when set, overrides the imported one. The
// five dimension ids are independently optional.
type PostParams struct {
	CategoryID     int64
	Description    string
	CounterpartyID *int64
	DepartmentID   *int64
	ItemID         *int64
	ProjectTagID   *int64
	MemoTagID      *int64
}

// Post turns one classified transaction into a balanced journal entry
// and its general-ledger mirror, then transitions the source row to
// posted. Everything after validation runs in one transaction; a
// failure at any step leaves no trace.
func (s *Service) Post(orgID, txnID int64, params PostParams) (*models.JournalEntry, error) {
	if params.CategoryID == 0 {
		return nil, fmt.Errorf("%w: category is required", apperr.ErrValidation)
	}

	txn, err := s.GetImportedTransaction(orgID, txnID)
	if err != nil {
		return nil, err
	}
	if txn.Status != models.StatusUnclassified {
		return nil, fmt.Errorf("%w: transaction already posted", apperr.ErrConflict)
	}

	category, err := s.repo.FindCategoryByID(orgID, params.CategoryID)
	if err != nil {
		return nil, err
	}

	account, err := s.repo.FindAccountByID(orgID, txn.AccountID)
	if err != nil {
		return nil, err
	}

	// The account's offsetting category ("cash at this account") is the
	// automatic counter-entry.
	offset, err := s.repo.FindCategoryByID(orgID, account.OffsetCategoryID)
	if err != nil {
		return nil, fmt.Errorf("offsetting category for account %q: %w", account.Name, err)
	}

	// A deposit debits the bank category and credits the chosen one; a
	// withdrawal is the mirror image.
	var debitID, creditID, amount int64
	if txn.IncomeAmount > 0 {
		debitID, creditID, amount = offset.ID, category.ID, txn.IncomeAmount
	} else {
		debitID, creditID, amount = category.ID, offset.ID, txn.ExpenseAmount
	}

	summary := params.Description
	if summary == "" {
		summary = txn.Description
	}

	now := time.Now().Format(timestampLayout)
	entry := &models.JournalEntry{
		OrganizationID:   orgID,
		TransactionDate:  txn.TransactionDate,
		DebitCategoryID:  debitID,
		CreditCategoryID: creditID,
		DebitAmount:      amount,
		CreditAmount:     amount,
		Summary:          summary,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	err = s.repo.WithTx(func(tx *repository.Tx) error {
		if err := tx.CreateJournalEntry(entry); err != nil {
			return err
		}
		ledger := &models.GeneralLedgerEntry{
			OrganizationID:   entry.OrganizationID,
			TransactionDate:  entry.TransactionDate,
			DebitCategoryID:  entry.DebitCategoryID,
			CreditCategoryID: entry.CreditCategoryID,
			DebitAmount:      entry.DebitAmount,
			CreditAmount:     entry.CreditAmount,
			Summary:          entry.Summary,
			CounterpartyID:   params.CounterpartyID,
			DepartmentID:     params.DepartmentID,
			ItemID:           params.ItemID,
			ProjectTagID:     params.ProjectTagID,
			MemoTagID:        params.MemoTagID,
			SourceType:       models.SourceTypeImportedTransaction,
			SourceID:         txn.ID,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if err := tx.CreateLedgerEntry(ledger); err != nil {
			return err
		}
		return tx.MarkPosted(orgID, txn.ID, entry.ID, category.ID, params.Description)
	})
	if err != nil {
		return nil, err
	}

	s.log.Infof("Posted transaction %d: debit %d / credit %d, amount %d",
		txn.ID, debitID, creditID, amount)
	return entry, nil
}
