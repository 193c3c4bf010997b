package service

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmatsui/bookkeeping-service/internal/apperr"
	"github.com/dmatsui/bookkeeping-service/internal/models"
	"github.com/dmatsui/bookkeeping-service/internal/repository"
)

// Import parses an uploaded statement and persists every usable row as
// an unclassified transaction for the given account. The batch is
// all-or-nothing: any parse or insert failure leaves nothing committed.
// Returns the number of imported rows.
func (s *Service) Import(orgID, accountID int64, filename string, file io.Reader) (int, error) {
	if accountID == 0 {
		return 0, fmt.Errorf("%w: account is required", apperr.ErrValidation)
	}
	if file == nil {
		return 0, fmt.Errorf("%w: file is required", apperr.ErrValidation)
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	parser := s.parsers.Get(ext)
	if parser == nil {
		return 0, fmt.Errorf("%w: unsupported file type %q, expected csv, xlsx or xls", apperr.ErrValidation, ext)
	}

	account, err := s.repo.FindAccountByID(orgID, accountID)
	if err != nil {
		return 0, err
	}
	if err := ensureTenant(account, orgID); err != nil {
		return 0, err
	}

	rows, err := parser.Parse(file)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", filename, err)
	}

	importedAt := time.Now().Format(timestampLayout)
	err = s.repo.WithTx(func(tx *repository.Tx) error {
		for _, row := range rows {
			txn := &models.ImportedTransaction{
				OrganizationID:  orgID,
				AccountID:       account.ID,
				TransactionDate: row.Date,
				Description:     row.Description,
				IncomeAmount:    row.Income,
				ExpenseAmount:   row.Expense,
				Status:          models.StatusUnclassified,
				ImportedAt:      importedAt,
			}
			if err := tx.CreateImportedTransaction(txn); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.log.Infof("Imported %d transactions into account %q", len(rows), account.Name)
	return len(rows), nil
}

// ListOptions narrows the imported-transaction listing. The category
// filter is indirect: it selects the account whose offsetting category
// matches and filters by that account.
type ListOptions struct {
	AccountName string
	CategoryID  int64
	Status      *int
	DateFrom    string
	DateTo      string
}

// Listing is the imported-transaction list plus the account filter options.
type Listing struct {
	Transactions []models.ImportedTransaction `json:"transactions"`
	Accounts     []models.Account             `json:"accounts"`
}

// ListImportedTransactions returns the tenant's statement rows, newest
// transaction date first, with the visible accounts for the filter form.
func (s *Service) ListImportedTransactions(orgID int64, opts ListOptions) (*Listing, error) {
	accounts, err := s.repo.ListVisibleAccounts(orgID)
	if err != nil {
		return nil, err
	}

	filter := repository.ListFilter{
		Status:   opts.Status,
		DateFrom: opts.DateFrom,
		DateTo:   opts.DateTo,
	}

	empty := false
	if opts.AccountName != "" {
		account, err := s.repo.FindAccountByName(orgID, opts.AccountName)
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			empty = true
		case err != nil:
			return nil, err
		default:
			filter.AccountID = account.ID
		}
	}
	if opts.CategoryID != 0 {
		account, err := s.repo.FindAccountByOffsetCategory(orgID, opts.CategoryID)
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			// No account tied to that category: the filter selects nothing
			// extra, matching the original behavior.
		case err != nil:
			return nil, err
		default:
			if filter.AccountID != 0 && filter.AccountID != account.ID {
				empty = true
			} else {
				filter.AccountID = account.ID
			}
		}
	}
	if empty {
		return &Listing{Transactions: nil, Accounts: accounts}, nil
	}

	txns, err := s.repo.ListImportedTransactions(orgID, filter)
	if err != nil {
		return nil, err
	}
	return &Listing{Transactions: txns, Accounts: accounts}, nil
}
