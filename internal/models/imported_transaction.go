package models

// Processing status of an imported transaction.
const (
	StatusUnclassified = 0
	StatusPosted       = 1
)

// ImportedTransaction is one row of an uploaded bank statement. It is
// created unclassified by the importer and transitions to posted when
// the user classifies it into a category. Income and expense amounts
// are minor currency units; at most one of them is positive.
type ImportedTransaction struct {
	ID              int64  `json:"id"`
	OrganizationID  int64  `json:"organization_id"`
	AccountID       int64  `json:"account_id"`
	AccountName     string `json:"account_name"` // joined for presentation, not stored
	TransactionDate string `json:"transaction_date"`
	Description     string `json:"description"`
	IncomeAmount    int64  `json:"income_amount"`
	ExpenseAmount   int64  `json:"expense_amount"`
	Status          int    `json:"status"`
	JournalEntryID  *int64 `json:"journal_entry_id,omitempty"`
	CategoryID      *int64 `json:"category_id,omitempty"`
	ImportedAt      string `json:"imported_at"`
}

// TenantID implements TenantScoped.
func (t *ImportedTransaction) TenantID() int64 { return t.OrganizationID }
