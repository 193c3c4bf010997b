package models

// JournalEntry is one balanced double-entry record. DebitAmount and
// CreditAmount are always equal.
type JournalEntry struct {
	ID               int64  `json:"id"`
	OrganizationID   int64  `json:"organization_id"`
	TransactionDate  string `json:"transaction_date"`
	DebitCategoryID  int64  `json:"debit_category_id"`
	CreditCategoryID int64  `json:"credit_category_id"`
	DebitAmount      int64  `json:"debit_amount"`
	CreditAmount     int64  `json:"credit_amount"`
	Summary          string `json:"summary"`
	CreatedAt        string `json:"created_at"`
	UpdatedAt        string `json:"updated_at"`
}

// TenantID implements TenantScoped.
func (j *JournalEntry) TenantID() int64 { return j.OrganizationID }
