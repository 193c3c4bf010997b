package models

// SourceTypeImportedTransaction tags ledger entries produced by posting
// an imported transaction.
const SourceTypeImportedTransaction = "imported_transaction"

// GeneralLedgerEntry is the denormalized ledger mirror of a journal
// entry, carrying the optional reporting dimensions and a provenance
// pair pointing back at the record that produced it.
type GeneralLedgerEntry struct {
	ID               int64  `json:"id"`
	OrganizationID   int64  `json:"organization_id"`
	TransactionDate  string `json:"transaction_date"`
	DebitCategoryID  int64  `json:"debit_category_id"`
	CreditCategoryID int64  `json:"credit_category_id"`
	DebitAmount      int64  `json:"debit_amount"`
	CreditAmount     int64  `json:"credit_amount"`
	Summary          string `json:"summary"`
	CounterpartyID   *int64 `json:"counterparty_id,omitempty"`
	DepartmentID     *int64 `json:"department_id,omitempty"`
	ItemID           *int64 `json:"item_id,omitempty"`
	ProjectTagID     *int64 `json:"project_tag_id,omitempty"`
	MemoTagID        *int64 `json:"memo_tag_id,omitempty"`
	SourceType       string `json:"source_type"`
	SourceID         int64  `json:"source_id"`
	CreatedAt        string `json:"created_at"`
	UpdatedAt        string `json:"updated_at"`
}

// TenantID implements TenantScoped.
func (g *GeneralLedgerEntry) TenantID() int64 { return g.OrganizationID }
