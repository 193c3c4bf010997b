package models

// Account is a bank or cash account a statement can be imported into.
// OffsetCategoryID points at the category representing money held in
// this account (e.g. "Ordinary Deposit"), used as the automatic
// counter-entry when posting.
type Account struct {
	ID               int64  `json:"id"`
	OrganizationID   int64  `json:"organization_id"`
	Name             string `json:"name"`
	IsVisible        bool   `json:"is_visible"`
	OffsetCategoryID int64  `json:"offset_category_id"`
	CreatedAt        string `json:"created_at"`
	UpdatedAt        string `json:"updated_at"`
}

// TenantID implements TenantScoped.
func (a *Account) TenantID() int64 { return a.OrganizationID }
