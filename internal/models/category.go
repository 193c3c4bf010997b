package models

// Category is an accounting classification (expense or revenue type)
// a user assigns to an imported transaction. Read-only lookup data.
type Category struct {
	ID             int64  `json:"id"`
	OrganizationID int64  `json:"organization_id"`
	Name           string `json:"name"`
}

// TenantID implements TenantScoped.
func (c *Category) TenantID() int64 { return c.OrganizationID }
