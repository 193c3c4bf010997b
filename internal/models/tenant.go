package models

// TenantScoped is implemented by every entity owned by a single
// organization. Ownership checks go through this interface instead of
// per-type field access.
type TenantScoped interface {
	TenantID() int64
}
