package repository

import (
	"database/sql"
	"fmt"

	"github.com/dmatsui/bookkeeping-service/internal/apperr"
	"github.com/dmatsui/bookkeeping-service/internal/models"
)

const accountColumns = `id, organization_id, name, is_visible, offset_category_id, created_at, updated_at`

func scanAccount(row *sql.Row) (*models.Account, error) {
	a := &models.Account{}
	err := row.Scan(&a.ID, &a.OrganizationID, &a.Name, &a.IsVisible,
		&a.OffsetCategoryID, &a.CreatedAt, &a.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: account", apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	return a, nil
}

// FindAccountByID retrieves a tenant's account by id.
func (r *Repository) FindAccountByID(orgID, id int64) (*models.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE id = $1 AND organization_id = $2`
	return scanAccount(r.db.QueryRow(query, id, orgID))
}

// FindAccountByName retrieves a tenant's account by display name.
func (r *Repository) FindAccountByName(orgID int64, name string) (*models.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE name = $1 AND organization_id = $2`
	return scanAccount(r.db.QueryRow(query, name, orgID))
}

// FindAccountByOffsetCategory retrieves the account whose offsetting
// category matches, used by the listing's indirect category filter.
func (r *Repository) FindAccountByOffsetCategory(orgID, categoryID int64) (*models.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE offset_category_id = $1 AND organization_id = $2`
	return scanAccount(r.db.QueryRow(query, categoryID, orgID))
}

// ListVisibleAccounts returns the tenant's visible accounts in id order.
func (r *Repository) ListVisibleAccounts(orgID int64) ([]models.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE organization_id = $1 AND is_visible
		ORDER BY id ASC`
	rows, err := r.db.Query(query, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		a := models.Account{}
		if err := rows.Scan(&a.ID, &a.OrganizationID, &a.Name, &a.IsVisible,
			&a.OffsetCategoryID, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// CreateAccount inserts an account (seeding path).
func (t *Tx) CreateAccount(a *models.Account) error {
	query := `
		INSERT INTO accounts (organization_id, name, is_visible, offset_category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := t.tx.QueryRow(query, a.OrganizationID, a.Name, a.IsVisible,
		a.OffsetCategoryID, a.CreatedAt, a.UpdatedAt).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}
