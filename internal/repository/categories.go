package repository

import (
	"database/sql"
	"fmt"

	"github.com/dmatsui/bookkeeping-service/internal/apperr"
	"github.com/dmatsui/bookkeeping-service/internal/models"
)

// FindCategoryByID retrieves a tenant's category by id.
func (r *Repository) FindCategoryByID(orgID, id int64) (*models.Category, error) {
	c := &models.Category{}
	query := `
		SELECT id, organization_id, name
		FROM categories
		WHERE id = $1 AND organization_id = $2`
	err := r.db.QueryRow(query, id, orgID).Scan(&c.ID, &c.OrganizationID, &c.Name)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: category", apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return c, nil
}

// ListCategories returns the tenant's categories in id order.
func (r *Repository) ListCategories(orgID int64) ([]models.Category, error) {
	query := `
		SELECT id, organization_id, name
		FROM categories
		WHERE organization_id = $1
		ORDER BY id ASC`
	rows, err := r.db.Query(query, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		c := models.Category{}
		if err := rows.Scan(&c.ID, &c.OrganizationID, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// CreateCategory inserts a category (seeding path).
func (t *Tx) CreateCategory(c *models.Category) error {
	query := `
		INSERT INTO categories (organization_id, name)
		VALUES ($1, $2)
		RETURNING id`
	err := t.tx.QueryRow(query, c.OrganizationID, c.Name).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}
