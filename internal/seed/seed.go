// Package seed loads a chart-of-accounts YAML file into the store.
// Accounts and categories are managed outside the import/posting
// pipeline; this is the administrative path that creates them.
package seed

import (
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dmatsui/bookkeeping-service/internal/apperr"
	"github.com/dmatsui/bookkeeping-service/internal/models"
	"github.com/dmatsui/bookkeeping-service/internal/repository"
)

// Chart is the YAML seed file layout:
//
//	categories:
//	  - name: Ordinary Deposit
//	  - name: Sales Revenue
//	accounts:
//	  - name: Mizuho Checking
//	    offset_category: Ordinary Deposit
//	    visible: true
type Chart struct {
	Categories []struct {
		Name string `yaml:"name"`
	} `yaml:"categories"`
	Accounts []struct {
		Name           string `yaml:"name"`
		OffsetCategory string `yaml:"offset_category"`
		Visible        *bool  `yaml:"visible"`
	} `yaml:"accounts"`
}

// Parse reads and validates a chart file.
func Parse(r io.Reader) (*Chart, error) {
	var chart Chart
	if err := yaml.NewDecoder(r).Decode(&chart); err != nil {
		return nil, fmt.Errorf("%w: decoding chart: %v", apperr.ErrParse, err)
	}
	for i, c := range chart.Categories {
		if c.Name == "" {
			return nil, fmt.Errorf("%w: category %d has no name", apperr.ErrValidation, i+1)
		}
	}
	for i, a := range chart.Accounts {
		if a.Name == "" {
			return nil, fmt.Errorf("%w: account %d has no name", apperr.ErrValidation, i+1)
		}
		if a.OffsetCategory == "" {
			return nil, fmt.Errorf("%w: account %q has no offset_category", apperr.ErrValidation, a.Name)
		}
	}
	return &chart, nil
}

// Apply creates the chart's categories and accounts for one tenant in a
// single transaction. Account offset categories must reference
// categories defined in the same chart.
func Apply(repo *repository.Repository, orgID int64, chart *Chart) error {
	now := time.Now().Format("2006-01-02 15:04:05")
	return repo.WithTx(func(tx *repository.Tx) error {
		categoryIDs := make(map[string]int64, len(chart.Categories))
		for _, c := range chart.Categories {
			category := &models.Category{OrganizationID: orgID, Name: c.Name}
			if err := tx.CreateCategory(category); err != nil {
				return err
			}
			categoryIDs[c.Name] = category.ID
		}

		for _, a := range chart.Accounts {
			offsetID, ok := categoryIDs[a.OffsetCategory]
			if !ok {
				return fmt.Errorf("%w: account %q references unknown category %q",
					apperr.ErrValidation, a.Name, a.OffsetCategory)
			}
			visible := true
			if a.Visible != nil {
				visible = *a.Visible
			}
			account := &models.Account{
				OrganizationID:   orgID,
				Name:             a.Name,
				IsVisible:        visible,
				OffsetCategoryID: offsetID,
				CreatedAt:        now,
				UpdatedAt:        now,
			}
			if err := tx.CreateAccount(account); err != nil {
				return err
			}
		}
		return nil
	})
}
