package service

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/dmatsui/bookkeeping-service/internal/apperr"
	"github.com/dmatsui/bookkeeping-service/internal/models"
	"github.com/dmatsui/bookkeeping-service/internal/repository"
	"github.com/dmatsui/bookkeeping-service/internal/tabular"
)

const timestampLayout = "2006-01-02 15:04:05"

// Service handles business logic
type Service struct {
	repo    *repository.Repository
	parsers *tabular.Registry
	log     *logrus.Logger
}

// NewService initializes a new service
func NewService(repo *repository.Repository, log *logrus.Logger) *Service {
	return &Service{repo: repo, parsers: tabular.DefaultRegistry(), log: log}
}

// ensureTenant rejects entities that belong to another organization.
// Queries are already tenant-scoped; this is the typed ownership check
// every tenant-owned entity supports.
func ensureTenant(e models.TenantScoped, orgID int64) error {
	if e.TenantID() != orgID {
		return fmt.Errorf("%w: record belongs to another organization", apperr.ErrNotFound)
	}
	return nil
}

// GetImportedTransaction returns one of the tenant's statement rows.
func (s *Service) GetImportedTransaction(orgID, id int64) (*models.ImportedTransaction, error) {
	txn, err := s.repo.FindImportedTransaction(orgID, id)
	if err != nil {
		return nil, err
	}
	if err := ensureTenant(txn, orgID); err != nil {
		return nil, err
	}
	return txn, nil
}

// Categories returns the tenant's classification categories.
func (s *Service) Categories(orgID int64) ([]models.Category, error) {
	return s.repo.ListCategories(orgID)
}

// VisibleAccounts returns the accounts offered in import and filter forms.
func (s *Service) VisibleAccounts(orgID int64) ([]models.Account, error) {
	return s.repo.ListVisibleAccounts(orgID)
}
