package service

import (
	"github.com/dmatsui/bookkeeping-service/internal/models"
	"github.com/dmatsui/bookkeeping-service/internal/repository"
)

// Reverse undoes a posting: the ledger entries carrying the
// transaction's provenance and the linked journal entry are deleted,
// and the row returns to unclassified. Atomic.
func (s *Service) Reverse(orgID, txnID int64) error {
	txn, err := s.GetImportedTransaction(orgID, txnID)
	if err != nil {
		return err
	}

	err = s.repo.WithTx(func(tx *repository.Tx) error {
		if err := tx.DeleteLedgerEntriesBySource(orgID, models.SourceTypeImportedTransaction, txn.ID); err != nil {
			return err
		}
		if txn.JournalEntryID != nil {
			if err := tx.DeleteJournalEntry(orgID, *txn.JournalEntryID); err != nil {
				return err
			}
		}
		return tx.ResetUnclassified(orgID, txn.ID)
	})
	if err != nil {
		return err
	}

	s.log.Infof("Reversed transaction %d", txn.ID)
	return nil
}

// Delete removes an imported transaction entirely, cascading to the
// journal and ledger entries it produced. Atomic.
func (s *Service) Delete(orgID, txnID int64) error {
	txn, err := s.GetImportedTransaction(orgID, txnID)
	if err != nil {
		return err
	}

	err = s.repo.WithTx(func(tx *repository.Tx) error {
		if err := tx.DeleteLedgerEntriesBySource(orgID, models.SourceTypeImportedTransaction, txn.ID); err != nil {
			return err
		}
		if txn.JournalEntryID != nil {
			if err := tx.DeleteJournalEntry(orgID, *txn.JournalEntryID); err != nil {
				return err
			}
		}
		return tx.DeleteImportedTransaction(orgID, txn.ID)
	})
	if err != nil {
		return err
	}

	s.log.Infof("Deleted transaction %d", txn.ID)
	return nil
}
