package interfaces

import (
	"context"

	"github.com/sheikh-saqib/fungible-token-ledger/internal/models"
)

// LedgerStore persists the journal. Append must record the operation and
// all of its entries atomically: either the whole call lands or none of it
// does.
type LedgerStore interface {
	Append(ctx context.Context, op models.Operation, entries []models.LedgerEntry) error
	GetEntriesByAccount(accountID models.AccountID) ([]models.LedgerEntry, error)
	GetLedgerEntries() ([]models.LedgerEntry, error)
}
