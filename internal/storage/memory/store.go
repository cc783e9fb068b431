package memory

import (
	"context"
	"sync"

	interfaces "github.com/sheikh-saqib/fungible-token-ledger/internal/interfaces"
	"github.com/sheikh-saqib/fungible-token-ledger/internal/models"
)

// MemoryLedgerStore is an in-memory implementation of the LedgerStore
// interface. It keeps the journal in slices and is safe for concurrent
// use.
type MemoryLedgerStore struct {
	mu         sync.Mutex
	operations []models.Operation
	entries    []models.LedgerEntry
}

// NewMemoryLedgerStore creates and returns a new MemoryLedgerStore instance
func NewMemoryLedgerStore() *MemoryLedgerStore {
	return &MemoryLedgerStore{
		operations: make([]models.Operation, 0),
		entries:    make([]models.LedgerEntry, 0),
	}
}

// Append records the operation and its entries under one lock, so a
// reader never observes an operation without its entries.
func (m *MemoryLedgerStore) Append(ctx context.Context, op models.Operation, entries []models.LedgerEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.operations = append(m.operations, op)
	m.entries = append(m.entries, entries...)
	return nil
}

// GetLedgerEntries returns a copy of the full journal so external code
// can't modify internal state.
func (m *MemoryLedgerStore) GetLedgerEntries() ([]models.LedgerEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := make([]models.LedgerEntry, len(m.entries))
	copy(copied, m.entries)
	return copied, nil
}

func (m *MemoryLedgerStore) GetEntriesByAccount(accountID models.AccountID) ([]models.LedgerEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []models.LedgerEntry
	for _, e := range m.entries {
		if e.AccountID == accountID {
			result = append(result, e)
		}
	}
	return result, nil
}

// GetOperations returns a copy of every recorded operation, useful for
// testing and debugging.
func (m *MemoryLedgerStore) GetOperations() ([]models.Operation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := make([]models.Operation, len(m.operations))
	copy(copied, m.operations)
	return copied, nil
}

// Compile-time check: ensure MemoryLedgerStore implements LedgerStore interface
var _ interfaces.LedgerStore = (*MemoryLedgerStore)(nil)
