package postgres

import (
	"context"
	"database/sql"

	interfaces "github.com/sheikh-saqib/fungible-token-ledger/internal/interfaces"
	"github.com/sheikh-saqib/fungible-token-ledger/internal/models"
)

// PostgresLedgerStore persists the journal in two tables:
//
//	operations(id, kind, caller, created_at)
//	ledger_entries(id, operation_id, account_id, amount, created_at)
type PostgresLedgerStore struct {
	db *sql.DB
}

func NewPostgresLedgerStore(db *sql.DB) *PostgresLedgerStore {
	return &PostgresLedgerStore{
		db: db,
	}
}

func (p *PostgresLedgerStore) saveOperation(ctx context.Context, op models.Operation, dbTx *sql.Tx) error {
	const query = `INSERT INTO operations(id, kind, caller, created_at)
	VALUES ($1,$2,$3,$4)`

	_, err := dbTx.ExecContext(ctx, query, op.ID, string(op.Kind), string(op.Caller), op.CreatedAt)

	return err
}

func (p *PostgresLedgerStore) saveEntry(ctx context.Context, opID string, entry models.LedgerEntry, dbTx *sql.Tx) error {
	const query = `INSERT INTO ledger_entries (id, operation_id, account_id, amount, created_at)
	VALUES ($1,$2,$3,$4,$5)`

	_, err := dbTx.ExecContext(ctx, query, entry.ID, opID, string(entry.AccountID), entry.Amount, entry.CreatedAt)
	return err
}

// Append writes the operation and all of its entries in a single database
// transaction; a failure on any statement rolls the whole call back.
func (p *PostgresLedgerStore) Append(ctx context.Context, op models.Operation, entries []models.LedgerEntry) error {

	dbTx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			dbTx.Rollback()
		}
	}()

	err = p.saveOperation(ctx, op, dbTx)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		err = p.saveEntry(ctx, op.ID, entry, dbTx)
		if err != nil {
			return err
		}
	}
	return dbTx.Commit()
}

func (p *PostgresLedgerStore) GetLedgerEntries() ([]models.LedgerEntry, error) {

	const query = `SELECT id, account_id, amount, created_at from ledger_entries`

	rows, err := p.db.Query(query)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var entries []models.LedgerEntry

	for rows.Next() {
		var entry models.LedgerEntry
		err := rows.Scan(
			&entry.ID,
			&entry.AccountID,
			&entry.Amount,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func (p *PostgresLedgerStore) GetEntriesByAccount(accountID models.AccountID) ([]models.LedgerEntry, error) {
	const query = `SELECT id, account_id, amount, created_at from ledger_entries
	WHERE account_id = $1`

	rows, err := p.db.Query(query, string(accountID))

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var entries []models.LedgerEntry
	for rows.Next() {
		var entry models.LedgerEntry
		if err := rows.Scan(&entry.ID, &entry.AccountID, &entry.Amount, &entry.CreatedAt); err != nil {
			return nil, err
		}

		entries = append(entries, entry)
	}
	return entries, nil
}

var _ interfaces.LedgerStore = (*PostgresLedgerStore)(nil)
