package models

import "time"

type OperationKind string

const (
	OperationMint          OperationKind = "mint"
	OperationTransfer      OperationKind = "transfer"
	OperationBatchTransfer OperationKind = "batch_transfer"
	OperationBurn          OperationKind = "burn"
)

// Operation records one successful mutating call against the ledger.
type Operation struct {
	ID        string
	Kind      OperationKind
	Caller    AccountID
	CreatedAt time.Time
}
