package events

import (
	"time"

	"github.com/sheikh-saqib/fungible-token-ledger/internal/models"
)

// Mint is emitted alongside the from-less Transfer whenever new supply is
// created.
type Mint struct {
	To         models.AccountID `json:"to"`
	Value      models.Balance   `json:"value"`
	OccurredAt time.Time        `json:"occurred_at"`
}
