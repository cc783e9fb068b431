package events

import (
	"time"

	"github.com/sheikh-saqib/fungible-token-ledger/internal/models"
)

// Transfer is emitted for every movement of tokens. From is nil when the
// tokens were minted, To is nil when they were burned.
type Transfer struct {
	From       *models.AccountID `json:"from,omitempty"`
	To         *models.AccountID `json:"to,omitempty"`
	Value      models.Balance    `json:"value"`
	OccurredAt time.Time         `json:"occurred_at"`
}
