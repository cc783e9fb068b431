package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is a single journal record for an account. Debits carry a
// negative amount, credits a positive one, so the sum of an account's
// entries reproduces its balance.
type LedgerEntry struct {
	ID        string          // unique identifier, derived from the operation ID
	AccountID AccountID       // which account this entry belongs to
	Amount    decimal.Decimal // signed token amount
	CreatedAt time.Time       // timestamp of the operation
}
