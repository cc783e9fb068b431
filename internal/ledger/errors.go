package ledger

import "errors"

// The ledger's closed error set. Every validation failure of a mutating
// operation is one of these sentinels; callers discriminate with errors.Is
// and decide themselves how to surface the failure. The ledger never logs
// or retries.
var (
	// ErrNotOwner is returned when a privileged operation is called by
	// anyone other than the owner fixed at construction.
	ErrNotOwner = errors.New("caller is not the ledger owner")

	// ErrInsufficientBalance is returned when a debit would drive the
	// debited balance negative.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrBalanceOverflow is returned when a credit would push a balance or
	// the total supply past the maximum representable amount.
	ErrBalanceOverflow = errors.New("balance overflow")

	// ErrBlacklisted is returned when the sender or a recipient of a
	// movement is blacklisted.
	ErrBlacklisted = errors.New("account is blacklisted")
)
