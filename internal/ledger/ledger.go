package ledger

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/fungible-token-ledger/internal/interfaces"
	"github.com/sheikh-saqib/fungible-token-ledger/internal/models"
	"github.com/sheikh-saqib/fungible-token-ledger/internal/models/events"
)

// Kafka topics (or log labels, depending on the publisher) for ledger
// events.
const (
	TopicTransfer = "token.transfer"
	TopicMint     = "token.mint"
)

// Ledger is the fungible-token state machine. It owns the balance table
// and the denormalized total-supply counter; between any two calls the
// sum of all balances equals the total supply.
//
// The ledger is deliberately not safe for concurrent use. The hosting
// environment guarantees at most one call in flight per instance, so the
// caller of this package (not the ledger) serializes access.
type Ledger struct {
	owner       models.AccountID
	balances    map[models.AccountID]models.Balance
	totalSupply models.Balance
	blacklist   map[models.AccountID]struct{}

	store     interfaces.LedgerStore    // journal of applied operations
	publisher interfaces.EventPublisher // fire-and-forget event sink
}

// New creates a ledger with an empty balance table and zero supply. The
// caller becomes the owner and stays the owner for the ledger's lifetime;
// only the owner may mint or manage the blacklist.
func New(caller models.AccountID, store interfaces.LedgerStore, publisher interfaces.EventPublisher) *Ledger {
	return &Ledger{
		owner:     caller,
		balances:  make(map[models.AccountID]models.Balance),
		blacklist: make(map[models.AccountID]struct{}),
		store:     store,
		publisher: publisher,
	}
}

// Owner returns the identity fixed at construction.
func (l *Ledger) Owner() models.AccountID {
	return l.owner
}

// BalanceOf returns the balance of an account, zero when the account has
// never been touched.
func (l *Ledger) BalanceOf(account models.AccountID) models.Balance {
	return l.balances[account]
}

// TotalSupply returns the denormalized supply counter.
func (l *Ledger) TotalSupply() models.Balance {
	return l.totalSupply
}

// Mint creates amount new tokens and credits them to the recipient.
// Owner-only: the ownership check runs before anything else so an
// unauthorized caller learns nothing from the error beyond NotOwner.
func (l *Ledger) Mint(ctx context.Context, caller, to models.AccountID, amount models.Balance) error {
	if caller != l.owner {
		return ErrNotOwner
	}

	newSupply, ok := checkedAdd(l.totalSupply, amount)
	if !ok {
		return ErrBalanceOverflow
	}
	newBalance, ok := checkedAdd(l.balances[to], amount)
	if !ok {
		return ErrBalanceOverflow
	}

	op := newOperation(models.OperationMint, caller)
	if err := l.append(ctx, op, creditEntry(op, op.ID+"-credit", to, amount)); err != nil {
		return err
	}

	l.balances[to] = newBalance
	l.totalSupply = newSupply

	l.emit(TopicMint, events.Mint{To: to, Value: amount, OccurredAt: op.CreatedAt})
	l.emit(TopicTransfer, events.Transfer{To: &to, Value: amount, OccurredAt: op.CreatedAt})
	return nil
}

// Transfer moves amount from the caller to the recipient. The debit and
// credit land together or not at all; a failed call leaves every balance
// exactly as it was. A self-transfer still requires the caller to hold
// the amount but changes nothing.
func (l *Ledger) Transfer(ctx context.Context, caller, to models.AccountID, amount models.Balance) error {
	if l.isBlacklisted(caller) || l.isBlacklisted(to) {
		return ErrBlacklisted
	}

	fromBalance := l.balances[caller]
	if fromBalance < amount {
		return ErrInsufficientBalance
	}
	toBalance := l.balances[to]
	if caller == to {
		// The credit lands on the already-debited balance.
		toBalance = fromBalance - amount
	}
	newToBalance, ok := checkedAdd(toBalance, amount)
	if !ok {
		return ErrBalanceOverflow
	}

	op := newOperation(models.OperationTransfer, caller)
	if err := l.append(ctx, op,
		debitEntry(op, op.ID+"-debit", caller, amount),
		creditEntry(op, op.ID+"-credit", to, amount),
	); err != nil {
		return err
	}

	l.balances[caller] = fromBalance - amount
	l.balances[to] = newToBalance

	l.emit(TopicTransfer, events.Transfer{From: &caller, To: &to, Value: amount, OccurredAt: op.CreatedAt})
	return nil
}

// Burn destroys amount tokens from the caller's balance and shrinks the
// total supply by the same amount.
func (l *Ledger) Burn(ctx context.Context, caller models.AccountID, amount models.Balance) error {
	if l.isBlacklisted(caller) {
		return ErrBlacklisted
	}

	balance := l.balances[caller]
	if balance < amount {
		return ErrInsufficientBalance
	}

	op := newOperation(models.OperationBurn, caller)
	if err := l.append(ctx, op, debitEntry(op, op.ID+"-debit", caller, amount)); err != nil {
		return err
	}

	l.balances[caller] = balance - amount
	l.totalSupply -= amount

	l.emit(TopicTransfer, events.Transfer{From: &caller, Value: amount, OccurredAt: op.CreatedAt})
	return nil
}

// BatchTransfer sends the same amount from the caller to every recipient.
// The whole batch commits or none of it does: the total debit and every
// individual credit (duplicate recipients included) are validated before
// the balance table is touched.
func (l *Ledger) BatchTransfer(ctx context.Context, caller models.AccountID, recipients []models.AccountID, amount models.Balance) error {
	if l.isBlacklisted(caller) {
		return ErrBlacklisted
	}
	for _, recipient := range recipients {
		if l.isBlacklisted(recipient) {
			return ErrBlacklisted
		}
	}

	total, ok := checkedMul(amount, len(recipients))
	if !ok {
		return ErrBalanceOverflow
	}
	fromBalance := l.balances[caller]
	if fromBalance < total {
		return ErrInsufficientBalance
	}

	// Stage the resulting balances in a scratch map so a credit overflow
	// midway through the recipient list aborts with state intact.
	staged := map[models.AccountID]models.Balance{caller: fromBalance - total}
	for _, recipient := range recipients {
		current, seen := staged[recipient]
		if !seen {
			current = l.balances[recipient]
		}
		next, ok := checkedAdd(current, amount)
		if !ok {
			return ErrBalanceOverflow
		}
		staged[recipient] = next
	}

	op := newOperation(models.OperationBatchTransfer, caller)
	entries := make([]models.LedgerEntry, 0, len(recipients)+1)
	entries = append(entries, debitEntry(op, op.ID+"-debit", caller, total))
	for i, recipient := range recipients {
		entries = append(entries, creditEntry(op, fmt.Sprintf("%s-credit-%d", op.ID, i), recipient, amount))
	}
	if err := l.append(ctx, op, entries...); err != nil {
		return err
	}

	for account, balance := range staged {
		l.balances[account] = balance
	}

	for i := range recipients {
		l.emit(TopicTransfer, events.Transfer{From: &caller, To: &recipients[i], Value: amount, OccurredAt: op.CreatedAt})
	}
	return nil
}

// Blacklist bars an account from sending or receiving tokens. Owner-only.
func (l *Ledger) Blacklist(caller, account models.AccountID) error {
	if caller != l.owner {
		return ErrNotOwner
	}
	l.blacklist[account] = struct{}{}
	return nil
}

// Unblacklist lifts the bar again. Owner-only.
func (l *Ledger) Unblacklist(caller, account models.AccountID) error {
	if caller != l.owner {
		return ErrNotOwner
	}
	delete(l.blacklist, account)
	return nil
}

// IsBlacklisted reports whether an account is currently barred.
func (l *Ledger) IsBlacklisted(account models.AccountID) bool {
	return l.isBlacklisted(account)
}

// GetLedgerEntries returns the full journal from the store.
func (l *Ledger) GetLedgerEntries() ([]models.LedgerEntry, error) {
	return l.store.GetLedgerEntries()
}

// GetEntriesByAccount returns the journal entries touching one account.
func (l *Ledger) GetEntriesByAccount(account models.AccountID) ([]models.LedgerEntry, error) {
	return l.store.GetEntriesByAccount(account)
}

func (l *Ledger) isBlacklisted(account models.AccountID) bool {
	_, barred := l.blacklist[account]
	return barred
}

// append journals the operation before the in-memory state is updated, so
// a store failure aborts the call with the balance table untouched.
func (l *Ledger) append(ctx context.Context, op models.Operation, entries ...models.LedgerEntry) error {
	if err := l.store.Append(ctx, op, entries); err != nil {
		return fmt.Errorf("journal %s: %w", op.Kind, err)
	}
	return nil
}

// emit hands an event to the publisher. Emission is fire-and-forget;
// delivery failures are the publisher's concern, never a state concern.
func (l *Ledger) emit(topic string, event any) {
	_ = l.publisher.Publish(topic, event)
}

func newOperation(kind models.OperationKind, caller models.AccountID) models.Operation {
	return models.Operation{
		ID:        uuid.NewString(),
		Kind:      kind,
		Caller:    caller,
		CreatedAt: time.Now().UTC(),
	}
}

func creditEntry(op models.Operation, id string, account models.AccountID, amount models.Balance) models.LedgerEntry {
	return models.LedgerEntry{
		ID:        id,
		AccountID: account,
		Amount:    decimal.NewFromUint64(uint64(amount)),
		CreatedAt: op.CreatedAt,
	}
}

func debitEntry(op models.Operation, id string, account models.AccountID, amount models.Balance) models.LedgerEntry {
	return models.LedgerEntry{
		ID:        id,
		AccountID: account,
		Amount:    decimal.NewFromUint64(uint64(amount)).Neg(),
		CreatedAt: op.CreatedAt,
	}
}

func checkedAdd(a, b models.Balance) (models.Balance, bool) {
	if a > math.MaxUint64-b {
		return 0, false
	}
	return a + b, true
}

func checkedMul(a models.Balance, n int) (models.Balance, bool) {
	if a == 0 || n == 0 {
		return 0, true
	}
	total := a * models.Balance(n)
	if total/a != models.Balance(n) {
		return 0, false
	}
	return total, true
}
