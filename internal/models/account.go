package models

// AccountID identifies an account. The ledger treats it as an opaque,
// equality-comparable key; whatever scheme produced it is the hosting
// environment's business.
type AccountID string

// Balance is a fixed-width unsigned token amount. Arithmetic on balances
// must never wrap; any operation that would overflow or underflow fails
// before touching state.
type Balance uint64
