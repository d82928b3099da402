package wallet

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound is returned when a wallet id does not reference an existing wallet.
	ErrNotFound = errors.New("wallet not found")

	// ErrInsufficientFunds is returned when an expense would drive the balance negative.
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Wallet is a named store of money in a single currency.
//
// Balance is fully derived from the wallet's transaction history: the opening
// balance is materialized as an ordinary income transaction at creation time,
// so balance == sum(income) - sum(expense) holds at all times.
type Wallet struct {
	ID        int64
	Name      string
	Currency  string
	Balance   decimal.Decimal
	CreatedAt time.Time
}

// CanAfford reports whether an expense of the given amount is covered by the
// current balance.
func (w *Wallet) CanAfford(amount decimal.Decimal) bool {
	return amount.LessThanOrEqual(w.Balance)
}
