package transaction

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/alekseyp/fintrack/internal/wallet"
)

// ErrNotFound is returned when a transaction id does not exist.
var ErrNotFound = errors.New("transaction not found")

// Type represents the direction of a transaction (income or expense).
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// Valid reports whether t is one of the known transaction types.
func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// MaxDescriptionLen bounds the free-text description.
const MaxDescriptionLen = 512

// Transaction is a single dated money movement against one wallet.
//
// Amount is always non-negative; the direction comes from Type. The wallet
// owns its transactions and deleting a wallet cascades to them.
type Transaction struct {
	ID          int64
	WalletID    int64
	Date        time.Time
	Amount      decimal.Decimal
	Type        Type
	Description string
	Wallet      *wallet.Wallet // Loaded via JOIN on list-all
	CreatedAt   time.Time
}

// Signed returns the amount with its direction applied: positive for income,
// negative for expense.
func (t *Transaction) Signed() decimal.Decimal {
	if t.Type == TypeExpense {
		return t.Amount.Neg()
	}

	return t.Amount
}
