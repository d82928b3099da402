// Package balance keeps a wallet's stored balance consistent with its
// transaction history.
package balance

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/alekseyp/fintrack/internal/transaction"
	"github.com/alekseyp/fintrack/internal/wallet"
)

//go:generate mockgen -source=reconciler.go -destination=repository_mock.go -package=balance
type Repository interface {
	GetWallet(ctx context.Context, id int64) (*wallet.Wallet, error)
	// ListTransactionsForWallet returns all transactions belonging to the
	// wallet, ordered by date then id.
	ListTransactionsForWallet(ctx context.Context, walletID int64) ([]*transaction.Transaction, error)
	SaveWallet(ctx context.Context, w *wallet.Wallet) error
}

type Reconciler struct {
	repo Repository
}

func NewReconciler(repo Repository) *Reconciler {
	return &Reconciler{repo: repo}
}

// Recompute derives the wallet's balance from its full transaction history
// (sum of income minus sum of expense) and persists the result.
//
// The write path maintains the balance incrementally inside its atomic scope;
// Recompute is the full-scan equivalent, used after bulk imports and on
// demand. It is idempotent: calling it twice without intervening writes
// yields the same balance both times.
func (r *Reconciler) Recompute(ctx context.Context, walletID int64) (decimal.Decimal, error) {
	w, err := r.repo.GetWallet(ctx, walletID)
	if err != nil {
		return decimal.Zero, err
	}

	txs, err := r.repo.ListTransactionsForWallet(ctx, walletID)
	if err != nil {
		return decimal.Zero, err
	}

	w.Balance = Sum(txs)

	if err := r.repo.SaveWallet(ctx, w); err != nil {
		return decimal.Zero, err
	}

	return w.Balance, nil
}

// CanAfford reports whether the wallet can cover an expense of the given
// amount. It is a read-only precheck; the authoritative enforcement happens
// inside the transaction write scope against the locked wallet row.
func (r *Reconciler) CanAfford(ctx context.Context, walletID int64, amount decimal.Decimal) (bool, error) {
	w, err := r.repo.GetWallet(ctx, walletID)
	if err != nil {
		return false, err
	}

	return w.CanAfford(amount), nil
}

// Sum folds a transaction set into a signed balance: income adds, expense
// subtracts.
func Sum(txs []*transaction.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		total = total.Add(tx.Signed())
	}

	return total
}
