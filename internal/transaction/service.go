package transaction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/alekseyp/fintrack/internal/wallet"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	GetTransaction(ctx context.Context, id int64) (*Transaction, error)
	ListForWallet(ctx context.Context, walletID int64) ([]*Transaction, error)
	ListAll(ctx context.Context) ([]*Transaction, error)

	Begin(ctx context.Context) (Tx, error)
}

// Tx is a single atomic write scope. Inserting or deleting a transaction and
// updating the owning wallet's balance must commit together so a crash between
// the two steps cannot leave the balance stale relative to the transaction log.
type Tx interface {
	// WalletForUpdate loads the wallet row and locks it for the remainder of
	// the scope.
	WalletForUpdate(ctx context.Context, walletID int64) (*wallet.Wallet, error)
	CreateTransaction(ctx context.Context, tx *Transaction) error
	// DeleteTransaction removes the row and returns it, so the caller can
	// reverse its contribution to the wallet balance.
	DeleteTransaction(ctx context.Context, id int64) (*Transaction, error)
	SaveWalletBalance(ctx context.Context, walletID int64, balance decimal.Decimal) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	WalletID    int64
	Amount      decimal.Decimal
	Type        Type
	Description string
	Date        time.Time // Zero value defaults to time.Now()
}

// Create records a money movement against a wallet and applies its signed
// amount to the wallet balance in the same atomic scope.
//
// Expenses are accepted only when the wallet can cover them; otherwise
// wallet.ErrInsufficientFunds is returned and nothing is written.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Transaction, error) {
	if params.Date.IsZero() {
		params.Date = time.Now()
	}

	scope, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin write scope: %w", err)
	}
	defer scope.Rollback()

	w, err := scope.WalletForUpdate(ctx, params.WalletID)
	if err != nil {
		return nil, err
	}

	if params.Type == TypeExpense && !w.CanAfford(params.Amount) {
		return nil, wallet.ErrInsufficientFunds
	}

	tx := &Transaction{
		WalletID:    params.WalletID,
		Date:        params.Date,
		Amount:      params.Amount,
		Type:        params.Type,
		Description: params.Description,
	}
	if err := scope.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	if err := scope.SaveWalletBalance(ctx, w.ID, w.Balance.Add(tx.Signed())); err != nil {
		return nil, err
	}

	if err := scope.Commit(); err != nil {
		return nil, fmt.Errorf("commit write scope: %w", err)
	}

	return tx, nil
}

// Delete removes a transaction and reverses its contribution to the owning
// wallet's balance in the same atomic scope. Returns false when the id does
// not exist.
func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	scope, err := s.repo.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin write scope: %w", err)
	}
	defer scope.Rollback()

	tx, err := scope.DeleteTransaction(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}

		return false, err
	}

	w, err := scope.WalletForUpdate(ctx, tx.WalletID)
	if err != nil {
		return false, err
	}

	if err := scope.SaveWalletBalance(ctx, w.ID, w.Balance.Sub(tx.Signed())); err != nil {
		return false, err
	}

	if err := scope.Commit(); err != nil {
		return false, fmt.Errorf("commit write scope: %w", err)
	}

	return true, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, id)
}

// ListForWallet returns the wallet's transactions ordered by date, oldest
// first.
func (s *Service) ListForWallet(ctx context.Context, walletID int64) ([]*Transaction, error) {
	return s.repo.ListForWallet(ctx, walletID)
}

// ListAll returns every transaction with its wallet reference resolved.
func (s *Service) ListAll(ctx context.Context) ([]*Transaction, error) {
	return s.repo.ListAll(ctx)
}
