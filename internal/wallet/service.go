package wallet

import (
	"context"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=wallet
type Repository interface {
	// CreateWallet persists w. When w.Balance is non-zero the store also
	// records an opening income transaction for the same amount, in the same
	// database transaction, so the derived-balance invariant holds from the
	// first row on.
	CreateWallet(ctx context.Context, w *Wallet) error
	GetWallet(ctx context.Context, id int64) (*Wallet, error)
	ListWallets(ctx context.Context) ([]*Wallet, error)
	// DeleteWallet removes the wallet and, by cascade, all of its
	// transactions. Returns false when the id does not exist.
	DeleteWallet(ctx context.Context, id int64) (bool, error)
	SaveWallet(ctx context.Context, w *Wallet) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name           string
	Currency       string
	InitialBalance decimal.Decimal
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Wallet, error) {
	w := &Wallet{
		Name:     params.Name,
		Currency: params.Currency,
		Balance:  params.InitialBalance,
	}
	if err := s.repo.CreateWallet(ctx, w); err != nil {
		return nil, err
	}

	return w, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Wallet, error) {
	return s.repo.GetWallet(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Wallet, error) {
	return s.repo.ListWallets(ctx)
}

func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	return s.repo.DeleteWallet(ctx, id)
}
