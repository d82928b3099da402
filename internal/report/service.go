// Package report produces the two read-only aggregate views: the monthly
// grouped summary and the top-N expenses per wallet.
package report

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/alekseyp/fintrack/internal/transaction"
	"github.com/alekseyp/fintrack/internal/wallet"
)

var (
	// ErrInvalidMonth is returned when the month is outside [1,12].
	ErrInvalidMonth = errors.New("month out of range")

	// ErrInvalidLimit is returned when a top-N limit is not positive.
	ErrInvalidLimit = errors.New("limit must be positive")
)

// DefaultTopExpenses is the per-wallet entry count used when the caller does
// not ask for a specific one.
const DefaultTopExpenses = 3

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=report
type Repository interface {
	// ListTransactionsInMonth returns every transaction dated within the
	// calendar month, across all wallets, ordered by date then id.
	ListTransactionsInMonth(ctx context.Context, year int, month time.Month) ([]*transaction.Transaction, error)
	// ListWallets returns all wallets ordered by id.
	ListWallets(ctx context.Context) ([]*wallet.Wallet, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Group is one type bucket of a monthly summary.
type Group struct {
	Type         transaction.Type
	Total        decimal.Decimal
	Transactions []*transaction.Transaction
}

// WalletExpenses pairs a wallet with its largest expenses for a month. The
// slice is empty, not nil-checked away, for wallets without matching
// expenses.
type WalletExpenses struct {
	Wallet   *wallet.Wallet
	Expenses []*transaction.Transaction
}

// SummarizeMonth groups the month's transactions by type.
//
// Groups are ordered by total descending; when totals tie, income sorts
// before expense. Within a group, transactions are ordered by date ascending,
// then id ascending. Types with no matching transactions are omitted.
func (s *Service) SummarizeMonth(ctx context.Context, year int, month time.Month) ([]Group, error) {
	if month < time.January || month > time.December {
		return nil, ErrInvalidMonth
	}

	txs, err := s.repo.ListTransactionsInMonth(ctx, year, month)
	if err != nil {
		return nil, err
	}

	byType := make(map[transaction.Type][]*transaction.Transaction, 2)
	for _, tx := range txs {
		byType[tx.Type] = append(byType[tx.Type], tx)
	}

	var groups []Group

	// Fixed iteration order makes the equal-total tie-break deterministic.
	for _, typ := range []transaction.Type{transaction.TypeIncome, transaction.TypeExpense} {
		members := byType[typ]
		if len(members) == 0 {
			continue
		}

		sort.Slice(members, func(i, j int) bool {
			if !members[i].Date.Equal(members[j].Date) {
				return members[i].Date.Before(members[j].Date)
			}

			return members[i].ID < members[j].ID
		})

		total := decimal.Zero
		for _, tx := range members {
			total = total.Add(tx.Amount)
		}

		groups = append(groups, Group{Type: typ, Total: total, Transactions: members})
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Total.GreaterThan(groups[j].Total)
	})

	return groups, nil
}

// TopExpenses returns, for every wallet, its n largest expenses within the
// calendar month.
//
// Every wallet appears in the result, wallets without matching expenses with
// an empty list. Expenses are ordered by amount descending; ties break by
// date ascending, then id ascending. Results are ordered by wallet id.
func (s *Service) TopExpenses(ctx context.Context, year int, month time.Month, n int) ([]WalletExpenses, error) {
	if month < time.January || month > time.December {
		return nil, ErrInvalidMonth
	}

	if n <= 0 {
		return nil, ErrInvalidLimit
	}

	wallets, err := s.repo.ListWallets(ctx)
	if err != nil {
		return nil, err
	}

	txs, err := s.repo.ListTransactionsInMonth(ctx, year, month)
	if err != nil {
		return nil, err
	}

	expensesByWallet := make(map[int64][]*transaction.Transaction)

	for _, tx := range txs {
		if tx.Type != transaction.TypeExpense {
			continue
		}

		expensesByWallet[tx.WalletID] = append(expensesByWallet[tx.WalletID], tx)
	}

	result := make([]WalletExpenses, 0, len(wallets))

	for _, w := range wallets {
		expenses := expensesByWallet[w.ID]

		sort.Slice(expenses, func(i, j int) bool {
			if !expenses[i].Amount.Equal(expenses[j].Amount) {
				return expenses[i].Amount.GreaterThan(expenses[j].Amount)
			}

			if !expenses[i].Date.Equal(expenses[j].Date) {
				return expenses[i].Date.Before(expenses[j].Date)
			}

			return expenses[i].ID < expenses[j].ID
		})

		if len(expenses) > n {
			expenses = expenses[:n]
		}

		if expenses == nil {
			expenses = []*transaction.Transaction{}
		}

		result = append(result, WalletExpenses{Wallet: w, Expenses: expenses})
	}

	return result, nil
}
