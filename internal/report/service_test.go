package report_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/alekseyp/fintrack/internal/report"
	"github.com/alekseyp/fintrack/internal/transaction"
	"github.com/alekseyp/fintrack/internal/wallet"
)

func day(d int) time.Time {
	return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC)
}

func TestService_SummarizeMonth(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := report.NewMockRepository(ctrl)
	repo.EXPECT().ListTransactionsInMonth(gomock.Any(), 2025, time.January).
		Return([]*transaction.Transaction{
			{ID: 1, WalletID: 1, Amount: decimal.NewFromInt(100), Type: transaction.TypeIncome, Date: day(1)},
			{ID: 2, WalletID: 1, Amount: decimal.NewFromInt(30), Type: transaction.TypeExpense, Date: day(3)},
			{ID: 3, WalletID: 2, Amount: decimal.NewFromInt(20), Type: transaction.TypeExpense, Date: day(2)},
		}, nil)

	svc := report.NewService(repo)
	groups, err := svc.SummarizeMonth(context.Background(), 2025, time.January)
	require.NoError(t, err)
	require.Len(t, groups, 2)

	// Income total 100 beats expense total 50.
	assert.Equal(t, transaction.TypeIncome, groups[0].Type)
	assert.Equal(t, "100.00", groups[0].Total.StringFixed(2))
	assert.Equal(t, transaction.TypeExpense, groups[1].Type)
	assert.Equal(t, "50.00", groups[1].Total.StringFixed(2))

	// Within a group, date ascending.
	require.Len(t, groups[1].Transactions, 2)
	assert.Equal(t, int64(3), groups[1].Transactions[0].ID)
	assert.Equal(t, int64(2), groups[1].Transactions[1].ID)
}

func TestService_SummarizeMonth_EqualTotalsIncomeFirst(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := report.NewMockRepository(ctrl)
	repo.EXPECT().ListTransactionsInMonth(gomock.Any(), 2025, time.February).
		Return([]*transaction.Transaction{
			{ID: 1, Amount: decimal.NewFromInt(75), Type: transaction.TypeExpense, Date: day(1)},
			{ID: 2, Amount: decimal.NewFromInt(75), Type: transaction.TypeIncome, Date: day(2)},
		}, nil)

	svc := report.NewService(repo)
	groups, err := svc.SummarizeMonth(context.Background(), 2025, time.February)
	require.NoError(t, err)
	require.Len(t, groups, 2)

	assert.Equal(t, transaction.TypeIncome, groups[0].Type)
	assert.Equal(t, transaction.TypeExpense, groups[1].Type)
}

func TestService_SummarizeMonth_SameDateOrdersByID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := report.NewMockRepository(ctrl)
	repo.EXPECT().ListTransactionsInMonth(gomock.Any(), 2025, time.January).
		Return([]*transaction.Transaction{
			{ID: 9, Amount: decimal.NewFromInt(10), Type: transaction.TypeExpense, Date: day(5)},
			{ID: 4, Amount: decimal.NewFromInt(10), Type: transaction.TypeExpense, Date: day(5)},
		}, nil)

	svc := report.NewService(repo)
	groups, err := svc.SummarizeMonth(context.Background(), 2025, time.January)
	require.NoError(t, err)
	require.Len(t, groups, 1)

	assert.Equal(t, int64(4), groups[0].Transactions[0].ID)
	assert.Equal(t, int64(9), groups[0].Transactions[1].ID)
}

func TestService_SummarizeMonth_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := report.NewMockRepository(ctrl)
	repo.EXPECT().ListTransactionsInMonth(gomock.Any(), 2025, time.June).Return(nil, nil)

	svc := report.NewService(repo)
	groups, err := svc.SummarizeMonth(context.Background(), 2025, time.June)
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestService_SummarizeMonth_InvalidMonth(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := report.NewService(report.NewMockRepository(ctrl))

	_, err := svc.SummarizeMonth(context.Background(), 2025, time.Month(13))
	assert.ErrorIs(t, err, report.ErrInvalidMonth)

	_, err = svc.SummarizeMonth(context.Background(), 2025, time.Month(0))
	assert.ErrorIs(t, err, report.ErrInvalidMonth)
}

func TestService_TopExpenses(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	wallets := []*wallet.Wallet{
		{ID: 1, Name: "Cash"},
		{ID: 2, Name: "Card"},
		{ID: 3, Name: "Savings"},
	}

	repo := report.NewMockRepository(ctrl)
	repo.EXPECT().ListWallets(gomock.Any()).Return(wallets, nil)
	repo.EXPECT().ListTransactionsInMonth(gomock.Any(), 2025, time.January).
		Return([]*transaction.Transaction{
			{ID: 1, WalletID: 1, Amount: decimal.NewFromInt(10), Type: transaction.TypeExpense, Date: day(1)},
			{ID: 2, WalletID: 1, Amount: decimal.NewFromInt(50), Type: transaction.TypeExpense, Date: day(2)},
			{ID: 3, WalletID: 1, Amount: decimal.NewFromInt(30), Type: transaction.TypeExpense, Date: day(3)},
			{ID: 4, WalletID: 1, Amount: decimal.NewFromInt(5), Type: transaction.TypeExpense, Date: day(4)},
			{ID: 5, WalletID: 1, Amount: decimal.NewFromInt(999), Type: transaction.TypeIncome, Date: day(5)},
			{ID: 6, WalletID: 2, Amount: decimal.NewFromInt(7), Type: transaction.TypeExpense, Date: day(6)},
		}, nil)

	svc := report.NewService(repo)
	got, err := svc.TopExpenses(context.Background(), 2025, time.January, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)

	// Wallet 1: three largest expenses, amount descending; income excluded.
	assert.Equal(t, int64(1), got[0].Wallet.ID)
	require.Len(t, got[0].Expenses, 3)
	assert.Equal(t, int64(2), got[0].Expenses[0].ID)
	assert.Equal(t, int64(3), got[0].Expenses[1].ID)
	assert.Equal(t, int64(1), got[0].Expenses[2].ID)

	// Wallet 2: fewer expenses than the limit.
	assert.Equal(t, int64(2), got[1].Wallet.ID)
	require.Len(t, got[1].Expenses, 1)
	assert.Equal(t, int64(6), got[1].Expenses[0].ID)

	// Wallet 3: no expenses, still present with an empty list.
	assert.Equal(t, int64(3), got[2].Wallet.ID)
	assert.NotNil(t, got[2].Expenses)
	assert.Empty(t, got[2].Expenses)
}

func TestService_TopExpenses_TieBreaksByEarlierDate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := report.NewMockRepository(ctrl)
	repo.EXPECT().ListWallets(gomock.Any()).
		Return([]*wallet.Wallet{{ID: 1}}, nil)
	repo.EXPECT().ListTransactionsInMonth(gomock.Any(), 2025, time.January).
		Return([]*transaction.Transaction{
			{ID: 1, WalletID: 1, Amount: decimal.NewFromInt(40), Type: transaction.TypeExpense, Date: day(20)},
			{ID: 2, WalletID: 1, Amount: decimal.NewFromInt(40), Type: transaction.TypeExpense, Date: day(3)},
			{ID: 3, WalletID: 1, Amount: decimal.NewFromInt(40), Type: transaction.TypeExpense, Date: day(3)},
		}, nil)

	svc := report.NewService(repo)
	got, err := svc.TopExpenses(context.Background(), 2025, time.January, 2)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Len(t, got[0].Expenses, 2)

	// Equal amounts: earlier date wins, then lower id.
	assert.Equal(t, int64(2), got[0].Expenses[0].ID)
	assert.Equal(t, int64(3), got[0].Expenses[1].ID)
}

func TestService_TopExpenses_InvalidArgs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := report.NewService(report.NewMockRepository(ctrl))

	_, err := svc.TopExpenses(context.Background(), 2025, time.Month(13), 3)
	assert.ErrorIs(t, err, report.ErrInvalidMonth)

	_, err = svc.TopExpenses(context.Background(), 2025, time.January, 0)
	assert.ErrorIs(t, err, report.ErrInvalidLimit)

	_, err = svc.TopExpenses(context.Background(), 2025, time.January, -1)
	assert.ErrorIs(t, err, report.ErrInvalidLimit)
}

func TestService_TopExpenses_RepoError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := report.NewMockRepository(ctrl)
	repo.EXPECT().ListWallets(gomock.Any()).Return(nil, errors.New("db error"))

	svc := report.NewService(repo)
	_, err := svc.TopExpenses(context.Background(), 2025, time.January, 3)
	assert.Error(t, err)
}
