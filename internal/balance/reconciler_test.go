package balance_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/alekseyp/fintrack/internal/balance"
	"github.com/alekseyp/fintrack/internal/transaction"
	"github.com/alekseyp/fintrack/internal/wallet"
)

func TestReconciler_Recompute(t *testing.T) {
	type testCase struct {
		name      string
		setupMock func(m *balance.MockRepository)
		want      string
		wantErr   error
	}

	date := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []testCase{
		{
			name: "IncomeMinusExpense",
			setupMock: func(m *balance.MockRepository) {
				m.EXPECT().GetWallet(gomock.Any(), int64(1)).
					Return(&wallet.Wallet{ID: 1, Balance: decimal.NewFromInt(999)}, nil)
				m.EXPECT().ListTransactionsForWallet(gomock.Any(), int64(1)).
					Return([]*transaction.Transaction{
						{ID: 1, Amount: decimal.NewFromInt(100), Type: transaction.TypeIncome, Date: date},
						{ID: 2, Amount: decimal.NewFromInt(30), Type: transaction.TypeExpense, Date: date},
						{ID: 3, Amount: decimal.RequireFromString("12.50"), Type: transaction.TypeExpense, Date: date},
					}, nil)
				m.EXPECT().SaveWallet(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, w *wallet.Wallet) error {
						assert.Equal(t, "57.50", w.Balance.StringFixed(2))
						return nil
					})
			},
			want: "57.50",
		},
		{
			name: "NoTransactionsMeansZero",
			setupMock: func(m *balance.MockRepository) {
				m.EXPECT().GetWallet(gomock.Any(), int64(1)).
					Return(&wallet.Wallet{ID: 1, Balance: decimal.NewFromInt(5)}, nil)
				m.EXPECT().ListTransactionsForWallet(gomock.Any(), int64(1)).
					Return(nil, nil)
				m.EXPECT().SaveWallet(gomock.Any(), gomock.Any()).Return(nil)
			},
			want: "0.00",
		},
		{
			name: "WalletNotFound",
			setupMock: func(m *balance.MockRepository) {
				m.EXPECT().GetWallet(gomock.Any(), int64(1)).
					Return(nil, wallet.ErrNotFound)
			},
			wantErr: wallet.ErrNotFound,
		},
		{
			name: "SaveError",
			setupMock: func(m *balance.MockRepository) {
				m.EXPECT().GetWallet(gomock.Any(), int64(1)).
					Return(&wallet.Wallet{ID: 1}, nil)
				m.EXPECT().ListTransactionsForWallet(gomock.Any(), int64(1)).
					Return(nil, nil)
				m.EXPECT().SaveWallet(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := balance.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			rec := balance.NewReconciler(repo)
			got, err := rec.Recompute(context.Background(), 1)

			if tt.want == "" {
				assert.Error(t, err)
				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				}

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}

func TestReconciler_Recompute_Idempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	date := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	txs := []*transaction.Transaction{
		{ID: 1, Amount: decimal.NewFromInt(200), Type: transaction.TypeIncome, Date: date},
		{ID: 2, Amount: decimal.NewFromInt(75), Type: transaction.TypeExpense, Date: date},
	}

	repo := balance.NewMockRepository(ctrl)
	repo.EXPECT().GetWallet(gomock.Any(), int64(1)).
		DoAndReturn(func(context.Context, int64) (*wallet.Wallet, error) {
			return &wallet.Wallet{ID: 1}, nil
		}).Times(2)
	repo.EXPECT().ListTransactionsForWallet(gomock.Any(), int64(1)).Return(txs, nil).Times(2)
	repo.EXPECT().SaveWallet(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	rec := balance.NewReconciler(repo)

	first, err := rec.Recompute(context.Background(), 1)
	require.NoError(t, err)

	second, err := rec.Recompute(context.Background(), 1)
	require.NoError(t, err)

	assert.True(t, first.Equal(second))
	assert.Equal(t, "125.00", second.StringFixed(2))
}

// The write path applies each transaction's signed amount incrementally; a
// full recompute over the same history must land on the same balance.
func TestSum_MatchesIncrementalUpdates(t *testing.T) {
	date := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	txs := []*transaction.Transaction{
		{ID: 1, Amount: decimal.NewFromInt(500), Type: transaction.TypeIncome, Date: date},
		{ID: 2, Amount: decimal.RequireFromString("120.45"), Type: transaction.TypeExpense, Date: date},
		{ID: 3, Amount: decimal.RequireFromString("0.05"), Type: transaction.TypeExpense, Date: date},
		{ID: 4, Amount: decimal.NewFromInt(20), Type: transaction.TypeIncome, Date: date},
	}

	incremental := decimal.Zero
	for _, tx := range txs {
		incremental = incremental.Add(tx.Signed())
	}

	assert.True(t, incremental.Equal(balance.Sum(txs)))
	assert.Equal(t, "399.50", balance.Sum(txs).StringFixed(2))
}

func TestReconciler_CanAfford(t *testing.T) {
	type testCase struct {
		name      string
		amount    decimal.Decimal
		setupMock func(m *balance.MockRepository)
		want      bool
		wantErr   bool
	}

	tests := []testCase{
		{
			name:   "WithinBalance",
			amount: decimal.NewFromInt(50),
			setupMock: func(m *balance.MockRepository) {
				m.EXPECT().GetWallet(gomock.Any(), int64(1)).
					Return(&wallet.Wallet{ID: 1, Balance: decimal.NewFromInt(100)}, nil)
			},
			want: true,
		},
		{
			name:   "ExactBalance",
			amount: decimal.NewFromInt(100),
			setupMock: func(m *balance.MockRepository) {
				m.EXPECT().GetWallet(gomock.Any(), int64(1)).
					Return(&wallet.Wallet{ID: 1, Balance: decimal.NewFromInt(100)}, nil)
			},
			want: true,
		},
		{
			name:   "OverBalance",
			amount: decimal.RequireFromString("100.01"),
			setupMock: func(m *balance.MockRepository) {
				m.EXPECT().GetWallet(gomock.Any(), int64(1)).
					Return(&wallet.Wallet{ID: 1, Balance: decimal.NewFromInt(100)}, nil)
			},
			want: false,
		},
		{
			name:   "WalletNotFound",
			amount: decimal.NewFromInt(1),
			setupMock: func(m *balance.MockRepository) {
				m.EXPECT().GetWallet(gomock.Any(), int64(1)).
					Return(nil, wallet.ErrNotFound)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := balance.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			rec := balance.NewReconciler(repo)
			got, err := rec.CanAfford(context.Background(), 1, tt.amount)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
