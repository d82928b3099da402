package transaction_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/alekseyp/fintrack/internal/transaction"
	"github.com/alekseyp/fintrack/internal/wallet"
)

func TestService_Create(t *testing.T) {
	type args struct {
		params transaction.CreateParams
	}

	type testCase struct {
		name        string
		args        args
		setupMock   func(repo *transaction.MockRepository, scope *transaction.MockTx)
		wantErr     error
		wantAnyErr  bool
		wantBalance string
	}

	date := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)

	tests := []testCase{
		{
			name: "IncomeAddsToBalance",
			args: args{
				params: transaction.CreateParams{
					WalletID:    1,
					Amount:      decimal.NewFromInt(50),
					Type:        transaction.TypeIncome,
					Description: "Salary",
					Date:        date,
				},
			},
			setupMock: func(repo *transaction.MockRepository, scope *transaction.MockTx) {
				repo.EXPECT().Begin(gomock.Any()).Return(scope, nil)
				scope.EXPECT().WalletForUpdate(gomock.Any(), int64(1)).
					Return(&wallet.Wallet{ID: 1, Balance: decimal.NewFromInt(100)}, nil)
				scope.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tx *transaction.Transaction) error {
						tx.ID = 42
						tx.CreatedAt = time.Now()
						return nil
					})
				scope.EXPECT().SaveWalletBalance(gomock.Any(), int64(1), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ int64, balance decimal.Decimal) error {
						assert.Equal(t, "150.00", balance.StringFixed(2))
						return nil
					})
				scope.EXPECT().Commit().Return(nil)
				scope.EXPECT().Rollback().Return(nil)
			},
		},
		{
			name: "ExpenseSubtractsFromBalance",
			args: args{
				params: transaction.CreateParams{
					WalletID:    1,
					Amount:      decimal.NewFromInt(40),
					Type:        transaction.TypeExpense,
					Description: "Groceries",
					Date:        date,
				},
			},
			setupMock: func(repo *transaction.MockRepository, scope *transaction.MockTx) {
				repo.EXPECT().Begin(gomock.Any()).Return(scope, nil)
				scope.EXPECT().WalletForUpdate(gomock.Any(), int64(1)).
					Return(&wallet.Wallet{ID: 1, Balance: decimal.NewFromInt(100)}, nil)
				scope.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tx *transaction.Transaction) error {
						tx.ID = 43
						return nil
					})
				scope.EXPECT().SaveWalletBalance(gomock.Any(), int64(1), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ int64, balance decimal.Decimal) error {
						assert.Equal(t, "60.00", balance.StringFixed(2))
						return nil
					})
				scope.EXPECT().Commit().Return(nil)
				scope.EXPECT().Rollback().Return(nil)
			},
		},
		{
			name: "ExpenseEqualToBalanceAllowed",
			args: args{
				params: transaction.CreateParams{
					WalletID: 1,
					Amount:   decimal.NewFromInt(100),
					Type:     transaction.TypeExpense,
					Date:     date,
				},
			},
			setupMock: func(repo *transaction.MockRepository, scope *transaction.MockTx) {
				repo.EXPECT().Begin(gomock.Any()).Return(scope, nil)
				scope.EXPECT().WalletForUpdate(gomock.Any(), int64(1)).
					Return(&wallet.Wallet{ID: 1, Balance: decimal.NewFromInt(100)}, nil)
				scope.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Return(nil)
				scope.EXPECT().SaveWalletBalance(gomock.Any(), int64(1), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ int64, balance decimal.Decimal) error {
						assert.True(t, balance.IsZero())
						return nil
					})
				scope.EXPECT().Commit().Return(nil)
				scope.EXPECT().Rollback().Return(nil)
			},
		},
		{
			name: "InsufficientFunds",
			args: args{
				params: transaction.CreateParams{
					WalletID: 1,
					Amount:   decimal.NewFromInt(200),
					Type:     transaction.TypeExpense,
					Date:     date,
				},
			},
			setupMock: func(repo *transaction.MockRepository, scope *transaction.MockTx) {
				repo.EXPECT().Begin(gomock.Any()).Return(scope, nil)
				scope.EXPECT().WalletForUpdate(gomock.Any(), int64(1)).
					Return(&wallet.Wallet{ID: 1, Balance: decimal.NewFromInt(100)}, nil)
				scope.EXPECT().Rollback().Return(nil)
			},
			wantErr: wallet.ErrInsufficientFunds,
		},
		{
			name: "WalletNotFound",
			args: args{
				params: transaction.CreateParams{
					WalletID: 99,
					Amount:   decimal.NewFromInt(10),
					Type:     transaction.TypeIncome,
					Date:     date,
				},
			},
			setupMock: func(repo *transaction.MockRepository, scope *transaction.MockTx) {
				repo.EXPECT().Begin(gomock.Any()).Return(scope, nil)
				scope.EXPECT().WalletForUpdate(gomock.Any(), int64(99)).
					Return(nil, wallet.ErrNotFound)
				scope.EXPECT().Rollback().Return(nil)
			},
			wantErr: wallet.ErrNotFound,
		},
		{
			name: "BeginError",
			args: args{
				params: transaction.CreateParams{
					WalletID: 1,
					Amount:   decimal.NewFromInt(10),
					Type:     transaction.TypeIncome,
					Date:     date,
				},
			},
			setupMock: func(repo *transaction.MockRepository, scope *transaction.MockTx) {
				repo.EXPECT().Begin(gomock.Any()).Return(nil, errors.New("db error"))
			},
			wantAnyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := transaction.NewMockRepository(ctrl)
			scope := transaction.NewMockTx(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo, scope)
			}

			svc := transaction.NewService(repo)
			got, err := svc.Create(context.Background(), tt.args.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			if tt.wantAnyErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			assert.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.args.params.WalletID, got.WalletID)
			assert.Equal(t, tt.args.params.Type, got.Type)
		})
	}
}

func TestService_Create_DefaultsDateToNow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	scope := transaction.NewMockTx(ctrl)

	repo.EXPECT().Begin(gomock.Any()).Return(scope, nil)
	scope.EXPECT().WalletForUpdate(gomock.Any(), int64(1)).
		Return(&wallet.Wallet{ID: 1, Balance: decimal.Zero}, nil)
	scope.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Return(nil)
	scope.EXPECT().SaveWalletBalance(gomock.Any(), int64(1), gomock.Any()).Return(nil)
	scope.EXPECT().Commit().Return(nil)
	scope.EXPECT().Rollback().Return(nil)

	svc := transaction.NewService(repo)
	got, err := svc.Create(context.Background(), transaction.CreateParams{
		WalletID: 1,
		Amount:   decimal.NewFromInt(5),
		Type:     transaction.TypeIncome,
	})
	require.NoError(t, err)
	assert.False(t, got.Date.IsZero())
}

func TestService_Delete(t *testing.T) {
	type testCase struct {
		name      string
		id        int64
		setupMock func(repo *transaction.MockRepository, scope *transaction.MockTx)
		want      bool
		wantErr   bool
	}

	date := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	tests := []testCase{
		{
			name: "DeletedExpenseRestoresBalance",
			id:   7,
			setupMock: func(repo *transaction.MockRepository, scope *transaction.MockTx) {
				repo.EXPECT().Begin(gomock.Any()).Return(scope, nil)
				scope.EXPECT().DeleteTransaction(gomock.Any(), int64(7)).
					Return(&transaction.Transaction{
						ID:       7,
						WalletID: 1,
						Amount:   decimal.NewFromInt(40),
						Type:     transaction.TypeExpense,
						Date:     date,
					}, nil)
				scope.EXPECT().WalletForUpdate(gomock.Any(), int64(1)).
					Return(&wallet.Wallet{ID: 1, Balance: decimal.NewFromInt(60)}, nil)
				scope.EXPECT().SaveWalletBalance(gomock.Any(), int64(1), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ int64, balance decimal.Decimal) error {
						assert.Equal(t, "100.00", balance.StringFixed(2))
						return nil
					})
				scope.EXPECT().Commit().Return(nil)
				scope.EXPECT().Rollback().Return(nil)
			},
			want: true,
		},
		{
			name: "DeletedIncomeReducesBalance",
			id:   8,
			setupMock: func(repo *transaction.MockRepository, scope *transaction.MockTx) {
				repo.EXPECT().Begin(gomock.Any()).Return(scope, nil)
				scope.EXPECT().DeleteTransaction(gomock.Any(), int64(8)).
					Return(&transaction.Transaction{
						ID:       8,
						WalletID: 1,
						Amount:   decimal.NewFromInt(25),
						Type:     transaction.TypeIncome,
						Date:     date,
					}, nil)
				scope.EXPECT().WalletForUpdate(gomock.Any(), int64(1)).
					Return(&wallet.Wallet{ID: 1, Balance: decimal.NewFromInt(100)}, nil)
				scope.EXPECT().SaveWalletBalance(gomock.Any(), int64(1), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ int64, balance decimal.Decimal) error {
						assert.Equal(t, "75.00", balance.StringFixed(2))
						return nil
					})
				scope.EXPECT().Commit().Return(nil)
				scope.EXPECT().Rollback().Return(nil)
			},
			want: true,
		},
		{
			name: "NotFound",
			id:   999,
			setupMock: func(repo *transaction.MockRepository, scope *transaction.MockTx) {
				repo.EXPECT().Begin(gomock.Any()).Return(scope, nil)
				scope.EXPECT().DeleteTransaction(gomock.Any(), int64(999)).
					Return(nil, transaction.ErrNotFound)
				scope.EXPECT().Rollback().Return(nil)
			},
			want: false,
		},
		{
			name: "WrappedNotFound",
			id:   999,
			setupMock: func(repo *transaction.MockRepository, scope *transaction.MockTx) {
				repo.EXPECT().Begin(gomock.Any()).Return(scope, nil)
				scope.EXPECT().DeleteTransaction(gomock.Any(), int64(999)).
					Return(nil, fmt.Errorf("deleting transaction: %w", transaction.ErrNotFound))
				scope.EXPECT().Rollback().Return(nil)
			},
			want: false,
		},
		{
			name: "RepoError",
			id:   7,
			setupMock: func(repo *transaction.MockRepository, scope *transaction.MockTx) {
				repo.EXPECT().Begin(gomock.Any()).Return(scope, nil)
				scope.EXPECT().DeleteTransaction(gomock.Any(), int64(7)).
					Return(nil, errors.New("db error"))
				scope.EXPECT().Rollback().Return(nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := transaction.NewMockRepository(ctrl)
			scope := transaction.NewMockTx(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo, scope)
			}

			svc := transaction.NewService(repo)
			got, err := svc.Delete(context.Background(), tt.id)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTransaction_Signed(t *testing.T) {
	income := &transaction.Transaction{Amount: decimal.NewFromInt(30), Type: transaction.TypeIncome}
	expense := &transaction.Transaction{Amount: decimal.NewFromInt(30), Type: transaction.TypeExpense}

	assert.Equal(t, "30.00", income.Signed().StringFixed(2))
	assert.Equal(t, "-30.00", expense.Signed().StringFixed(2))
}
