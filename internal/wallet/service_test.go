package wallet_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/alekseyp/fintrack/internal/wallet"
)

func TestService_Create(t *testing.T) {
	type args struct {
		params wallet.CreateParams
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *wallet.MockRepository)
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			args: args{
				params: wallet.CreateParams{
					Name:           "Cash",
					Currency:       "EUR",
					InitialBalance: decimal.NewFromInt(100),
				},
			},
			setupMock: func(m *wallet.MockRepository) {
				m.EXPECT().
					CreateWallet(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, w *wallet.Wallet) error {
						w.ID = 1
						return nil
					})
			},
		},
		{
			name: "ZeroInitialBalance",
			args: args{
				params: wallet.CreateParams{Name: "Card", Currency: "EUR"},
			},
			setupMock: func(m *wallet.MockRepository) {
				m.EXPECT().
					CreateWallet(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, w *wallet.Wallet) error {
						assert.True(t, w.Balance.IsZero())
						w.ID = 2
						return nil
					})
			},
		},
		{
			name: "RepoError",
			args: args{
				params: wallet.CreateParams{Name: "Cash", Currency: "EUR"},
			},
			setupMock: func(m *wallet.MockRepository) {
				m.EXPECT().
					CreateWallet(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := wallet.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := wallet.NewService(repo)
			got, err := svc.Create(context.Background(), tt.args.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			assert.NoError(t, err)
			require.NotNil(t, got)
			assert.NotZero(t, got.ID)
			assert.Equal(t, tt.args.params.Name, got.Name)
			assert.True(t, got.Balance.Equal(tt.args.params.InitialBalance))
		})
	}
}

func TestService_Delete(t *testing.T) {
	type testCase struct {
		name      string
		id        int64
		setupMock func(m *wallet.MockRepository)
		want      bool
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Deleted",
			id:   1,
			setupMock: func(m *wallet.MockRepository) {
				m.EXPECT().DeleteWallet(gomock.Any(), int64(1)).Return(true, nil)
			},
			want: true,
		},
		{
			name: "NotFound",
			id:   99,
			setupMock: func(m *wallet.MockRepository) {
				m.EXPECT().DeleteWallet(gomock.Any(), int64(99)).Return(false, nil)
			},
			want: false,
		},
		{
			name: "RepoError",
			id:   1,
			setupMock: func(m *wallet.MockRepository) {
				m.EXPECT().DeleteWallet(gomock.Any(), int64(1)).Return(false, errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := wallet.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := wallet.NewService(repo)
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

func TestWallet_CanAfford(t *testing.T) {
	w := &wallet.Wallet{Balance: decimal.RequireFromString("100.00")}

	assert.True(t, w.CanAfford(decimal.NewFromInt(50)))
	assert.True(t, w.CanAfford(decimal.NewFromInt(100)))
	assert.False(t, w.CanAfford(decimal.RequireFromString("100.01")))
}
