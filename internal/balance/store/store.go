package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alekseyp/fintrack/internal/transaction"
	"github.com/alekseyp/fintrack/internal/wallet"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) GetWallet(ctx context.Context, id int64) (*wallet.Wallet, error) {
	query := `SELECT id, name, currency, balance, created_at FROM wallets WHERE id = $1`

	var w wallet.Wallet

	err := s.db.QueryRowContext(ctx, query, id).
		Scan(&w.ID, &w.Name, &w.Currency, &w.Balance, &w.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, wallet.ErrNotFound
		}

		return nil, fmt.Errorf("getting wallet: %w", err)
	}

	return &w, nil
}

func (s *Store) ListTransactionsForWallet(ctx context.Context, walletID int64) ([]*transaction.Transaction, error) {
	query := `
		SELECT t.id, t.wallet_id, t.date, t.amount, t.type, t.description, t.created_at
		FROM transactions t
		WHERE t.wallet_id = $1
		ORDER BY t.date ASC, t.id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, walletID)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*transaction.Transaction

	for rows.Next() {
		var tx transaction.Transaction

		var typeStr string

		if err := rows.Scan(
			&tx.ID, &tx.WalletID, &tx.Date, &tx.Amount, &typeStr, &tx.Description, &tx.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		tx.Type = transaction.Type(typeStr)

		txs = append(txs, &tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transaction rows: %w", err)
	}

	return txs, nil
}

func (s *Store) SaveWallet(ctx context.Context, w *wallet.Wallet) error {
	query := `UPDATE wallets SET balance = $1 WHERE id = $2`

	if _, err := s.db.ExecContext(ctx, query, w.Balance, w.ID); err != nil {
		return fmt.Errorf("saving wallet: %w", err)
	}

	return nil
}
