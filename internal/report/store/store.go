package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alekseyp/fintrack/internal/transaction"
	"github.com/alekseyp/fintrack/internal/wallet"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// monthWindow returns the half-open interval [first of month, first of next
// month) in local time, so boundary transactions from neighbouring months are
// excluded.
func monthWindow(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	return start, start.AddDate(0, 1, 0)
}

func (s *Store) ListTransactionsInMonth(ctx context.Context, year int, month time.Month) ([]*transaction.Transaction, error) {
	start, end := monthWindow(year, month)

	query := `
		SELECT t.id, t.wallet_id, t.date, t.amount, t.type, t.description, t.created_at
		FROM transactions t
		WHERE t.date >= $1 AND t.date < $2
		ORDER BY t.date ASC, t.id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("listing month transactions: %w", err)
	}
	defer rows.Close()

	var txs []*transaction.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transaction rows: %w", err)
	}

	return txs, nil
}

func (s *Store) ListWallets(ctx context.Context) ([]*wallet.Wallet, error) {
	query := `SELECT id, name, currency, balance, created_at FROM wallets ORDER BY id ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing wallets: %w", err)
	}
	defer rows.Close()

	var wallets []*wallet.Wallet

	for rows.Next() {
		var w wallet.Wallet
		if err := rows.Scan(&w.ID, &w.Name, &w.Currency, &w.Balance, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning wallet: %w", err)
		}

		wallets = append(wallets, &w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating wallet rows: %w", err)
	}

	return wallets, nil
}

func scanTransaction(rows *sql.Rows) (*transaction.Transaction, error) {
	var tx transaction.Transaction

	var typeStr string

	if err := rows.Scan(
		&tx.ID, &tx.WalletID, &tx.Date, &tx.Amount, &typeStr, &tx.Description, &tx.CreatedAt,
	); err != nil {
		return nil, err
	}

	tx.Type = transaction.Type(typeStr)

	return &tx, nil
}
