package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alekseyp/fintrack/internal/wallet"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanWallet(s scanner) (*wallet.Wallet, error) {
	var w wallet.Wallet
	if err := s.Scan(&w.ID, &w.Name, &w.Currency, &w.Balance, &w.CreatedAt); err != nil {
		return nil, err
	}

	return &w, nil
}

const selectWalletColumns = `w.id, w.name, w.currency, w.balance, w.created_at`

// CreateWallet inserts the wallet row and, when the opening balance is
// non-zero, an opening income transaction for the same amount. Both writes
// share one database transaction so the derived-balance invariant holds.
func (s *Store) CreateWallet(ctx context.Context, w *wallet.Wallet) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		INSERT INTO wallets (name, currency, balance, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at
	`

	err = dbTx.QueryRowContext(ctx, query, w.Name, w.Currency, w.Balance).
		Scan(&w.ID, &w.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating wallet: %w", err)
	}

	if !w.Balance.IsZero() {
		openingQuery := `
			INSERT INTO transactions (wallet_id, date, amount, type, description, created_at)
			VALUES ($1, NOW(), $2, 'income', 'Opening balance', NOW())
		`
		if _, err := dbTx.ExecContext(ctx, openingQuery, w.ID, w.Balance); err != nil {
			return fmt.Errorf("creating opening transaction: %w", err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) GetWallet(ctx context.Context, id int64) (*wallet.Wallet, error) {
	query := `SELECT ` + selectWalletColumns + ` FROM wallets w WHERE w.id = $1`

	w, err := scanWallet(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, wallet.ErrNotFound
		}

		return nil, fmt.Errorf("getting wallet: %w", err)
	}

	return w, nil
}

func (s *Store) ListWallets(ctx context.Context) ([]*wallet.Wallet, error) {
	query := `SELECT ` + selectWalletColumns + ` FROM wallets w ORDER BY w.id ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing wallets: %w", err)
	}
	defer rows.Close()

	var wallets []*wallet.Wallet

	for rows.Next() {
		w, err := scanWallet(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning wallet: %w", err)
		}

		wallets = append(wallets, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating wallet rows: %w", err)
	}

	return wallets, nil
}

// DeleteWallet removes the wallet; its transactions go with it via the
// ON DELETE CASCADE constraint.
func (s *Store) DeleteWallet(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM wallets WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("deleting wallet: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deleting wallet: %w", err)
	}

	return affected > 0, nil
}

func (s *Store) SaveWallet(ctx context.Context, w *wallet.Wallet) error {
	query := `
		UPDATE wallets
		SET name = $1, currency = $2, balance = $3
		WHERE id = $4
	`

	_, err := s.db.ExecContext(ctx, query, w.Name, w.Currency, w.Balance, w.ID)
	if err != nil {
		return fmt.Errorf("saving wallet: %w", err)
	}

	return nil
}
