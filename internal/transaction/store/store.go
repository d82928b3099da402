package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/alekseyp/fintrack/internal/transaction"
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

// scanTransaction reads a transaction row from the scanner.
// Expected column order: id, wallet_id, date, amount, type, description, created_at
func scanTransaction(s scanner) (*transaction.Transaction, error) {
	var tx transaction.Transaction

	var typeStr string

	if err := s.Scan(
		&tx.ID, &tx.WalletID, &tx.Date, &tx.Amount, &typeStr, &tx.Description, &tx.CreatedAt,
	); err != nil {
		return nil, err
	}

	tx.Type = transaction.Type(typeStr)

	return &tx, nil
}

const selectTransactionColumns = `
	t.id, t.wallet_id, t.date, t.amount, t.type, t.description, t.created_at
`

func (s *Store) GetTransaction(ctx context.Context, id int64) (*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		WHERE t.id = $1`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, transaction.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return tx, nil
}

func (s *Store) ListForWallet(ctx context.Context, walletID int64) ([]*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		WHERE t.wallet_id = $1
		ORDER BY t.date ASC, t.id ASC`

	rows, err := s.db.QueryContext(ctx, query, walletID)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

// ListAll returns every transaction, newest first, with the owning wallet
// resolved via JOIN.
func (s *Store) ListAll(ctx context.Context) ([]*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `,
		w.id, w.name, w.currency, w.balance, w.created_at
		FROM transactions t
		JOIN wallets w ON t.wallet_id = w.id
		ORDER BY t.date DESC, t.id DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*transaction.Transaction

	for rows.Next() {
		var tx transaction.Transaction

		var typeStr string

		var w wallet.Wallet

		if err := rows.Scan(
			&tx.ID, &tx.WalletID, &tx.Date, &tx.Amount, &typeStr, &tx.Description, &tx.CreatedAt,
			&w.ID, &w.Name, &w.Currency, &w.Balance, &w.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		tx.Type = transaction.Type(typeStr)
		tx.Wallet = &w

		txs = append(txs, &tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transaction rows: %w", err)
	}

	return txs, nil
}

func collectTransactions(rows *sql.Rows) ([]*transaction.Transaction, error) {
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

type writeScope struct {
	tx *sql.Tx
}

// Begin opens an atomic write scope covering a transaction mutation plus the
// owning wallet's balance update.
func (s *Store) Begin(ctx context.Context) (transaction.Tx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning write scope: %w", err)
	}

	return &writeScope{tx: dbTx}, nil
}

func (ws *writeScope) Commit() error   { return ws.tx.Commit() }
func (ws *writeScope) Rollback() error { return ws.tx.Rollback() }

func (ws *writeScope) WalletForUpdate(ctx context.Context, walletID int64) (*wallet.Wallet, error) {
	query := `
		SELECT id, name, currency, balance, created_at
		FROM wallets
		WHERE id = $1
		FOR UPDATE
	`

	var w wallet.Wallet

	err := ws.tx.QueryRowContext(ctx, query, walletID).
		Scan(&w.ID, &w.Name, &w.Currency, &w.Balance, &w.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, wallet.ErrNotFound
		}

		return nil, fmt.Errorf("locking wallet: %w", err)
	}

	return &w, nil
}

func (ws *writeScope) CreateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	query := `
		INSERT INTO transactions (wallet_id, date, amount, type, description, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`

	err := ws.tx.QueryRowContext(ctx, query,
		tx.WalletID,
		tx.Date,
		tx.Amount,
		tx.Type,
		tx.Description,
	).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	return nil
}

func (ws *writeScope) DeleteTransaction(ctx context.Context, id int64) (*transaction.Transaction, error) {
	query := `
		DELETE FROM transactions
		WHERE id = $1
		RETURNING id, wallet_id, date, amount, type, description, created_at
	`

	tx, err := scanTransaction(ws.tx.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, transaction.ErrNotFound
		}

		return nil, fmt.Errorf("deleting transaction: %w", err)
	}

	return tx, nil
}

func (ws *writeScope) SaveWalletBalance(ctx context.Context, walletID int64, balance decimal.Decimal) error {
	query := `UPDATE wallets SET balance = $1 WHERE id = $2`

	if _, err := ws.tx.ExecContext(ctx, query, balance, walletID); err != nil {
		return fmt.Errorf("saving wallet balance: %w", err)
	}

	return nil
}
