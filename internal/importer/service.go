package importer

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/alekseyp/fintrack/internal/balance"
	"github.com/alekseyp/fintrack/internal/importer/statement"
	"github.com/alekseyp/fintrack/internal/matching"
	"github.com/alekseyp/fintrack/internal/transaction"
	"github.com/alekseyp/fintrack/internal/wallet"
)

type Service struct {
	parser     Parser
	txs        *transaction.Service
	matching   *matching.Service
	reconciler *balance.Reconciler
}

func NewService(txs *transaction.Service, matchSvc *matching.Service, reconciler *balance.Reconciler) *Service {
	return &Service{
		parser:     statement.NewParser(),
		txs:        txs,
		matching:   matchSvc,
		reconciler: reconciler,
	}
}

// RowError records why a single statement row was not imported.
type RowError struct {
	Row    int
	Reason string
}

// Result reports what an import did.
type Result struct {
	Imported []*transaction.Transaction
	Skipped  []RowError
	Balance  string
}

// Import parses a statement and records each row against the wallet through
// the regular funds-checking write path. Rows an expense cannot cover are
// skipped and reported, not fatal. After the batch, the wallet balance is
// recomputed from the full history as a cross-check against the incremental
// updates.
func (s *Service) Import(ctx context.Context, walletID int64, r io.Reader) (*Result, error) {
	params, err := s.parser.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse statement: %w", err)
	}

	result := &Result{}

	for i, p := range params {
		p.WalletID = walletID

		desc, err := s.matching.Resolve(ctx, p.Description)
		if err != nil {
			return nil, fmt.Errorf("resolve description: %w", err)
		}

		p.Description = desc

		tx, err := s.txs.Create(ctx, p)
		if err != nil {
			if errors.Is(err, wallet.ErrInsufficientFunds) {
				result.Skipped = append(result.Skipped, RowError{Row: i + 1, Reason: "insufficient funds"})
				continue
			}

			return nil, fmt.Errorf("create transaction: %w", err)
		}

		result.Imported = append(result.Imported, tx)
	}

	recomputed, err := s.reconciler.Recompute(ctx, walletID)
	if err != nil {
		return nil, fmt.Errorf("recompute balance: %w", err)
	}

	result.Balance = recomputed.StringFixed(2)

	return result, nil
}
