// Package importer turns wallet statement files into transaction create
// params.
package importer

import (
	"io"

	"github.com/alekseyp/fintrack/internal/transaction"
)

// Parser reads a statement file and produces transaction params. WalletID is
// left zero on every param; the caller assigns the target wallet.
type Parser interface {
	Parse(r io.Reader) ([]transaction.CreateParams, error)
}
