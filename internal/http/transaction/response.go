package transaction

import (
	"time"

	"github.com/alekseyp/fintrack/internal/transaction"
)

type transactionResponse struct {
	ID          int64            `json:"id"`
	WalletID    int64            `json:"wallet_id"`
	WalletName  string           `json:"wallet_name,omitempty"`
	Date        time.Time        `json:"date"`
	Amount      string           `json:"amount"`
	Type        transaction.Type `json:"type"`
	Description string           `json:"description"`
	CreatedAt   time.Time        `json:"created_at"`
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	resp := transactionResponse{
		ID:          tx.ID,
		WalletID:    tx.WalletID,
		Date:        tx.Date,
		Amount:      tx.Amount.StringFixed(2),
		Type:        tx.Type,
		Description: tx.Description,
		CreatedAt:   tx.CreatedAt,
	}

	if tx.Wallet != nil {
		resp.WalletName = tx.Wallet.Name
	}

	return resp
}

func toResponses(txs []*transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, 0, len(txs))
	for _, tx := range txs {
		resp = append(resp, toResponse(tx))
	}

	return resp
}
