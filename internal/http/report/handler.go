package report

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/alekseyp/fintrack/internal/report"
)

type Handler struct {
	svc *report.Service
}

func NewHandler(svc *report.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/monthly", h.monthly)
	r.Get("/top-expenses", h.topExpenses)
}

type txDTO struct {
	ID          int64     `json:"id"`
	WalletID    int64     `json:"wallet_id"`
	Date        time.Time `json:"date"`
	Amount      string    `json:"amount"`
	Description string    `json:"description"`
}

type groupDTO struct {
	Type         string  `json:"type"`
	Total        string  `json:"total"`
	Transactions []txDTO `json:"transactions"`
}

type walletExpensesDTO struct {
	WalletID   int64   `json:"wallet_id"`
	WalletName string  `json:"wallet_name"`
	Expenses   []txDTO `json:"expenses"`
}

func (h *Handler) monthly(w http.ResponseWriter, r *http.Request) {
	year, month, err := report.ParseMonth(r.URL.Query().Get("month"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	groups, err := h.svc.SummarizeMonth(r.Context(), year, month)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]groupDTO, 0, len(groups))

	for _, g := range groups {
		dto := groupDTO{
			Type:         string(g.Type),
			Total:        g.Total.StringFixed(2),
			Transactions: make([]txDTO, 0, len(g.Transactions)),
		}
		for _, tx := range g.Transactions {
			dto.Transactions = append(dto.Transactions, txDTO{
				ID:          tx.ID,
				WalletID:    tx.WalletID,
				Date:        tx.Date,
				Amount:      tx.Amount.StringFixed(2),
				Description: tx.Description,
			})
		}

		resp = append(resp, dto)
	}

	writeJSON(w, resp)
}

func (h *Handler) topExpenses(w http.ResponseWriter, r *http.Request) {
	year, month, err := report.ParseMonth(r.URL.Query().Get("month"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	n := report.DefaultTopExpenses

	if s := r.URL.Query().Get("n"); s != "" {
		n, err = strconv.Atoi(s)
		if err != nil || n <= 0 {
			http.Error(w, "n must be a positive integer", http.StatusBadRequest)
			return
		}
	}

	perWallet, err := h.svc.TopExpenses(r.Context(), year, month, n)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]walletExpensesDTO, 0, len(perWallet))

	for _, we := range perWallet {
		dto := walletExpensesDTO{
			WalletID:   we.Wallet.ID,
			WalletName: we.Wallet.Name,
			Expenses:   make([]txDTO, 0, len(we.Expenses)),
		}
		for _, tx := range we.Expenses {
			dto.Expenses = append(dto.Expenses, txDTO{
				ID:          tx.ID,
				WalletID:    tx.WalletID,
				Date:        tx.Date,
				Amount:      tx.Amount.StringFixed(2),
				Description: tx.Description,
			})
		}

		resp = append(resp, dto)
	}

	writeJSON(w, resp)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
