package wallet

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/alekseyp/fintrack/internal/balance"
	"github.com/alekseyp/fintrack/internal/wallet"
)

type Handler struct {
	svc        *wallet.Service
	reconciler *balance.Reconciler
}

func NewHandler(svc *wallet.Service, reconciler *balance.Reconciler) *Handler {
	return &Handler{svc: svc, reconciler: reconciler}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/recompute", h.recompute)
}

type walletResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Currency  string    `json:"currency"`
	Balance   string    `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
}

func toResponse(w *wallet.Wallet) walletResponse {
	return walletResponse{
		ID:        w.ID,
		Name:      w.Name,
		Currency:  w.Currency,
		Balance:   w.Balance.StringFixed(2),
		CreatedAt: w.CreatedAt,
	}
}

type createWalletRequest struct {
	Name           string `json:"name"`
	Currency       string `json:"currency"`
	InitialBalance string `json:"initial_balance"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Name == "" || req.Currency == "" {
		http.Error(w, "name and currency are required", http.StatusBadRequest)
		return
	}

	initial := decimal.Zero

	if req.InitialBalance != "" {
		var err error

		initial, err = decimal.NewFromString(req.InitialBalance)
		if err != nil || initial.IsNegative() {
			http.Error(w, "initial_balance must be a non-negative decimal", http.StatusBadRequest)
			return
		}
	}

	created, err := h.svc.Create(r.Context(), wallet.CreateParams{
		Name:           req.Name,
		Currency:       req.Currency,
		InitialBalance: initial,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(created))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	wallets, err := h.svc.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]walletResponse, 0, len(wallets))
	for _, item := range wallets {
		resp = append(resp, toResponse(item))
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := walletID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	found, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, wallet.ErrNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusOK, toResponse(found))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := walletID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	deleted, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if !deleted {
		http.Error(w, "wallet not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) recompute(w http.ResponseWriter, r *http.Request) {
	id, err := walletID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	recomputed, err := h.reconciler.Recompute(r.Context(), id)
	if err != nil {
		if errors.Is(err, wallet.ErrNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"balance": recomputed.StringFixed(2)})
}

func walletID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
