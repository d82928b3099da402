package export

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/alekseyp/fintrack/internal/export"
	"github.com/alekseyp/fintrack/internal/report"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/monthly", h.monthlyCSV)
}

func (h *Handler) monthlyCSV(w http.ResponseWriter, r *http.Request) {
	year, month, err := report.ParseMonth(r.URL.Query().Get("month"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	filename := fmt.Sprintf("summary-%04d-%02d.csv", year, int(month))

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.svc.WriteMonth(r.Context(), w, year, month); err != nil {
		// Headers are already out; all that is left is to log.
		slog.Error("failed to stream export", "error", err)
	}
}
