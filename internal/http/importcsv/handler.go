package importcsv

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/alekseyp/fintrack/internal/importer"
	"github.com/alekseyp/fintrack/internal/wallet"
)

// maxUploadSize bounds statement uploads; a year of statements is well under
// a megabyte.
const maxUploadSize = 10 << 20

type Handler struct {
	importSvc *importer.Service
}

func NewHandler(importSvc *importer.Service) *Handler {
	return &Handler{importSvc: importSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type rowErrorDTO struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

type importResponse struct {
	Imported int           `json:"imported"`
	Skipped  []rowErrorDTO `json:"skipped"`
	Balance  string        `json:"balance"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	walletID, err := strconv.ParseInt(r.FormValue("wallet_id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid wallet_id", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing statement file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	start := time.Now()

	result, err := h.importSvc.Import(r.Context(), walletID, file)
	if err != nil {
		if errors.Is(err, wallet.ErrNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusUnprocessableEntity)

		return
	}

	slog.Info("statement imported",
		"wallet_id", walletID,
		"imported", len(result.Imported),
		"skipped", len(result.Skipped),
		"took", time.Since(start),
	)

	resp := importResponse{
		Imported: len(result.Imported),
		Skipped:  make([]rowErrorDTO, 0, len(result.Skipped)),
		Balance:  result.Balance,
	}
	for _, re := range result.Skipped {
		resp.Skipped = append(resp.Skipped, rowErrorDTO{Row: re.Row, Reason: re.Reason})
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
