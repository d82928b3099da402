package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/alekseyp/fintrack/internal/balance"
	balanceStore "github.com/alekseyp/fintrack/internal/balance/store"
	"github.com/alekseyp/fintrack/internal/config"
	"github.com/alekseyp/fintrack/internal/database"
	"github.com/alekseyp/fintrack/internal/export"
	fintrackHttp "github.com/alekseyp/fintrack/internal/http"
	exportHandler "github.com/alekseyp/fintrack/internal/http/export"
	importHandler "github.com/alekseyp/fintrack/internal/http/importcsv"
	reportHandler "github.com/alekseyp/fintrack/internal/http/report"
	txHandler "github.com/alekseyp/fintrack/internal/http/transaction"
	walletHandler "github.com/alekseyp/fintrack/internal/http/wallet"
	"github.com/alekseyp/fintrack/internal/importer"
	"github.com/alekseyp/fintrack/internal/matching"
	matchingStore "github.com/alekseyp/fintrack/internal/matching/store"
	"github.com/alekseyp/fintrack/internal/report"
	reportStore "github.com/alekseyp/fintrack/internal/report/store"
	"github.com/alekseyp/fintrack/internal/transaction"
	txStore "github.com/alekseyp/fintrack/internal/transaction/store"
	"github.com/alekseyp/fintrack/internal/wallet"
	walletStore "github.com/alekseyp/fintrack/internal/wallet/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := database.Migrate(cfg.ConnectionString()); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var (
		walletService      = wallet.NewService(walletStore.New(db))
		transactionService = transaction.NewService(txStore.New(db))
		reconciler         = balance.NewReconciler(balanceStore.New(db))
		reportService      = report.NewService(reportStore.New(db))
		matchingService    = matching.NewService(matchingStore.New(db))
		importService      = importer.NewService(transactionService, matchingService, reconciler)
		exportService      = export.NewService(reportService, cfg.Export.Dir)
	)

	var (
		walletH = walletHandler.NewHandler(walletService, reconciler)
		txH     = txHandler.NewHandler(transactionService)
		reportH = reportHandler.NewHandler(reportService)
		importH = importHandler.NewHandler(importService)
		exportH = exportHandler.NewHandler(exportService)
	)

	router := fintrackHttp.New(walletH, txH, reportH, importH, exportH, cfg.Auth.Secret)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
