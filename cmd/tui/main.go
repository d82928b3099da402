package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/alekseyp/fintrack/cmd/tui/internal/view"
	"github.com/alekseyp/fintrack/internal/balance"
	balanceStore "github.com/alekseyp/fintrack/internal/balance/store"
	"github.com/alekseyp/fintrack/internal/config"
	"github.com/alekseyp/fintrack/internal/database"
	"github.com/alekseyp/fintrack/internal/export"
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

type model struct {
	walletService *wallet.Service
	txService     *transaction.Service
	reconciler    *balance.Reconciler
	reportService *report.Service
	importService *importer.Service
	exportService *export.Service

	currentView View

	walletsView view.WalletsModel
	txView      view.TransactionsModel
	summaryView view.SummaryModel
	topView     view.TopExpensesModel
	importView  view.ImportModel
	exportView  view.ExportModel
}

type View int

const (
	ViewMenu         View = 0
	ViewWallets      View = 1
	ViewTransactions View = 2
	ViewSummary      View = 3
	ViewTopExpenses  View = 4
	ViewImport       View = 5
	ViewExport       View = 6
)

func initialModel() model {
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

	walletSvc := wallet.NewService(walletStore.New(db))
	txSvc := transaction.NewService(txStore.New(db))
	reconciler := balance.NewReconciler(balanceStore.New(db))
	reportSvc := report.NewService(reportStore.New(db))
	matchSvc := matching.NewService(matchingStore.New(db))
	importSvc := importer.NewService(txSvc, matchSvc, reconciler)
	exportSvc := export.NewService(reportSvc, cfg.Export.Dir)

	return model{
		walletService: walletSvc,
		txService:     txSvc,
		reconciler:    reconciler,
		reportService: reportSvc,
		importService: importSvc,
		exportService: exportSvc,
		currentView:   ViewMenu,
		walletsView:   view.NewWalletsModel(walletSvc, reconciler),
		txView:        view.NewTransactionsModel(walletSvc, txSvc),
		summaryView:   view.NewSummaryModel(reportSvc),
		topView:       view.NewTopExpensesModel(reportSvc),
		importView:    view.NewImportModel(walletSvc, importSvc),
		exportView:    view.NewExportModel(exportSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewWallets
				m.walletsView = view.NewWalletsModel(m.walletService, m.reconciler)

				return m, m.walletsView.Init()
			case "2":
				m.currentView = ViewTransactions
				m.txView = view.NewTransactionsModel(m.walletService, m.txService)

				return m, m.txView.Init()
			case "3":
				m.currentView = ViewSummary
				m.summaryView = view.NewSummaryModel(m.reportService)

				return m, m.summaryView.Init()
			case "4":
				m.currentView = ViewTopExpenses
				m.topView = view.NewTopExpensesModel(m.reportService)

				return m, m.topView.Init()
			case "5":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.walletService, m.importService)

				return m, m.importView.Init()
			case "6":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.exportService)

				return m, m.exportView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewWallets:
		var newModel tea.Model
		newModel, cmd = m.walletsView.Update(msg)
		m.walletsView = newModel.(view.WalletsModel)
	case ViewTransactions:
		var newModel tea.Model
		newModel, cmd = m.txView.Update(msg)
		m.txView = newModel.(view.TransactionsModel)
	case ViewSummary:
		var newModel tea.Model
		newModel, cmd = m.summaryView.Update(msg)
		m.summaryView = newModel.(view.SummaryModel)
	case ViewTopExpenses:
		var newModel tea.Model
		newModel, cmd = m.topView.Update(msg)
		m.topView = newModel.(view.TopExpensesModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"fintrack\n\n" +
				"1. Wallets\n" +
				"2. Transactions\n" +
				"3. Monthly Summary\n" +
				"4. Top Expenses Per Wallet\n" +
				"5. Import Statement CSV\n" +
				"6. Export Summary CSV\n\n" +
				"q. Quit",
		)
	case ViewWallets:
		return m.walletsView.View()
	case ViewTransactions:
		return m.txView.View()
	case ViewSummary:
		return m.summaryView.View()
	case ViewTopExpenses:
		return m.topView.View()
	case ViewImport:
		return m.importView.View()
	case ViewExport:
		return m.exportView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
