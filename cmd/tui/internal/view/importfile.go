package view

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/alekseyp/fintrack/internal/importer"
	"github.com/alekseyp/fintrack/internal/wallet"
)

type importState int

const (
	importStateForm importState = iota
	importStateRunning
	importStateResult
)

// ImportModel drives a statement CSV import into one wallet.
type ImportModel struct {
	CommonModel
	walletService *wallet.Service
	importService *importer.Service

	state   importState
	form    *huh.Form
	wallets []*wallet.Wallet

	formPath     string
	formWalletID int64

	result *importer.Result
	err    error
}

func NewImportModel(walletSvc *wallet.Service, importSvc *importer.Service) ImportModel {
	return ImportModel{
		walletService: walletSvc,
		importService: importSvc,
	}
}

func (m ImportModel) Title() string { return "Import Statement" }

func (m ImportModel) Init() tea.Cmd {
	return m.loadWalletsCmd()
}

type importWalletsMsg struct {
	wallets []*wallet.Wallet
	err     error
}

func (m ImportModel) loadWalletsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		wallets, err := m.walletService.List(ctx)

		return importWalletsMsg{wallets: wallets, err: err}
	}
}

type importDoneMsg struct {
	result *importer.Result
	err    error
}

func (m ImportModel) runImportCmd() tea.Cmd {
	path := strings.TrimSpace(m.formPath)
	walletID := m.formWalletID

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importDoneMsg{err: err}
		}
		defer f.Close()

		ctx, cancel := DbCtx()
		defer cancel()

		result, err := m.importService.Import(ctx, walletID, f)

		return importDoneMsg{result: result, err: err}
	}
}

func (m ImportModel) buildForm() *huh.Form {
	options := make([]huh.Option[int64], 0, len(m.wallets))
	for _, w := range m.wallets {
		options = append(options, huh.NewOption(fmt.Sprintf("%s (%s)", w.Name, w.Currency), w.ID))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("path").
				Title("Statement file").
				Placeholder("./statement.csv").
				Value(&m.formPath).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("path cannot be empty")
					}
					return nil
				}),

			huh.NewSelect[int64]().
				Key("wallet").
				Title("Wallet").
				Options(options...).
				Value(&m.formWalletID),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case importWalletsMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = importStateResult

			return m, nil
		}

		m.wallets = msg.wallets
		m.form = m.buildForm()

		return m, m.form.Init()

	case importDoneMsg:
		m.state = importStateResult
		m.result = msg.result
		m.err = msg.err

		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	if m.state == importStateForm && m.form != nil {
		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}

		if m.form.State != huh.StateCompleted {
			return m, cmd
		}

		m.state = importStateRunning

		return m, m.runImportCmd()
	}

	return m, nil
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateForm:
		if m.form == nil {
			return lipgloss.NewStyle().Padding(2).Render("Loading wallets...")
		}

		if len(m.wallets) == 0 {
			return lipgloss.NewStyle().Padding(2).Render("No wallets yet. Create one first.\n\n(Esc to back)")
		}

		return lipgloss.NewStyle().Padding(1).Render(m.form.View())

	case importStateRunning:
		return lipgloss.NewStyle().Padding(2).Render("Importing statement...")

	case importStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ImportModel) viewResult() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(
			lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("Error: %v", m.err)) +
				"\n\n(Esc to back)",
		)
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Imported %d transactions. Wallet balance: %s\n", len(m.result.Imported), m.result.Balance)

	if len(m.result.Skipped) > 0 {
		b.WriteString("\nSkipped rows:\n")

		for _, re := range m.result.Skipped {
			fmt.Fprintf(&b, "  row %d: %s\n", re.Row, re.Reason)
		}
	}

	b.WriteString("\n(Esc to back)")

	return lipgloss.NewStyle().Padding(2).Render(b.String())
}
