package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/alekseyp/fintrack/internal/balance"
	"github.com/alekseyp/fintrack/internal/wallet"
)

type walletsState int

const (
	walletsStateBrowse walletsState = iota
	walletsStateCreate
)

type WalletsModel struct {
	CommonModel
	walletService *wallet.Service
	reconciler    *balance.Reconciler

	state   walletsState
	table   table.Model
	wallets []*wallet.Wallet
	form    *huh.Form

	loading bool
	err     error
	status  string

	// Form bindings
	formName     string
	formCurrency string
	formInitial  string
}

func NewWalletsModel(walletSvc *wallet.Service, reconciler *balance.Reconciler) WalletsModel {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Name", Width: 28},
		{Title: "Currency", Width: 8},
		{Title: "Balance", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return WalletsModel{
		walletService: walletSvc,
		reconciler:    reconciler,
		table:         t,
		loading:       true,
	}
}

func (m WalletsModel) Title() string { return "Wallets" }

func (m WalletsModel) ShortHelp() string {
	if m.state == walletsStateCreate {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | n: new | d: delete | r: recompute balance"
}

func (m WalletsModel) Init() tea.Cmd {
	return m.loadWalletsCmd()
}

type loadWalletsMsg struct {
	wallets []*wallet.Wallet
	err     error
}

func (m WalletsModel) loadWalletsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		wallets, err := m.walletService.List(ctx)

		return loadWalletsMsg{wallets: wallets, err: err}
	}
}

type walletActionMsg struct {
	status string
	err    error
}

func (m WalletsModel) createWalletCmd() tea.Cmd {
	name := m.formName
	currency := strings.ToUpper(strings.TrimSpace(m.formCurrency))
	initial := m.formInitial

	return func() tea.Msg {
		amount := decimal.Zero

		if strings.TrimSpace(initial) != "" {
			var err error

			amount, err = decimal.NewFromString(strings.TrimSpace(initial))
			if err != nil || amount.IsNegative() {
				return walletActionMsg{err: fmt.Errorf("initial balance must be a non-negative decimal")}
			}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		created, err := m.walletService.Create(ctx, wallet.CreateParams{
			Name:           name,
			Currency:       currency,
			InitialBalance: amount,
		})
		if err != nil {
			return walletActionMsg{err: err}
		}

		return walletActionMsg{status: fmt.Sprintf("Created wallet #%d", created.ID)}
	}
}

func (m WalletsModel) deleteWalletCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		deleted, err := m.walletService.Delete(ctx, id)
		if err != nil {
			return walletActionMsg{err: err}
		}

		if !deleted {
			return walletActionMsg{err: wallet.ErrNotFound}
		}

		return walletActionMsg{status: fmt.Sprintf("Deleted wallet #%d and its transactions", id)}
	}
}

func (m WalletsModel) recomputeCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		recomputed, err := m.reconciler.Recompute(ctx, id)
		if err != nil {
			return walletActionMsg{err: err}
		}

		return walletActionMsg{status: fmt.Sprintf("Wallet #%d balance: %s", id, FormatAmount(recomputed))}
	}
}

func (m WalletsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadWalletsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.wallets = msg.wallets
		m.refreshTable()

		return m, nil

	case walletActionMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = msg.status
		}

		m.state = walletsStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadWalletsCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case walletsStateBrowse:
		return m.updateBrowse(msg)
	case walletsStateCreate:
		return m.updateCreate(msg)
	}

	return m, nil
}

func (m WalletsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "n":
			return m.enterCreateMode()
		case "d":
			if w := m.selectedWallet(); w != nil {
				return m, m.deleteWalletCmd(w.ID)
			}
		case "r":
			if w := m.selectedWallet(); w != nil {
				return m, m.recomputeCmd(w.ID)
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m WalletsModel) enterCreateMode() (tea.Model, tea.Cmd) {
	m.formName = ""
	m.formCurrency = ""
	m.formInitial = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Name").
				Value(&m.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("currency").
				Title("Currency").
				Placeholder("EUR").
				Value(&m.formCurrency).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("currency cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("initial").
				Title("Initial Balance").
				Placeholder("0.00").
				Value(&m.formInitial),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = walletsStateCreate
	m.table.Blur()

	return m, m.form.Init()
}

func (m WalletsModel) updateCreate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = walletsStateBrowse
			m.form = nil
			m.table.Focus()

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.createWalletCmd()
}

func (m WalletsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading wallets...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	if m.state == walletsStateCreate {
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left, tableView, m.status, m.ShortHelp())

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *WalletsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.wallets))
	for _, w := range m.wallets {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", w.ID),
			w.Name,
			w.Currency,
			FormatAmount(w.Balance),
		})
	}

	m.table.SetRows(rows)
}

func (m WalletsModel) selectedWallet() *wallet.Wallet {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.wallets) {
		return nil
	}

	return m.wallets[idx]
}
