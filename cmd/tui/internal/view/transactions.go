package view

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/alekseyp/fintrack/internal/transaction"
	"github.com/alekseyp/fintrack/internal/wallet"
)

type txState int

const (
	txStatePickWallet txState = iota
	txStateList
	txStateAdd
)

type TransactionsModel struct {
	CommonModel
	walletService *wallet.Service
	txService     *transaction.Service

	state        txState
	walletTable  table.Model
	txTable      table.Model
	wallets      []*wallet.Wallet
	txs          []*transaction.Transaction
	activeWallet *wallet.Wallet
	form         *huh.Form

	loading bool
	err     error
	status  string

	// Form bindings
	formType   string
	formAmount string
	formDesc   string
	formDate   string
}

func NewTransactionsModel(walletSvc *wallet.Service, txSvc *transaction.Service) TransactionsModel {
	walletTable := table.New(
		table.WithColumns([]table.Column{
			{Title: "ID", Width: 6},
			{Title: "Name", Width: 28},
			{Title: "Currency", Width: 8},
			{Title: "Balance", Width: 14},
		}),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	txTable := table.New(
		table.WithColumns([]table.Column{
			{Title: "ID", Width: 6},
			{Title: "Date", Width: 12},
			{Title: "Type", Width: 8},
			{Title: "Amount", Width: 12},
			{Title: "Description", Width: 40},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	for _, t := range []*table.Model{&walletTable, &txTable} {
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
	}

	return TransactionsModel{
		walletService: walletSvc,
		txService:     txSvc,
		walletTable:   walletTable,
		txTable:       txTable,
		loading:       true,
	}
}

func (m TransactionsModel) Title() string { return "Transactions" }

func (m TransactionsModel) ShortHelp() string {
	switch m.state {
	case txStatePickWallet:
		return "Esc: back | Enter: open wallet"
	case txStateList:
		return "Esc: wallets | a: add | d: delete | r: refresh"
	case txStateAdd:
		return "Navigate form | Esc: cancel"
	}

	return ""
}

func (m TransactionsModel) Init() tea.Cmd {
	return m.loadWalletsCmd()
}

type txWalletsMsg struct {
	wallets []*wallet.Wallet
	err     error
}

func (m TransactionsModel) loadWalletsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		wallets, err := m.walletService.List(ctx)

		return txWalletsMsg{wallets: wallets, err: err}
	}
}

type txListMsg struct {
	txs []*transaction.Transaction
	err error
}

func (m TransactionsModel) loadTxsCmd(walletID int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		txs, err := m.txService.ListForWallet(ctx, walletID)

		return txListMsg{txs: txs, err: err}
	}
}

type txActionMsg struct {
	status string
	err    error
}

func (m TransactionsModel) addTxCmd() tea.Cmd {
	walletID := m.activeWallet.ID
	typ := transaction.Type(m.formType)
	rawAmount := strings.TrimSpace(m.formAmount)
	desc := strings.TrimSpace(m.formDesc)
	rawDate := strings.TrimSpace(m.formDate)

	return func() tea.Msg {
		amount, err := decimal.NewFromString(rawAmount)
		if err != nil || !amount.IsPositive() {
			return txActionMsg{err: fmt.Errorf("amount must be a positive decimal")}
		}

		var date time.Time

		if rawDate != "" {
			date, err = time.ParseInLocation("02.01.2006", rawDate, time.Local)
			if err != nil {
				return txActionMsg{err: fmt.Errorf("date must be dd.MM.yyyy")}
			}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		tx, err := m.txService.Create(ctx, transaction.CreateParams{
			WalletID:    walletID,
			Amount:      amount,
			Type:        typ,
			Description: desc,
			Date:        date,
		})
		if err != nil {
			return txActionMsg{err: err}
		}

		return txActionMsg{status: fmt.Sprintf("Recorded %s #%d for %s", tx.Type, tx.ID, FormatAmount(tx.Amount))}
	}
}

func (m TransactionsModel) deleteTxCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		deleted, err := m.txService.Delete(ctx, id)
		if err != nil {
			return txActionMsg{err: err}
		}

		if !deleted {
			return txActionMsg{err: transaction.ErrNotFound}
		}

		return txActionMsg{status: fmt.Sprintf("Deleted transaction #%d", id)}
	}
}

func (m TransactionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case txWalletsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.wallets = msg.wallets
		m.refreshWalletTable()

		// Keep the open wallet's header balance in sync.
		if m.activeWallet != nil {
			for _, w := range m.wallets {
				if w.ID == m.activeWallet.ID {
					m.activeWallet = w
					break
				}
			}
		}

		return m, nil

	case txListMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.txs = msg.txs
		m.refreshTxTable()

		return m, nil

	case txActionMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = msg.status
		}

		m.state = txStateList
		m.form = nil
		m.txTable.Focus()

		// Balance changed too, so refresh the wallet list behind the scenes.
		return m, tea.Batch(m.loadTxsCmd(m.activeWallet.ID), m.loadWalletsCmd())

	case tea.WindowSizeMsg:
		m.walletTable.SetHeight(msg.Height - 10)
		m.txTable.SetHeight(msg.Height - 10)

		return m, nil
	}

	switch m.state {
	case txStatePickWallet:
		return m.updatePickWallet(msg)
	case txStateList:
		return m.updateList(msg)
	case txStateAdd:
		return m.updateAdd(msg)
	}

	return m, nil
}

func (m TransactionsModel) updatePickWallet(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "enter":
			idx := m.walletTable.Cursor()
			if idx < 0 || idx >= len(m.wallets) {
				return m, nil
			}

			m.activeWallet = m.wallets[idx]
			m.state = txStateList
			m.loading = true
			m.status = ""

			return m, m.loadTxsCmd(m.activeWallet.ID)
		}
	}

	var cmd tea.Cmd
	m.walletTable, cmd = m.walletTable.Update(msg)

	return m, cmd
}

func (m TransactionsModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.state = txStatePickWallet
			m.activeWallet = nil
			m.status = ""

			return m, m.loadWalletsCmd()
		case "a":
			return m.enterAddMode()
		case "d":
			idx := m.txTable.Cursor()
			if idx >= 0 && idx < len(m.txs) {
				return m, m.deleteTxCmd(m.txs[idx].ID)
			}
		case "r":
			m.loading = true
			return m, m.loadTxsCmd(m.activeWallet.ID)
		}
	}

	var cmd tea.Cmd
	m.txTable, cmd = m.txTable.Update(msg)

	return m, cmd
}

func (m TransactionsModel) enterAddMode() (tea.Model, tea.Cmd) {
	m.formType = string(transaction.TypeExpense)
	m.formAmount = ""
	m.formDesc = ""
	m.formDate = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("type").
				Title("Type").
				Options(
					huh.NewOption("Expense", string(transaction.TypeExpense)),
					huh.NewOption("Income", string(transaction.TypeIncome)),
				).
				Value(&m.formType),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("12.50").
				Value(&m.formAmount).
				Validate(func(s string) error {
					d, err := decimal.NewFromString(strings.TrimSpace(s))
					if err != nil || !d.IsPositive() {
						return fmt.Errorf("amount must be a positive decimal")
					}
					return nil
				}),

			huh.NewInput().
				Key("description").
				Title("Description").
				Value(&m.formDesc).
				Validate(func(s string) error {
					if utf8.RuneCountInString(s) > transaction.MaxDescriptionLen {
						return fmt.Errorf("description too long")
					}
					return nil
				}),

			huh.NewInput().
				Key("date").
				Title("Date").
				Placeholder("dd.MM.yyyy (empty = today)").
				Value(&m.formDate),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = txStateAdd
	m.txTable.Blur()

	return m, m.form.Init()
}

func (m TransactionsModel) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = txStateList
			m.form = nil
			m.txTable.Focus()

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

	return m, m.addTxCmd()
}

func (m TransactionsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	switch m.state {
	case txStatePickWallet:
		tableView := lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Render(m.walletTable.View())

		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.JoinVertical(lipgloss.Left, "Pick a wallet", tableView, m.ShortHelp()),
		)

	case txStateAdd:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())

	case txStateList:
		header := fmt.Sprintf("%s (%s), balance %s",
			m.activeWallet.Name, m.activeWallet.Currency, FormatAmount(m.activeWallet.Balance))

		tableView := lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Render(m.txTable.View())

		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.JoinVertical(lipgloss.Left, header, tableView, m.status, m.ShortHelp()),
		)
	}

	return ""
}

func (m *TransactionsModel) refreshWalletTable() {
	rows := make([]table.Row, 0, len(m.wallets))
	for _, w := range m.wallets {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", w.ID),
			w.Name,
			w.Currency,
			FormatAmount(w.Balance),
		})
	}

	m.walletTable.SetRows(rows)
}

func (m *TransactionsModel) refreshTxTable() {
	rows := make([]table.Row, 0, len(m.txs))
	for _, tx := range m.txs {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", tx.ID),
			FormatDate(tx.Date),
			string(tx.Type),
			FormatAmount(tx.Amount),
			tx.Description,
		})
	}

	m.txTable.SetRows(rows)
}
