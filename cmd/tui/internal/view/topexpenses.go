package view

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/alekseyp/fintrack/internal/report"
)

type topState int

const (
	topStateForm topState = iota
	topStateResult
)

// TopExpensesModel renders the N largest expenses of a month for every
// wallet, including wallets that spent nothing.
type TopExpensesModel struct {
	CommonModel
	reportService *report.Service

	state topState
	form  *huh.Form

	formMonth string
	formCount string

	year    int
	month   time.Month
	count   int
	result  []report.WalletExpenses
	loading bool
	err     error
}

func NewTopExpensesModel(reportSvc *report.Service) TopExpensesModel {
	m := TopExpensesModel{
		reportService: reportSvc,
		formMonth:     time.Now().Format("01.2006"),
		formCount:     strconv.Itoa(report.DefaultTopExpenses),
	}
	m.form = m.buildForm()

	return m
}

func (m TopExpensesModel) Title() string { return "Top Expenses" }

func (m TopExpensesModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("month").
				Title("Month (MM.yyyy)").
				Value(&m.formMonth).
				Validate(func(s string) error {
					_, _, err := report.ParseMonth(s)
					return err
				}),

			huh.NewInput().
				Key("count").
				Title("Expenses per wallet").
				Value(&m.formCount).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n <= 0 {
						return fmt.Errorf("must be a positive integer")
					}
					return nil
				}),
		),
	).WithWidth(40).WithShowHelp(false)
}

func (m TopExpensesModel) Init() tea.Cmd {
	return m.form.Init()
}

type topLoadedMsg struct {
	result []report.WalletExpenses
	err    error
}

func (m TopExpensesModel) loadTopCmd() tea.Cmd {
	year, month, _ := report.ParseMonth(m.formMonth)
	count, _ := strconv.Atoi(strings.TrimSpace(m.formCount))

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		result, err := m.reportService.TopExpenses(ctx, year, month, count)

		return topLoadedMsg{result: result, err: err}
	}
}

func (m TopExpensesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case topLoadedMsg:
		m.loading = false
		m.result = msg.result
		m.err = msg.err

		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			if m.state == topStateResult {
				m.state = topStateForm
				m.form = m.buildForm()

				return m, m.form.Init()
			}

			return m, Back
		}
	}

	if m.state == topStateForm {
		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}

		if m.form.State != huh.StateCompleted {
			return m, cmd
		}

		m.year, m.month, _ = report.ParseMonth(m.formMonth)
		m.count, _ = strconv.Atoi(strings.TrimSpace(m.formCount))
		m.state = topStateResult
		m.loading = true

		return m, m.loadTopCmd()
	}

	return m, nil
}

func (m TopExpensesModel) View() string {
	if m.state == topStateForm {
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	}

	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading top expenses...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true)
	fmt.Fprintf(&b, "%s\n\n", titleStyle.Render(
		fmt.Sprintf("Top %d expenses per wallet, %02d.%04d", m.count, int(m.month), m.year)))

	for _, we := range m.result {
		fmt.Fprintf(&b, "%s (#%d)\n", titleStyle.Render(we.Wallet.Name), we.Wallet.ID)

		if len(we.Expenses) == 0 {
			b.WriteString("  No expenses for this month.\n\n")
			continue
		}

		for _, tx := range we.Expenses {
			fmt.Fprintf(&b, "  #%-5d %s  %12s  %s\n",
				tx.ID, FormatDate(tx.Date), FormatAmount(tx.Amount), tx.Description)
		}

		b.WriteString("\n")
	}

	b.WriteString("(Esc for another month)")

	return lipgloss.NewStyle().Padding(1).Render(b.String())
}
