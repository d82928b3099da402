package view

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/alekseyp/fintrack/internal/report"
)

type summaryState int

const (
	summaryStatePickMonth summaryState = iota
	summaryStateResult
)

// SummaryModel renders the monthly income/expense summary: transactions
// grouped by type, groups ordered by total descending, members oldest first.
type SummaryModel struct {
	CommonModel
	reportService *report.Service

	state  summaryState
	picker MonthPicker

	year    int
	month   time.Month
	groups  []report.Group
	loading bool
	err     error
}

func NewSummaryModel(reportSvc *report.Service) SummaryModel {
	return SummaryModel{
		reportService: reportSvc,
		picker:        NewMonthPicker(),
	}
}

func (m SummaryModel) Title() string { return "Monthly Summary" }

func (m SummaryModel) Init() tea.Cmd {
	return m.picker.Init()
}

type summaryLoadedMsg struct {
	groups []report.Group
	err    error
}

func (m SummaryModel) loadSummaryCmd(year int, month time.Month) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		groups, err := m.reportService.SummarizeMonth(ctx, year, month)

		return summaryLoadedMsg{groups: groups, err: err}
	}
}

func (m SummaryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case MonthSelectedMsg:
		m.year = msg.Year
		m.month = msg.Month
		m.state = summaryStateResult
		m.loading = true

		return m, m.loadSummaryCmd(msg.Year, msg.Month)

	case summaryLoadedMsg:
		m.loading = false
		m.groups = msg.groups
		m.err = msg.err

		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			if m.state == summaryStateResult {
				m.state = summaryStatePickMonth
				m.picker = NewMonthPicker()

				return m, m.picker.Init()
			}

			return m, Back
		}
	}

	if m.state == summaryStatePickMonth {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m SummaryModel) View() string {
	if m.state == summaryStatePickMonth {
		return lipgloss.NewStyle().Padding(1).Render(m.picker.View())
	}

	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading summary...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true)
	fmt.Fprintf(&b, "%s\n\n", titleStyle.Render(fmt.Sprintf("Summary for %02d.%04d", int(m.month), m.year)))

	if len(m.groups) == 0 {
		b.WriteString("No transactions for this month.\n")
	}

	for _, g := range m.groups {
		fmt.Fprintf(&b, "%s, total %s\n", titleStyle.Render(strings.ToTitle(string(g.Type))), FormatAmount(g.Total))

		for _, tx := range g.Transactions {
			fmt.Fprintf(&b, "  #%-5d %s  %12s  %s\n",
				tx.ID, FormatDate(tx.Date), FormatAmount(tx.Amount), tx.Description)
		}

		b.WriteString("\n")
	}

	b.WriteString("(Esc for another month)")

	return lipgloss.NewStyle().Padding(1).Render(b.String())
}
