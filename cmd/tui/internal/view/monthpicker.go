package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/alekseyp/fintrack/internal/report"
)

// MonthSelectedMsg is emitted when the user has entered a valid MM.yyyy
// month.
type MonthSelectedMsg struct {
	Year  int
	Month time.Month
}

// MonthPicker is a reusable component for selecting a calendar month in
// MM.yyyy format.
type MonthPicker struct {
	input  textinput.Model
	status string
}

func NewMonthPicker() MonthPicker {
	ti := textinput.New()
	ti.Placeholder = time.Now().Format("01.2006")
	ti.CharLimit = 7
	ti.Width = 10
	ti.Focus()

	return MonthPicker{input: ti}
}

func (p MonthPicker) Init() tea.Cmd {
	return textinput.Blink
}

func (p MonthPicker) Update(msg tea.Msg) (MonthPicker, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEnter {
		value := p.input.Value()
		if value == "" {
			value = time.Now().Format("01.2006")
		}

		year, month, err := report.ParseMonth(value)
		if err != nil {
			p.status = err.Error()
			return p, nil
		}

		p.status = ""

		return p, func() tea.Msg {
			return MonthSelectedMsg{Year: year, Month: month}
		}
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)

	return p, cmd
}

func (p MonthPicker) View() string {
	s := fmt.Sprintf("Month (MM.yyyy):\n%s\n", p.input.View())
	if p.status != "" {
		s += lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(p.status) + "\n"
	}

	return s + "\n(Enter to confirm, empty for current month, Esc to back)"
}
