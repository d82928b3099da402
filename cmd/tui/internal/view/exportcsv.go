package view

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/alekseyp/fintrack/internal/export"
)

type exportState int

const (
	exportStatePickMonth exportState = iota
	exportStateRunning
	exportStateResult
)

// ExportModel writes a monthly summary CSV to the export directory.
type ExportModel struct {
	CommonModel
	exportService *export.Service

	state  exportState
	picker MonthPicker

	path string
	err  error
}

func NewExportModel(exportSvc *export.Service) ExportModel {
	return ExportModel{
		exportService: exportSvc,
		picker:        NewMonthPicker(),
	}
}

func (m ExportModel) Title() string { return "Export Summary" }

func (m ExportModel) Init() tea.Cmd {
	return m.picker.Init()
}

type exportDoneMsg struct {
	path string
	err  error
}

func (m ExportModel) exportCmd(year int, month time.Month) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		path, err := m.exportService.ExportMonth(ctx, year, month)

		return exportDoneMsg{path: path, err: err}
	}
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case MonthSelectedMsg:
		m.state = exportStateRunning
		return m, m.exportCmd(msg.Year, msg.Month)

	case exportDoneMsg:
		m.state = exportStateResult
		m.path = msg.path
		m.err = msg.err

		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	if m.state == exportStatePickMonth {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m ExportModel) View() string {
	switch m.state {
	case exportStatePickMonth:
		return lipgloss.NewStyle().Padding(1).Render(m.picker.View())

	case exportStateRunning:
		return lipgloss.NewStyle().Padding(2).Render("Exporting summary...")

	case exportStateResult:
		if m.err != nil {
			return lipgloss.NewStyle().Padding(2).Render(
				lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("Error: %v", m.err)) +
					"\n\n(Esc to back)",
			)
		}

		return lipgloss.NewStyle().Padding(2).Render(
			fmt.Sprintf("Summary written to %s\n\n(Esc to back)", m.path),
		)
	}

	return ""
}
