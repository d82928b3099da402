// Package view holds the individual screens of the console shell.
package view

import (
	tea "github.com/charmbracelet/bubbletea"
)

// CommonModel carries the terminal dimensions shared by every screen.
type CommonModel struct {
	Width  int
	Height int
}

// BackMsg asks the root model to return to the main menu.
type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}
