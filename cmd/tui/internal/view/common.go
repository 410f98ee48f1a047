package view

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/rkap/cmd/tui/internal/client"
)

// CommonModel is embedded by all views.
type CommonModel struct {
	api *client.Client
}

// SessionExpiredMsg tells the root model to show the login screen again.
type SessionExpiredMsg struct{}

// expired turns an unauthorized error into a SessionExpiredMsg command.
func expired(err error) tea.Cmd {
	if errors.Is(err, client.ErrUnauthorized) {
		return func() tea.Msg { return SessionExpiredMsg{} }
	}

	return nil
}

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
)
