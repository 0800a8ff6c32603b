package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/HaRin2806/nutribot-cli/internal/session"
)

// Run starts the chat interface and blocks until the user quits.
func Run(manager *session.Manager, log zerolog.Logger) error {
	model := NewModel(manager, log)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
