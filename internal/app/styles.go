package app

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))

	sidebarStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(lipgloss.Color("240"))

	selectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57"))

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	userLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))

	botLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))

	selectedMessageStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder(), false, false, false, true).
				BorderForeground(lipgloss.Color("63")).
				PaddingLeft(1)

	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)

	dialogButtonStyle = lipgloss.NewStyle().Padding(0, 2)

	dialogButtonActiveStyle = dialogButtonStyle.
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57"))
)
