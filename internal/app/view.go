package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m *Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.agePrompt.IsOpen() {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.agePrompt.View(m.width))
	}
	if m.confirm.IsOpen() {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.confirm.View(m.width))
	}

	contentHeight := m.viewport.Height + inputHeight + statusLines + 1
	sidebar := renderSidebar(m.conversations, m.sidebarCursor, m.activeConversationID(), contentHeight, m.focus == focusSidebar)

	chat := lipgloss.JoinVertical(lipgloss.Left,
		m.chatTitle(),
		m.viewport.View(),
		m.input.View(),
		m.statusLine(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, chat)
}

func (m *Model) activeConversationID() string {
	if conv := m.activeConversation(); conv != nil {
		return conv.ID
	}
	return ""
}

func (m *Model) chatTitle() string {
	title := "New conversation"
	age := 0
	if conv := m.activeConversation(); conv != nil {
		if strings.TrimSpace(conv.Title) != "" {
			title = conv.Title
		}
		age = conv.AgeContext
	}
	if age == 0 {
		if pref, ok := m.manager.Ages.TryResolve(); ok {
			age = pref
		}
	}
	line := titleStyle.Render(truncateToWidth(title, m.viewport.Width-12))
	if age > 0 {
		line += dimStyle.Render(fmt.Sprintf("  (age %d)", age))
	}
	return line
}

func (m *Model) statusLine() string {
	var left string
	switch {
	case m.errText != "":
		left = errorStyle.Render(truncateToWidth(m.errText, m.viewport.Width))
	case m.sending:
		left = m.loader.View() + statusStyle.Render(m.status)
	case m.status != "":
		left = statusStyle.Render(m.status)
	}

	help := dimStyle.Render(truncateToWidth(m.helpText(), m.viewport.Width))
	return left + "\n" + help
}

func (m *Model) helpText() string {
	switch m.mode {
	case uiModeEdit:
		return "enter save · esc cancel"
	case uiModeBrowse:
		return "j/k select · e edit · v/V version · r retry · x delete · y copy · esc write"
	default:
		if m.focus == focusSidebar {
			return "j/k move · enter open · d delete · a archive · tab chat · q quit"
		}
		return "enter send · esc browse · tab list · ctrl+n new · ctrl+c quit"
	}
}
