package app

import (
	"strings"

	"github.com/HaRin2806/nutribot-cli/internal/types"
)

const sidebarWidth = 28

// renderSidebar draws the conversation list column. The cursor row is
// highlighted; the row matching activeID gets a marker even when the cursor
// sits elsewhere.
func renderSidebar(conversations []*types.Conversation, cursor int, activeID string, height int, focused bool) string {
	innerWidth := sidebarWidth - 2

	var b strings.Builder
	header := "Conversations"
	if focused {
		b.WriteString(titleStyle.Render(header))
	} else {
		b.WriteString(dimStyle.Render(header))
	}
	b.WriteString("\n")

	if len(conversations) == 0 {
		b.WriteString(dimStyle.Render("(none yet)"))
	}

	visible := height - 2
	if visible < 1 {
		visible = 1
	}
	start := 0
	if cursor >= visible {
		start = cursor - visible + 1
	}
	end := start + visible
	if end > len(conversations) {
		end = len(conversations)
	}

	for i := start; i < end; i++ {
		conv := conversations[i]
		title := strings.TrimSpace(conv.Title)
		if title == "" {
			title = "New conversation"
		}
		marker := "  "
		if conv.ID == activeID {
			marker = "• "
		}
		line := truncateToWidth(marker+title, innerWidth)
		if i == cursor && focused {
			line = selectedItemStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}

	return sidebarStyle.Width(sidebarWidth).Height(height).Render(b.String())
}
