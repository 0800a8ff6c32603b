package app

import (
	"fmt"
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/HaRin2806/nutribot-cli/internal/types"
)

// renderMessages lays out a conversation transcript. Each message gets a role
// label line and a body; bot messages render as markdown, user messages as
// plain wrapped text. The message at selected (when >= 0) is marked with a
// gutter bar so version and edit keys have a visible target.
func renderMessages(messages []*types.Message, width, selected int) string {
	if width <= 0 {
		width = 80
	}
	bodyWidth := width - 2
	if bodyWidth < 10 {
		bodyWidth = 10
	}

	var sections []string
	for i, msg := range messages {
		block := renderMessage(msg, bodyWidth)
		if block == "" {
			continue
		}
		if i == selected {
			block = selectedMessageStyle.Render(block)
		}
		sections = append(sections, block)
	}
	return strings.Join(sections, "\n\n")
}

func renderMessage(msg *types.Message, width int) string {
	var b strings.Builder
	b.WriteString(messageLabel(msg))

	body := strings.TrimSpace(msg.Content)
	switch {
	case msg.Pending() && msg.Role == types.RoleBot && body == "":
		b.WriteString("\n" + dimStyle.Render("Thinking..."))
	case msg.IsRegenerating:
		b.WriteString("\n" + dimStyle.Render("Regenerating..."))
	case msg.Role == types.RoleBot:
		b.WriteString("\n" + renderMarkdown(body, width))
	default:
		b.WriteString("\n" + xansi.Hardwrap(body, width, true))
	}

	if srcs := renderSources(msg.Sources, width); srcs != "" {
		b.WriteString("\n" + srcs)
	}
	return b.String()
}

func messageLabel(msg *types.Message) string {
	var label string
	if msg.Role == types.RoleBot {
		label = botLabelStyle.Render("Nutribot")
	} else {
		label = userLabelStyle.Render("You")
	}

	var tags []string
	if total := msg.TotalVersions(); total > 1 {
		current := msg.CurrentVersion
		if current < 1 || current > total {
			current = total
		}
		tags = append(tags, fmt.Sprintf("v%d/%d", current, total))
	}
	if msg.IsEdited {
		tags = append(tags, "edited")
	}
	if msg.Pending() {
		tags = append(tags, "sending")
	}
	if len(tags) > 0 {
		label += " " + dimStyle.Render("["+strings.Join(tags, ", ")+"]")
	}
	return label
}

func renderSources(sources []types.Source, width int) string {
	if len(sources) == 0 {
		return ""
	}
	parts := make([]string, 0, len(sources))
	for _, src := range sources {
		title := strings.TrimSpace(src.Title)
		if title == "" {
			title = src.Document
		}
		if src.Page > 0 {
			title = fmt.Sprintf("%s p.%d", title, src.Page)
		}
		parts = append(parts, title)
	}
	line := "Sources: " + strings.Join(parts, "; ")
	return dimStyle.Render(xansi.Hardwrap(line, width, true))
}

// truncateToWidth clips s to at most width display cells, appending an
// ellipsis when anything was cut.
func truncateToWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return runewidth.Truncate(s, width-1, "") + "…"
}
