package app

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

type confirmChoice int

const (
	confirmChoiceNone confirmChoice = iota
	confirmChoiceConfirm
	confirmChoiceCancel
)

const confirmMaxWidth = 60

// ConfirmController is the modal yes/no dialog shown before destructive
// operations. The pending command runs only on an explicit confirm.
type ConfirmController struct {
	active       bool
	title        string
	message      string
	confirmLabel string
	cancelLabel  string
	selected     int
	pending      tea.Cmd
}

func NewConfirmController() *ConfirmController {
	return &ConfirmController{}
}

func (c *ConfirmController) IsOpen() bool {
	return c != nil && c.active
}

// Open arms the dialog with the command to run on confirmation.
func (c *ConfirmController) Open(title, message string, onConfirm tea.Cmd) {
	if c == nil {
		return
	}
	c.active = true
	c.title = strings.TrimSpace(title)
	c.message = strings.TrimSpace(message)
	c.confirmLabel = "Delete"
	c.cancelLabel = "Cancel"
	c.selected = 1
	c.pending = onConfirm
}

func (c *ConfirmController) Close() {
	if c == nil {
		return
	}
	c.active = false
	c.title = ""
	c.message = ""
	c.selected = 0
	c.pending = nil
}

// HandleKey consumes a key while the dialog is open. On confirm it returns
// the armed command and closes.
func (c *ConfirmController) HandleKey(msg tea.KeyMsg) (bool, confirmChoice, tea.Cmd) {
	if c == nil || !c.active {
		return false, confirmChoiceNone, nil
	}
	switch msg.String() {
	case "esc", "q", "n":
		c.Close()
		return true, confirmChoiceCancel, nil
	case "left", "h":
		c.selected = 0
		return true, confirmChoiceNone, nil
	case "right", "l":
		c.selected = 1
		return true, confirmChoiceNone, nil
	case "tab":
		c.selected = 1 - c.selected
		return true, confirmChoiceNone, nil
	case "y":
		cmd := c.pending
		c.Close()
		return true, confirmChoiceConfirm, cmd
	case "enter":
		if c.selected == 0 {
			cmd := c.pending
			c.Close()
			return true, confirmChoiceConfirm, cmd
		}
		c.Close()
		return true, confirmChoiceCancel, nil
	}
	return true, confirmChoiceNone, nil
}

func (c *ConfirmController) View(maxWidth int) string {
	if c == nil || !c.active {
		return ""
	}
	width := confirmMaxWidth
	if maxWidth > 0 && width > maxWidth-4 {
		width = maxWidth - 4
	}
	if width < 20 {
		width = 20
	}

	var body strings.Builder
	title := c.title
	if title == "" {
		title = "Confirm"
	}
	body.WriteString(titleStyle.Render(title))
	if c.message != "" {
		body.WriteString("\n")
		body.WriteString(xansi.Hardwrap(c.message, width, true))
	}
	body.WriteString("\n\n")

	confirm := dialogButtonStyle.Render(c.confirmLabel)
	cancel := dialogButtonStyle.Render(c.cancelLabel)
	if c.selected == 0 {
		confirm = dialogButtonActiveStyle.Render(c.confirmLabel)
	} else {
		cancel = dialogButtonActiveStyle.Render(c.cancelLabel)
	}
	body.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, confirm, "  ", cancel))

	return dialogStyle.Width(width).Render(body.String())
}
