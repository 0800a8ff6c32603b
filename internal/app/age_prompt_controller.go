package app

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/HaRin2806/nutribot-cli/internal/types"
)

// AgePromptController is the modal that collects the learner's age before the
// first message of a conversation. It accepts only a whole number inside the
// supported range; the pending message content is replayed once an age is
// submitted.
type AgePromptController struct {
	active      bool
	input       string
	errText     string
	pendingSend *pendingSend
}

// pendingSend is the message held back while the age prompt is open.
type pendingSend struct {
	Content        string
	ConversationID string
}

// ageSubmission is a validated age plus the send to replay with it.
type ageSubmission struct {
	Age  int
	Send pendingSend
}

func NewAgePromptController() *AgePromptController {
	return &AgePromptController{}
}

func (a *AgePromptController) IsOpen() bool {
	return a != nil && a.active
}

// Open shows the prompt, holding back the send to replay once an age is in.
func (a *AgePromptController) Open(content, conversationID string) {
	if a == nil {
		return
	}
	a.active = true
	a.input = ""
	a.errText = ""
	a.pendingSend = &pendingSend{Content: content, ConversationID: conversationID}
}

func (a *AgePromptController) Close() {
	if a == nil {
		return
	}
	a.active = false
	a.input = ""
	a.errText = ""
	a.pendingSend = nil
}

// HandleKey consumes a key while the prompt is open. A non-nil submission
// means a valid age was entered and the held-back send should be replayed.
func (a *AgePromptController) HandleKey(msg tea.KeyMsg) (bool, *ageSubmission) {
	if a == nil || !a.active {
		return false, nil
	}
	switch msg.String() {
	case "esc":
		a.Close()
		return true, nil
	case "backspace":
		if a.input != "" {
			a.input = a.input[:len(a.input)-1]
		}
		a.errText = ""
		return true, nil
	case "enter":
		value, err := strconv.Atoi(strings.TrimSpace(a.input))
		if err != nil || !types.ValidAge(value) {
			a.errText = fmt.Sprintf("Enter a whole number from %d to %d", types.MinAge, types.MaxAge)
			return true, nil
		}
		submission := &ageSubmission{Age: value}
		if a.pendingSend != nil {
			submission.Send = *a.pendingSend
		}
		a.Close()
		return true, submission
	}
	if len(msg.Runes) == 1 && msg.Runes[0] >= '0' && msg.Runes[0] <= '9' && len(a.input) < 2 {
		a.input += string(msg.Runes)
		a.errText = ""
		return true, nil
	}
	return true, nil
}

func (a *AgePromptController) View(maxWidth int) string {
	if a == nil || !a.active {
		return ""
	}
	width := 44
	if maxWidth > 0 && width > maxWidth-4 {
		width = maxWidth - 4
	}

	var body strings.Builder
	body.WriteString(titleStyle.Render("Learner age"))
	body.WriteString("\n")
	body.WriteString(fmt.Sprintf("Answers are tailored to the learner's age (%d-%d).", types.MinAge, types.MaxAge))
	body.WriteString("\n\n")
	body.WriteString("Age: " + a.input + "▌")
	if a.errText != "" {
		body.WriteString("\n" + errorStyle.Render(a.errText))
	}
	body.WriteString("\n" + dimStyle.Render("enter to confirm, esc to cancel"))

	return dialogStyle.Width(width).Render(body.String())
}
