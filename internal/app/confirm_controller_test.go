package app

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	xansi "github.com/charmbracelet/x/ansi"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg(tea.Key{Type: tea.KeyEnter})
	case "esc":
		return tea.KeyMsg(tea.Key{Type: tea.KeyEsc})
	case "tab":
		return tea.KeyMsg(tea.Key{Type: tea.KeyTab})
	case "backspace":
		return tea.KeyMsg(tea.Key{Type: tea.KeyBackspace})
	case "left":
		return tea.KeyMsg(tea.Key{Type: tea.KeyLeft})
	case "right":
		return tea.KeyMsg(tea.Key{Type: tea.KeyRight})
	default:
		return tea.KeyMsg(tea.Key{Type: tea.KeyRunes, Runes: []rune(s)})
	}
}

func TestConfirmYesRunsPendingCommand(t *testing.T) {
	c := NewConfirmController()
	ran := false
	c.Open("Delete conversation", "Delete \"lunch\"?", func() tea.Msg {
		ran = true
		return nil
	})

	handled, choice, cmd := c.HandleKey(keyMsg("y"))
	if !handled || choice != confirmChoiceConfirm {
		t.Fatalf("expected confirm, handled=%v choice=%v", handled, choice)
	}
	if cmd == nil {
		t.Fatal("expected pending command back on confirm")
	}
	cmd()
	if !ran {
		t.Fatal("pending command did not run")
	}
	if c.IsOpen() {
		t.Fatal("dialog should close after confirm")
	}
}

func TestConfirmDefaultsToCancelOnEnter(t *testing.T) {
	c := NewConfirmController()
	c.Open("Delete messages", "Delete this message and everything after it?", func() tea.Msg { return nil })

	handled, choice, cmd := c.HandleKey(keyMsg("enter"))
	if !handled || choice != confirmChoiceCancel {
		t.Fatalf("expected enter on a fresh dialog to cancel, got choice=%v", choice)
	}
	if cmd != nil {
		t.Fatal("cancel must not return the pending command")
	}
}

func TestConfirmArrowSelectionThenEnter(t *testing.T) {
	c := NewConfirmController()
	c.Open("Delete", "sure?", func() tea.Msg { return nil })

	c.HandleKey(keyMsg("left"))
	_, choice, cmd := c.HandleKey(keyMsg("enter"))
	if choice != confirmChoiceConfirm || cmd == nil {
		t.Fatalf("expected confirm after selecting the left button, got %v", choice)
	}
}

func TestConfirmEscAndNCancel(t *testing.T) {
	for _, key := range []string{"esc", "n", "q"} {
		c := NewConfirmController()
		c.Open("Delete", "sure?", func() tea.Msg { return nil })
		handled, choice, _ := c.HandleKey(keyMsg(key))
		if !handled || choice != confirmChoiceCancel {
			t.Fatalf("key %q: expected cancel, got handled=%v choice=%v", key, handled, choice)
		}
		if c.IsOpen() {
			t.Fatalf("key %q: dialog should close", key)
		}
	}
}

func TestConfirmViewWrapsLongMessage(t *testing.T) {
	c := NewConfirmController()
	c.Open("Delete conversation",
		"Delete "+strings.Repeat("very-long-title-", 10)+" and all of its messages?",
		func() tea.Msg { return nil })

	view := c.View(120)
	for _, line := range strings.Split(xansi.Strip(view), "\n") {
		if w := xansi.StringWidth(line); w > confirmMaxWidth+2 {
			t.Fatalf("line wider than dialog: %d %q", w, line)
		}
	}
}

func TestConfirmClosedControllerIgnoresKeys(t *testing.T) {
	c := NewConfirmController()
	handled, _, _ := c.HandleKey(keyMsg("y"))
	if handled {
		t.Fatal("closed dialog must not consume keys")
	}
}
