package app

import (
	"strings"
	"testing"

	xansi "github.com/charmbracelet/x/ansi"
)

func TestAgePromptAcceptsValidAge(t *testing.T) {
	a := NewAgePromptController()
	a.Open("what should I eat?", "c1")

	a.HandleKey(keyMsg("1"))
	a.HandleKey(keyMsg("2"))
	handled, submission := a.HandleKey(keyMsg("enter"))
	if !handled || submission == nil {
		t.Fatal("expected a submission for age 12")
	}
	if submission.Age != 12 {
		t.Fatalf("age = %d, want 12", submission.Age)
	}
	if submission.Send.Content != "what should I eat?" || submission.Send.ConversationID != "c1" {
		t.Fatalf("held-back send lost: %+v", submission.Send)
	}
	if a.IsOpen() {
		t.Fatal("prompt should close after submit")
	}
}

func TestAgePromptRejectsOutOfRange(t *testing.T) {
	a := NewAgePromptController()
	a.Open("hi", "")

	a.HandleKey(keyMsg("2"))
	a.HandleKey(keyMsg("5"))
	_, submission := a.HandleKey(keyMsg("enter"))
	if submission != nil {
		t.Fatalf("age 25 must not submit, got %+v", submission)
	}
	if !a.IsOpen() {
		t.Fatal("prompt should stay open after an invalid age")
	}
	if a.errText == "" {
		t.Fatal("expected a validation message")
	}
}

func TestAgePromptRejectsEmptyInput(t *testing.T) {
	a := NewAgePromptController()
	a.Open("hi", "")

	_, submission := a.HandleKey(keyMsg("enter"))
	if submission != nil {
		t.Fatal("empty input must not submit")
	}
}

func TestAgePromptBackspaceEdits(t *testing.T) {
	a := NewAgePromptController()
	a.Open("hi", "")

	a.HandleKey(keyMsg("1"))
	a.HandleKey(keyMsg("8"))
	a.HandleKey(keyMsg("backspace"))
	a.HandleKey(keyMsg("9"))
	_, submission := a.HandleKey(keyMsg("enter"))
	if submission == nil || submission.Age != 19 {
		t.Fatalf("expected age 19, got %+v", submission)
	}
}

func TestAgePromptIgnoresNonDigits(t *testing.T) {
	a := NewAgePromptController()
	a.Open("hi", "")

	a.HandleKey(keyMsg("a"))
	a.HandleKey(keyMsg("7"))
	_, submission := a.HandleKey(keyMsg("enter"))
	if submission == nil || submission.Age != 7 {
		t.Fatalf("expected age 7, got %+v", submission)
	}
}

func TestAgePromptEscDismisses(t *testing.T) {
	a := NewAgePromptController()
	a.Open("hi", "c1")

	handled, submission := a.HandleKey(keyMsg("esc"))
	if !handled || submission != nil {
		t.Fatal("esc must dismiss without submitting")
	}
	if a.IsOpen() {
		t.Fatal("prompt should close on esc")
	}
	if a.pendingSend != nil {
		t.Fatal("dismissal should drop the held-back send")
	}
}

func TestAgePromptViewNamesRange(t *testing.T) {
	a := NewAgePromptController()
	a.Open("hi", "")

	plain := xansi.Strip(a.View(80))
	if !strings.Contains(plain, "1-19") {
		t.Fatalf("view should show the supported range, got %q", plain)
	}
}
