package app

import (
	"strings"
	"testing"

	xansi "github.com/charmbracelet/x/ansi"

	"github.com/HaRin2806/nutribot-cli/internal/types"
)

func TestRenderMessageVersionIndicator(t *testing.T) {
	msg := &types.Message{
		ID:             "m1",
		Role:           types.RoleUser,
		Content:        "how much protein do I need?",
		IsEdited:       true,
		CurrentVersion: 2,
		Versions: []*types.MessageVersion{
			{Content: "old"}, {Content: "new"},
		},
	}

	plain := xansi.Strip(renderMessage(msg, 60))
	if !strings.Contains(plain, "v2/2") {
		t.Fatalf("expected version tag in label, got %q", plain)
	}
	if !strings.Contains(plain, "edited") {
		t.Fatalf("expected edited tag, got %q", plain)
	}
}

func TestRenderMessageSingleVersionHasNoTag(t *testing.T) {
	msg := &types.Message{ID: "m1", Role: types.RoleUser, Content: "hi"}
	plain := xansi.Strip(renderMessage(msg, 60))
	if strings.Contains(plain, "v1/1") {
		t.Fatalf("single-version messages must not show a version tag: %q", plain)
	}
}

func TestRenderPendingBotShowsThinking(t *testing.T) {
	msg := &types.Message{TempID: "temp_bot_1", Role: types.RoleBot}
	plain := xansi.Strip(renderMessage(msg, 60))
	if !strings.Contains(plain, "Thinking") {
		t.Fatalf("empty pending bot message should show a thinking marker, got %q", plain)
	}
}

func TestRenderPendingUserShowsSendingTag(t *testing.T) {
	msg := &types.Message{TempID: "temp_user_1", Role: types.RoleUser, Content: "hello"}
	plain := xansi.Strip(renderMessage(msg, 60))
	if !strings.Contains(plain, "sending") {
		t.Fatalf("pending user message should be tagged, got %q", plain)
	}
	if !strings.Contains(plain, "hello") {
		t.Fatalf("pending content must still render, got %q", plain)
	}
}

func TestRenderRegeneratingMessage(t *testing.T) {
	msg := &types.Message{ID: "m2", Role: types.RoleBot, IsRegenerating: true}
	plain := xansi.Strip(renderMessage(msg, 60))
	if !strings.Contains(plain, "Regenerating") {
		t.Fatalf("regenerating message should show its state, got %q", plain)
	}
}

func TestRenderMessageSources(t *testing.T) {
	msg := &types.Message{
		ID:      "m2",
		Role:    types.RoleBot,
		Content: "Protein needs vary by age.",
		Sources: []types.Source{
			{Title: "Dietary guide", Page: 12},
			{Document: "nutrition.pdf"},
		},
	}
	plain := xansi.Strip(renderMessage(msg, 80))
	if !strings.Contains(plain, "Dietary guide p.12") {
		t.Fatalf("expected titled source with page, got %q", plain)
	}
	if !strings.Contains(plain, "nutrition.pdf") {
		t.Fatalf("expected document fallback for untitled source, got %q", plain)
	}
}

func TestRenderMessagesSkipsNothingAndSeparates(t *testing.T) {
	messages := []*types.Message{
		{ID: "m1", Role: types.RoleUser, Content: "first"},
		{ID: "m2", Role: types.RoleBot, Content: "second"},
	}
	plain := xansi.Strip(renderMessages(messages, 60, -1))
	if !strings.Contains(plain, "first") || !strings.Contains(plain, "second") {
		t.Fatalf("both messages should render, got %q", plain)
	}
	if !strings.Contains(plain, "You") || !strings.Contains(plain, "Nutribot") {
		t.Fatalf("role labels missing, got %q", plain)
	}
}

func TestTruncateToWidth(t *testing.T) {
	cases := []struct {
		in    string
		width int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello world", 8, "hello w…"},
		{"hi", 0, ""},
		{"hello", 1, "…"},
	}
	for _, tc := range cases {
		if got := truncateToWidth(tc.in, tc.width); got != tc.want {
			t.Errorf("truncateToWidth(%q, %d) = %q, want %q", tc.in, tc.width, got, tc.want)
		}
	}
}
