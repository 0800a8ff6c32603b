package app

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/HaRin2806/nutribot-cli/internal/client"
	"github.com/HaRin2806/nutribot-cli/internal/session"
	"github.com/HaRin2806/nutribot-cli/internal/types"
)

// stubAPI satisfies the session API surface with canned responses so model
// key handling can be exercised without a server.
type stubAPI struct {
	conversation *types.Conversation
}

func (s *stubAPI) ListConversations(ctx context.Context, opts client.ListConversationsOptions) (*client.ConversationsResponse, error) {
	var list []*types.Conversation
	if s.conversation != nil {
		list = append(list, s.conversation)
	}
	return &client.ConversationsResponse{
		Conversations: list,
		Pagination:    types.Pagination{Page: 1, Pages: 1},
	}, nil
}

func (s *stubAPI) GetConversation(ctx context.Context, id string) (*client.ConversationResponse, error) {
	return &client.ConversationResponse{Conversation: s.conversation}, nil
}

func (s *stubAPI) CreateConversation(ctx context.Context, req client.CreateConversationRequest) (*client.CreateConversationResponse, error) {
	return &client.CreateConversationResponse{ConversationID: "c1"}, nil
}

func (s *stubAPI) UpdateConversation(ctx context.Context, id string, req client.UpdateConversationRequest) error {
	return nil
}

func (s *stubAPI) DeleteConversation(ctx context.Context, id string) error  { return nil }
func (s *stubAPI) DeleteConversations(ctx context.Context, ids []string) error { return nil }

func (s *stubAPI) SendMessage(ctx context.Context, req client.SendMessageRequest) (*client.SendMessageResponse, error) {
	return &client.SendMessageResponse{ConversationID: "c1"}, nil
}

func (s *stubAPI) EditMessage(ctx context.Context, messageID string, req client.EditMessageRequest) error {
	return nil
}

func (s *stubAPI) SwitchMessageVersion(ctx context.Context, messageID string, version int, req client.SwitchVersionRequest) error {
	return nil
}

func (s *stubAPI) RegenerateResponse(ctx context.Context, messageID string, req client.RegenerateRequest) error {
	return nil
}

func (s *stubAPI) DeleteMessageAndFollowing(ctx context.Context, messageID string, req client.DeleteMessageRequest) error {
	return nil
}

func browseConversation() *types.Conversation {
	return &types.Conversation{
		ID:           "c1",
		Title:        "breakfast ideas",
		AgeContext:   10,
		MessageCount: 2,
		UpdatedAt:    time.Now(),
		Messages: []*types.Message{
			{ID: "m1", Role: types.RoleUser, Content: "what should I eat?", CurrentVersion: 1,
				Versions: []*types.MessageVersion{{Content: "old"}, {Content: "what should I eat?"}}},
			{ID: "m2", Role: types.RoleBot, Content: "Plenty of vegetables."},
		},
	}
}

func testModel(t *testing.T, conv *types.Conversation) *Model {
	t.Helper()
	api := &stubAPI{conversation: conv}
	manager := session.NewManager(api, nil, nil, zerolog.Nop())
	manager.Start(&types.User{ID: "u1", Name: "Child"}, 0)
	if conv != nil {
		manager.Store.SetActiveConversation(conv)
	}
	m := NewModel(manager, zerolog.Nop())
	m.resize(100, 40)
	m.syncFromStore()
	t.Cleanup(func() {
		if m.unsubscribe != nil {
			m.unsubscribe()
		}
	})
	return m
}

func TestEscEntersBrowseModeOnLastMessage(t *testing.T) {
	m := testModel(t, browseConversation())

	m.Update(keyMsg("esc"))
	if m.mode != uiModeBrowse {
		t.Fatalf("mode = %v, want browse", m.mode)
	}
	if m.selectedMessage != 1 {
		t.Fatalf("selectedMessage = %d, want last index 1", m.selectedMessage)
	}

	m.Update(keyMsg("esc"))
	if m.mode != uiModeInput {
		t.Fatalf("second esc should return to input mode, got %v", m.mode)
	}
}

func TestEscWithNoMessagesStaysInInputMode(t *testing.T) {
	m := testModel(t, nil)
	m.Update(keyMsg("esc"))
	if m.mode != uiModeInput {
		t.Fatalf("mode = %v, want input", m.mode)
	}
}

func TestVersionSwitchRespectsBounds(t *testing.T) {
	m := testModel(t, browseConversation())
	m.Update(keyMsg("esc"))
	m.Update(keyMsg("k")) // select m1, currently at version 1 of 2

	if cmd := m.switchVersionRelative(m.selectedMessageRef(), "c1", -1); cmd != nil {
		t.Fatal("no earlier version exists; expected no command")
	}
	if cmd := m.switchVersionRelative(m.selectedMessageRef(), "c1", 1); cmd == nil {
		t.Fatal("a later version exists; expected a command")
	}
}

func TestVersionSwitchSingleVersionNoop(t *testing.T) {
	m := testModel(t, browseConversation())
	m.Update(keyMsg("esc")) // selects m2, which has one version

	if cmd := m.switchVersionRelative(m.selectedMessageRef(), "c1", 1); cmd != nil {
		t.Fatal("single-version message must not switch")
	}
}

func TestSendWithoutAgeOpensPromptAndKeepsInput(t *testing.T) {
	m := testModel(t, nil) // no conversation, no stored preference

	m.input.SetValue("is juice healthy?")
	m.Update(keyMsg("enter"))

	if !m.agePrompt.IsOpen() {
		t.Fatal("expected the age prompt to open before any send")
	}
	if m.sending {
		t.Fatal("nothing should be in flight while the prompt is open")
	}
	if m.input.Value() != "is juice healthy?" {
		t.Fatalf("input lost while prompting: %q", m.input.Value())
	}
	if m.agePrompt.pendingSend == nil || m.agePrompt.pendingSend.Content != "is juice healthy?" {
		t.Fatalf("prompt did not hold the send: %+v", m.agePrompt.pendingSend)
	}
}

func TestSendWithKnownAgeSkipsPrompt(t *testing.T) {
	m := testModel(t, browseConversation()) // conversation carries age 10

	m.input.SetValue("more ideas please")
	m.Update(keyMsg("enter"))

	if m.agePrompt.IsOpen() {
		t.Fatal("age prompt must not open when the conversation has an age-context")
	}
	if !m.sending {
		t.Fatal("send should be in flight")
	}
	if m.input.Value() != "" {
		t.Fatal("input should clear once the send starts")
	}
}

func TestDeleteFollowingAsksForConfirmation(t *testing.T) {
	m := testModel(t, browseConversation())
	m.Update(keyMsg("esc"))
	m.Update(keyMsg("x"))

	if !m.confirm.IsOpen() {
		t.Fatal("expected a confirmation dialog before deleting messages")
	}
	m.Update(keyMsg("esc"))
	if m.confirm.IsOpen() {
		t.Fatal("esc should dismiss the dialog")
	}
}

func TestRegenerateIgnoresUserMessages(t *testing.T) {
	m := testModel(t, browseConversation())
	m.Update(keyMsg("esc"))
	m.Update(keyMsg("k")) // user message

	_, cmd := m.handleBrowseKey(keyMsg("r"))
	if cmd != nil {
		t.Fatal("regenerate must only apply to bot messages")
	}
}

func TestEditOnlyOwnMessages(t *testing.T) {
	m := testModel(t, browseConversation())
	m.Update(keyMsg("esc")) // bot message selected

	m.Update(keyMsg("e"))
	if m.mode == uiModeEdit {
		t.Fatal("bot messages are not editable")
	}

	m.Update(keyMsg("k"))
	m.Update(keyMsg("e"))
	if m.mode != uiModeEdit {
		t.Fatal("user message should enter edit mode")
	}
	if m.input.Value() != "what should I eat?" {
		t.Fatalf("edit should preload the content, got %q", m.input.Value())
	}

	m.Update(keyMsg("esc"))
	if m.mode != uiModeBrowse {
		t.Fatal("esc should cancel the edit back to browsing")
	}
}
