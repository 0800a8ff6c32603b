package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/HaRin2806/nutribot-cli/internal/client"
	"github.com/HaRin2806/nutribot-cli/internal/types"
)

// MessagePipeline makes sending feel instantaneous: it appends an optimistic
// user/bot placeholder pair before the network round trip, then either
// replaces them with server truth (via refetch) or rolls them back.
type MessagePipeline struct {
	api   API
	store *Store
	fetch *FetchCoordinator
	ages  *AgeResolver
	log   zerolog.Logger
}

func NewMessagePipeline(api API, store *Store, fetch *FetchCoordinator, ages *AgeResolver, log zerolog.Logger) *MessagePipeline {
	return &MessagePipeline{api: api, store: store, fetch: fetch, ages: ages, log: log}
}

// SendResult reports where a successful send landed.
type SendResult struct {
	ConversationID  string
	NewConversation bool
}

// Send posts a chat message to the given conversation, or starts a new one
// when conversationID is empty. The age gate runs first: if no age-context
// can be resolved, Send returns ErrAgeRequired with no state mutation and no
// network I/O.
func (p *MessagePipeline) Send(ctx context.Context, content, conversationID string) (*SendResult, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	if p.store.User() == nil {
		return nil, ErrNotAuthenticated
	}

	age, err := p.ages.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	correlation := newCorrelationID()
	now := time.Now()
	tempUser := &types.Message{
		TempID:    "temp_user_" + correlation,
		Role:      types.RoleUser,
		Content:   content,
		Timestamp: now,
	}
	tempBot := &types.Message{
		TempID:         "temp_bot_" + correlation,
		Role:           types.RoleBot,
		Timestamp:      now,
		IsRegenerating: true,
	}

	// Optimistic step: both placeholders land before any network I/O.
	createdPlaceholder := false
	p.store.Update(func(state *State) {
		if state.ActiveConversation == nil {
			state.ActiveConversation = &types.Conversation{AgeContext: age}
			createdPlaceholder = true
		}
		state.ActiveConversation.Messages = append(state.ActiveConversation.Messages, tempUser, tempBot)
		state.IsLoading = true
	})
	defer p.store.Update(func(state *State) {
		state.IsLoading = false
	})

	resp, err := p.api.SendMessage(ctx, client.SendMessageRequest{
		Message:        content,
		Age:            age,
		ConversationID: conversationID,
	})
	if err != nil {
		p.rollback(tempUser.TempID, tempBot.TempID, createdPlaceholder)
		p.log.Error().Err(err).Str("conversation_id", conversationID).Msg("send failed")
		return nil, err
	}

	result := &SendResult{
		ConversationID:  resp.ConversationID,
		NewConversation: conversationID == "",
	}
	if resp.ConversationID != "" {
		// The refetch replaces the placeholders with server-assigned
		// messages wholesale.
		p.fetch.Invalidate(ctx, resp.ConversationID)
	}
	return result, nil
}

// rollback removes exactly the two placeholder messages, leaving whatever
// was there before the call untouched. A placeholder conversation created by
// this send is dropped entirely, restoring the pre-call nil.
func (p *MessagePipeline) rollback(tempUserID, tempBotID string, createdPlaceholder bool) {
	p.store.Update(func(state *State) {
		conv := state.ActiveConversation
		if conv == nil {
			return
		}
		kept := conv.Messages[:0]
		for _, m := range conv.Messages {
			if m.Pending() && (m.TempID == tempUserID || m.TempID == tempBotID) {
				continue
			}
			kept = append(kept, m)
		}
		conv.Messages = kept
		if createdPlaceholder && conv.Pending() && len(conv.Messages) == 0 {
			state.ActiveConversation = nil
		}
	})
}

// StartNewConversation creates an empty conversation. The same age gate as
// Send applies: no resolvable age-context, no API call.
func (p *MessagePipeline) StartNewConversation(ctx context.Context, title string) (string, error) {
	if p.store.User() == nil {
		return "", ErrNotAuthenticated
	}
	age, err := p.ages.Resolve(ctx)
	if err != nil {
		return "", err
	}
	resp, err := p.api.CreateConversation(ctx, client.CreateConversationRequest{
		Title:      strings.TrimSpace(title),
		AgeContext: age,
	})
	if err != nil {
		p.log.Error().Err(err).Msg("create conversation failed")
		return "", err
	}
	p.fetch.Invalidate(ctx, resp.ConversationID)
	return resp.ConversationID, nil
}

// newCorrelationID ties an optimistic pair together. Timestamp plus a random
// suffix keeps concurrent sends from colliding; ordering between pairs is
// not guaranteed and nothing may rely on it.
func newCorrelationID() string {
	return fmt.Sprintf("%d_%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}
