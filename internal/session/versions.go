package session

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/HaRin2806/nutribot-cli/internal/client"
	"github.com/HaRin2806/nutribot-cli/internal/types"
)

// Phase is the lifecycle state of a single message while one of the mutating
// operations runs. Invalid transitions (edit while regenerating, a second
// submit while one is in flight) are rejected structurally instead of via
// scattered boolean flags.
type Phase int

const (
	PhaseViewing Phase = iota
	PhaseEditing
	PhaseSubmitting
	PhaseVersionSwitching
	PhaseRegenerating
)

func (p Phase) String() string {
	switch p {
	case PhaseEditing:
		return "editing"
	case PhaseSubmitting:
		return "submitting"
	case PhaseVersionSwitching:
		return "version-switching"
	case PhaseRegenerating:
		return "regenerating"
	default:
		return "viewing"
	}
}

// VersionController mutates a single message's content or lifecycle. After
// every server call — success or failure — it refetches the conversation
// detail, deferring to the server as the source of truth for is_edited,
// version history, and truncated following messages.
type VersionController struct {
	api   API
	store *Store
	fetch *FetchCoordinator
	ages  *AgeResolver
	log   zerolog.Logger

	mu     sync.Mutex
	phases map[string]Phase
}

func NewVersionController(api API, store *Store, fetch *FetchCoordinator, ages *AgeResolver, log zerolog.Logger) *VersionController {
	return &VersionController{
		api:    api,
		store:  store,
		fetch:  fetch,
		ages:   ages,
		log:    log,
		phases: map[string]Phase{},
	}
}

// Phase returns the message's current lifecycle phase.
func (c *VersionController) Phase(messageID string) Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phases[messageID]
}

// transition moves the message into next if its current phase is one of the
// allowed origins. Returns false when the move is rejected.
func (c *VersionController) transition(messageID string, next Phase, from ...Phase) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	current := c.phases[messageID]
	for _, origin := range from {
		if current == origin {
			if next == PhaseViewing {
				delete(c.phases, messageID)
			} else {
				c.phases[messageID] = next
			}
			return true
		}
	}
	return false
}

func (c *VersionController) settle(messageID string) {
	c.mu.Lock()
	delete(c.phases, messageID)
	c.mu.Unlock()
}

// BeginEdit marks the message as being edited. False when the message is
// busy with another operation.
func (c *VersionController) BeginEdit(messageID string) bool {
	return c.transition(messageID, PhaseEditing, PhaseViewing)
}

// CancelEdit returns an editing message to viewing. No-op otherwise.
func (c *VersionController) CancelEdit(messageID string) {
	c.transition(messageID, PhaseViewing, PhaseEditing)
}

// EditMessage submits new content for a user message. Empty content is
// rejected before any I/O. A submission already in flight makes repeated
// calls silent no-ops. The conversation detail is refetched on success and
// on failure alike; the failure is also returned for display.
func (c *VersionController) EditMessage(ctx context.Context, messageID, conversationID, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return ErrEmptyContent
	}
	if !c.transition(messageID, PhaseSubmitting, PhaseViewing, PhaseEditing) {
		// Already submitting or otherwise busy.
		return nil
	}
	defer c.settle(messageID)

	age, err := c.ages.Resolve(ctx)
	if err != nil {
		return err
	}

	err = c.api.EditMessage(ctx, messageID, client.EditMessageRequest{
		Content:        content,
		ConversationID: conversationID,
		Age:            age,
	})
	// Refetch regardless: a failed edit may still have partially mutated
	// local state, and server truth heals it.
	c.fetch.Invalidate(ctx, conversationID)
	if err != nil {
		c.log.Error().Err(err).Str("message_id", messageID).Msg("edit failed")
		return err
	}
	return nil
}

// SwitchVersion displays another stored variant of an edited message.
// Switching to the variant already current is a guarded no-op with no
// network call; an out-of-range version is a caller error.
func (c *VersionController) SwitchVersion(ctx context.Context, messageID, conversationID string, version int) error {
	msg := c.findMessage(messageID)
	if msg == nil {
		return ErrMessageNotFound
	}
	total := msg.TotalVersions()
	if version < 1 || version > total {
		return ErrVersionOutOfRange
	}
	if version == msg.CurrentVersion {
		return nil
	}
	if !c.transition(messageID, PhaseVersionSwitching, PhaseViewing) {
		return nil
	}
	defer c.settle(messageID)

	err := c.api.SwitchMessageVersion(ctx, messageID, version, client.SwitchVersionRequest{
		ConversationID: conversationID,
	})
	c.fetch.Invalidate(ctx, conversationID)
	if err != nil {
		c.log.Error().Err(err).Str("message_id", messageID).Int("version", version).Msg("version switch failed")
		return err
	}
	return nil
}

// Regenerate asks the server to recompose a bot answer. Only bot messages
// qualify; targeting anything else fails explicitly with no mutating call.
// The message shows immediate feedback (content cleared, regenerating flag)
// and the refetch afterwards restores server truth in every outcome.
func (c *VersionController) Regenerate(ctx context.Context, messageID, conversationID string) error {
	msg := c.findMessage(messageID)
	if msg == nil {
		return ErrMessageNotFound
	}
	if msg.Role != types.RoleBot {
		return ErrNotBotMessage
	}
	if !c.transition(messageID, PhaseRegenerating, PhaseViewing) {
		return nil
	}
	defer c.settle(messageID)

	age, err := c.ages.Resolve(ctx)
	if err != nil {
		return err
	}

	c.store.Update(func(state *State) {
		if m := state.ActiveConversation.MessageByID(messageID); m != nil {
			m.IsRegenerating = true
			m.Content = ""
		}
	})

	err = c.api.RegenerateResponse(ctx, messageID, client.RegenerateRequest{
		ConversationID: conversationID,
		Age:            age,
	})
	c.fetch.Invalidate(ctx, conversationID)
	if err != nil {
		c.log.Error().Err(err).Str("message_id", messageID).Msg("regenerate failed")
		return err
	}
	return nil
}

// DeleteMessageAndFollowing removes the message and everything after it.
// Destructive and non-reversible server-side: callers must have obtained
// explicit user confirmation before invoking this.
func (c *VersionController) DeleteMessageAndFollowing(ctx context.Context, messageID, conversationID string) error {
	if c.findMessage(messageID) == nil {
		return ErrMessageNotFound
	}
	err := c.api.DeleteMessageAndFollowing(ctx, messageID, client.DeleteMessageRequest{
		ConversationID: conversationID,
	})
	c.fetch.Invalidate(ctx, conversationID)
	if err != nil {
		c.log.Error().Err(err).Str("message_id", messageID).Msg("delete failed")
		return err
	}
	return nil
}

func (c *VersionController) findMessage(messageID string) *types.Message {
	return c.store.ActiveConversation().MessageByID(messageID)
}
