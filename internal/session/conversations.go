package session

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/HaRin2806/nutribot-cli/internal/client"
	"github.com/HaRin2806/nutribot-cli/internal/types"
)

// ConversationController covers conversation lifecycle mutations outside the
// message pipeline: rename, age-context change, archive, delete. Each
// operation defers to the server and resynchronizes afterwards.
type ConversationController struct {
	api   API
	store *Store
	fetch *FetchCoordinator
	ages  *AgeResolver
	log   zerolog.Logger
}

func NewConversationController(api API, store *Store, fetch *FetchCoordinator, ages *AgeResolver, log zerolog.Logger) *ConversationController {
	return &ConversationController{api: api, store: store, fetch: fetch, ages: ages, log: log}
}

// ListIncludingArchived fetches every conversation, archived ones included.
// The result is returned directly; the store's list keeps its default,
// non-archived view.
func (c *ConversationController) ListIncludingArchived(ctx context.Context) ([]*types.Conversation, error) {
	return c.fetch.fetchAllPages(ctx, true)
}

func (c *ConversationController) Rename(ctx context.Context, id, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyContent
	}
	if err := c.api.UpdateConversation(ctx, id, client.UpdateConversationRequest{Title: &title}); err != nil {
		c.log.Error().Err(err).Str("conversation_id", id).Msg("rename failed")
		return err
	}
	c.fetch.Invalidate(ctx, id)
	return nil
}

// SetAgeContext changes the conversation's age-context. Allowed only while
// the conversation has no messages; the capability check mirrors what the UI
// consults before showing the affordance at all.
func (c *ConversationController) SetAgeContext(ctx context.Context, id string, age int) error {
	conv := c.store.ActiveConversation()
	if conv == nil || conv.ID != id {
		return ErrNoActiveConversation
	}
	if !c.ages.CanEditAge(conv) {
		return ErrAgeLocked
	}
	if !types.ValidAge(age) {
		return ErrAgeOutOfRange
	}
	// Scoped to this conversation only; the stored age preference is
	// untouched.
	if err := c.api.UpdateConversation(ctx, id, client.UpdateConversationRequest{AgeContext: &age}); err != nil {
		c.log.Error().Err(err).Str("conversation_id", id).Msg("age-context update failed")
		return err
	}
	c.fetch.Invalidate(ctx, id)
	return nil
}

func (c *ConversationController) SetArchived(ctx context.Context, id string, archived bool) error {
	if err := c.api.UpdateConversation(ctx, id, client.UpdateConversationRequest{IsArchived: &archived}); err != nil {
		c.log.Error().Err(err).Str("conversation_id", id).Msg("archive toggle failed")
		return err
	}
	// Archived conversations leave the default list; skip the detail fetch
	// when the active conversation is the one that just moved.
	c.fetch.MarkStale()
	if _, err := c.fetch.FetchConversations(ctx, true); err != nil {
		c.log.Warn().Err(err).Msg("list reload after archive failed")
	}
	if archived {
		c.store.Update(func(state *State) {
			if state.ActiveConversation != nil && state.ActiveConversation.ID == id {
				state.ActiveConversation = nil
			}
		})
	}
	return nil
}

// Delete removes a conversation. Callers must have obtained explicit user
// confirmation first.
func (c *ConversationController) Delete(ctx context.Context, id string) error {
	if err := c.api.DeleteConversation(ctx, id); err != nil {
		c.log.Error().Err(err).Str("conversation_id", id).Msg("delete conversation failed")
		return err
	}
	c.afterDelete(ctx, map[string]bool{id: true})
	return nil
}

// DeleteMany bulk-deletes conversations. Same confirmation contract as
// Delete.
func (c *ConversationController) DeleteMany(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := c.api.DeleteConversations(ctx, ids); err != nil {
		c.log.Error().Err(err).Int("count", len(ids)).Msg("bulk delete failed")
		return err
	}
	deleted := make(map[string]bool, len(ids))
	for _, id := range ids {
		deleted[id] = true
	}
	c.afterDelete(ctx, deleted)
	return nil
}

func (c *ConversationController) afterDelete(ctx context.Context, deleted map[string]bool) {
	c.store.Update(func(state *State) {
		if state.ActiveConversation != nil && deleted[state.ActiveConversation.ID] {
			state.ActiveConversation = nil
		}
	})
	c.fetch.MarkStale()
	if _, err := c.fetch.FetchConversations(ctx, true); err != nil {
		c.log.Warn().Err(err).Msg("list reload after delete failed")
	}
}
