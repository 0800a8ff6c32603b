package session

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/HaRin2806/nutribot-cli/internal/client"
	"github.com/HaRin2806/nutribot-cli/internal/types"
)

const defaultPerPage = 50

// FetchCoordinator sequences conversation list and detail fetches: it avoids
// redundant list calls via a loaded flag, re-fetches after every mutation,
// and discards detail responses that lose a race to a newer request.
type FetchCoordinator struct {
	api   API
	store *Store
	log   zerolog.Logger

	mu        sync.Mutex
	loaded    bool
	detailSeq map[string]uint64
	perPage   int
}

func NewFetchCoordinator(api API, store *Store, log zerolog.Logger) *FetchCoordinator {
	return &FetchCoordinator{
		api:       api,
		store:     store,
		log:       log,
		detailSeq: map[string]uint64{},
		perPage:   defaultPerPage,
	}
}

// Loaded reports whether the conversation list currently reflects a
// successful fetch.
func (f *FetchCoordinator) Loaded() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loaded
}

// MarkStale drops the loaded flag so the next non-forced fetch hits the
// network again.
func (f *FetchCoordinator) MarkStale() {
	f.mu.Lock()
	f.loaded = false
	f.mu.Unlock()
}

// Reset clears all coordinator state. Called on logout.
func (f *FetchCoordinator) Reset() {
	f.mu.Lock()
	f.loaded = false
	f.detailSeq = map[string]uint64{}
	f.mu.Unlock()
}

// FetchConversations loads the non-archived conversation summaries. Without
// an authenticated user it fails before any network I/O. When the list is
// already loaded and force is false, the cached list is returned as-is. On
// failure the list is cleared and the loaded flag dropped so a later call
// retries. The loading flag is always cleared, whatever the outcome.
func (f *FetchCoordinator) FetchConversations(ctx context.Context, force bool) ([]*types.Conversation, error) {
	if f.store.User() == nil {
		return nil, ErrNotAuthenticated
	}

	f.mu.Lock()
	if f.loaded && !force {
		f.mu.Unlock()
		return f.store.Snapshot().Conversations, nil
	}
	f.mu.Unlock()

	f.store.Update(func(state *State) {
		state.IsLoadingConversations = true
	})
	defer f.store.Update(func(state *State) {
		state.IsLoadingConversations = false
	})

	conversations, err := f.fetchAllPages(ctx, false)
	if err != nil {
		f.log.Error().Err(err).Msg("conversation list fetch failed")
		f.mu.Lock()
		f.loaded = false
		f.mu.Unlock()
		f.store.Update(func(state *State) {
			state.Conversations = nil
		})
		return nil, err
	}

	f.mu.Lock()
	f.loaded = true
	f.mu.Unlock()
	f.store.Update(func(state *State) {
		state.Conversations = conversations
	})
	return conversations, nil
}

// fetchAllPages aggregates every page of the list endpoint. The server's
// pagination.pages count is the sole termination signal; a page shorter than
// per_page does not stop the loop on its own.
func (f *FetchCoordinator) fetchAllPages(ctx context.Context, includeArchived bool) ([]*types.Conversation, error) {
	var all []*types.Conversation
	page := 1
	for {
		resp, err := f.api.ListConversations(ctx, client.ListConversationsOptions{
			IncludeArchived: includeArchived,
			Page:            page,
			PerPage:         f.perPage,
		})
		if err != nil {
			return nil, err
		}
		all = append(all, resp.Conversations...)
		if page >= resp.Pagination.Pages {
			return all, nil
		}
		page++
	}
}

// FetchConversationDetail loads the full conversation and installs it as the
// active conversation. An empty id is a no-op. Failures are logged, not
// propagated: the caller gets nil and the previous state stands. A response
// that arrives after a newer fetch for the same id started is discarded.
func (f *FetchCoordinator) FetchConversationDetail(ctx context.Context, id string) *types.Conversation {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}

	f.mu.Lock()
	f.detailSeq[id]++
	seq := f.detailSeq[id]
	f.mu.Unlock()

	resp, err := f.api.GetConversation(ctx, id)
	if err != nil {
		f.log.Error().Err(err).Str("conversation_id", id).Msg("conversation detail fetch failed")
		return nil
	}

	f.mu.Lock()
	stale := seq != f.detailSeq[id]
	f.mu.Unlock()
	if stale {
		f.log.Debug().Str("conversation_id", id).Msg("discarding stale detail response")
		return nil
	}

	conv := resp.Conversation
	f.store.Update(func(state *State) {
		state.ActiveConversation = conv
	})
	return conv
}

// Invalidate is called by every mutating operation after the server round
// trip: it force-reloads the list and, when a conversation id is given,
// re-fetches its detail so the UI reflects server truth rather than local
// optimistic guesses.
func (f *FetchCoordinator) Invalidate(ctx context.Context, conversationID string) {
	f.MarkStale()
	if _, err := f.FetchConversations(ctx, true); err != nil {
		f.log.Warn().Err(err).Msg("list reload after mutation failed")
	}
	if strings.TrimSpace(conversationID) != "" {
		f.FetchConversationDetail(ctx, conversationID)
	}
}
