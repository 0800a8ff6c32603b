package session

import (
	"sync"

	"github.com/HaRin2806/nutribot-cli/internal/types"
)

// State is the session-scoped UI state: the current user, the conversation
// being viewed, the summary list, the age preference, and loading flags.
type State struct {
	User                   *types.User
	ActiveConversation     *types.Conversation
	Conversations          []*types.Conversation
	AgePreference          int
	IsLoading              bool
	IsLoadingConversations bool
}

// Store is the single source of truth for session state. All mutation goes
// through Update; no caller writes State fields directly. A mutex serializes
// writers, which preserves the run-to-completion semantics the rest of the
// layer assumes even though callers live on different goroutines.
//
// Updates are last-write-wins per field. Callers issuing logically dependent
// updates are responsible for ordering them; the FetchCoordinator's sequence
// stamps handle the one place that matters (racing detail fetches).
type Store struct {
	mu          sync.Mutex
	state       State
	subscribers map[int]func()
	nextSubID   int
}

func NewStore() *Store {
	return &Store{subscribers: map[int]func(){}}
}

// Snapshot returns a copy of the current state. The slice header and pointers
// are shared; treat the returned value as read-only.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Update applies fn to the state under the store lock and then notifies
// subscribers. fn must not block or call back into the store.
func (s *Store) Update(fn func(*State)) {
	s.mu.Lock()
	fn(&s.state)
	subs := make([]func(), 0, len(s.subscribers))
	for _, sub := range s.subscribers {
		subs = append(subs, sub)
	}
	s.mu.Unlock()
	for _, sub := range subs {
		sub()
	}
}

// Subscribe registers a change callback and returns the unsubscribe func.
func (s *Store) Subscribe(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

// Reset clears everything except subscribers. Called on logout.
func (s *Store) Reset() {
	s.Update(func(state *State) {
		*state = State{}
	})
}

func (s *Store) User() *types.User {
	return s.Snapshot().User
}

func (s *Store) ActiveConversation() *types.Conversation {
	return s.Snapshot().ActiveConversation
}

func (s *Store) SetUser(user *types.User) {
	s.Update(func(state *State) {
		state.User = user
	})
}

func (s *Store) SetActiveConversation(conv *types.Conversation) {
	s.Update(func(state *State) {
		state.ActiveConversation = conv
	})
}

func (s *Store) SetAgePreference(age int) {
	s.Update(func(state *State) {
		state.AgePreference = age
	})
}
