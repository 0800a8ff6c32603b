package session

import (
	"github.com/rs/zerolog"

	"github.com/HaRin2806/nutribot-cli/internal/types"
)

// Manager assembles the synchronization layer: one shared Store and the
// controllers around it, created at app start and torn down at logout. The
// pieces are exported so the UI can reach each controller directly.
type Manager struct {
	Store         *Store
	Fetch         *FetchCoordinator
	Pipeline      *MessagePipeline
	Versions      *VersionController
	Conversations *ConversationController
	Ages          *AgeResolver
}

func NewManager(api API, prefs AgePersister, prompter AgePrompter, log zerolog.Logger) *Manager {
	store := NewStore()
	fetch := NewFetchCoordinator(api, store, log)
	ages := NewAgeResolver(store, prefs, prompter, log)
	return &Manager{
		Store:         store,
		Fetch:         fetch,
		Ages:          ages,
		Pipeline:      NewMessagePipeline(api, store, fetch, ages, log),
		Versions:      NewVersionController(api, store, fetch, ages, log),
		Conversations: NewConversationController(api, store, fetch, ages, log),
	}
}

// Start installs the authenticated user and primes the age preference.
func (m *Manager) Start(user *types.User, agePreference int) {
	m.Store.Update(func(state *State) {
		state.User = user
		if types.ValidAge(agePreference) {
			state.AgePreference = agePreference
		}
	})
}

// Teardown clears all session state. Called on logout and on fatal auth
// failure; clearing stored credentials is the caller's job.
func (m *Manager) Teardown() {
	m.Store.Reset()
	m.Fetch.Reset()
}
