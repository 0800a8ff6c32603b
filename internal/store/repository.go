package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/HaRin2806/nutribot-cli/internal/types"
)

const (
	RepositoryBackendFile  = "file"
	RepositoryBackendBbolt = "bbolt"
)

// Repository is the local persistence surface. Only two things ever live on
// disk: auth credentials and small user preferences. Conversation data is
// never persisted locally.
type Repository interface {
	Credentials() CredentialStore
	Preferences() PreferenceStore
	Backend() string
	Close() error
}

// Credentials is the persisted auth state. Remember=false means the token is
// session-scoped and Save stores nothing durable.
type Credentials struct {
	Token    string      `json:"token"`
	User     *types.User `json:"user,omitempty"`
	Remember bool        `json:"remember"`
	SavedAt  time.Time   `json:"saved_at,omitempty"`
}

type CredentialStore interface {
	Save(ctx context.Context, creds Credentials) error
	Load(ctx context.Context) (*Credentials, error)
	Clear(ctx context.Context) error
}

// PreferenceStore holds the age preference and the last-opened conversation.
type PreferenceStore interface {
	SetAge(ctx context.Context, age int) error
	Age(ctx context.Context) (int, error)
	SetLastConversation(ctx context.Context, id string) error
	LastConversation(ctx context.Context) (string, error)
}

// RepositoryPaths locates the backing files for each backend.
type RepositoryPaths struct {
	CredentialsPath string
	PreferencesPath string
	DBPath          string
}

// OpenRepository selects a backend by name, defaulting to bbolt.
func OpenRepository(paths RepositoryPaths, backend string) (Repository, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", RepositoryBackendBbolt:
		if strings.TrimSpace(paths.DBPath) == "" {
			return nil, errors.New("db path is required for bbolt repository")
		}
		return NewBboltRepository(paths.DBPath)
	case RepositoryBackendFile:
		return NewFileRepository(paths), nil
	default:
		return nil, errors.New("unsupported repository backend: " + backend)
	}
}
