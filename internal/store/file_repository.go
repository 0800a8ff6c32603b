package store

import (
	"context"
	"errors"
	"os"
	"sync"
	"time"

	"github.com/HaRin2806/nutribot-cli/internal/types"
)

type fileRepository struct {
	credentials CredentialStore
	preferences PreferenceStore
}

// NewFileRepository backs the repository with plain JSON files. Useful where
// a bbolt database is unwanted (shared home directories, debugging).
func NewFileRepository(paths RepositoryPaths) Repository {
	return &fileRepository{
		credentials: &fileCredentialStore{path: paths.CredentialsPath},
		preferences: &filePreferenceStore{path: paths.PreferencesPath},
	}
}

func (r *fileRepository) Credentials() CredentialStore {
	return r.credentials
}

func (r *fileRepository) Preferences() PreferenceStore {
	return r.preferences
}

func (r *fileRepository) Backend() string {
	return RepositoryBackendFile
}

func (r *fileRepository) Close() error {
	return nil
}

type fileCredentialStore struct {
	mu   sync.Mutex
	path string
}

func (s *fileCredentialStore) Save(_ context.Context, creds Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !creds.Remember {
		return s.removeLocked()
	}
	if creds.SavedAt.IsZero() {
		creds.SavedAt = time.Now()
	}
	return writeJSONAtomic(s.path, creds)
}

func (s *fileCredentialStore) Load(_ context.Context) (*Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var creds Credentials
	if err := readJSON(s.path, &creds); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	if creds.Token == "" {
		return nil, nil
	}
	return &creds, nil
}

func (s *fileCredentialStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeLocked()
}

func (s *fileCredentialStore) removeLocked() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

type filePreferences struct {
	Age              int    `json:"age,omitempty"`
	LastConversation string `json:"last_conversation,omitempty"`
}

type filePreferenceStore struct {
	mu   sync.Mutex
	path string
}

func (s *filePreferenceStore) load() filePreferences {
	var prefs filePreferences
	_ = readJSON(s.path, &prefs)
	return prefs
}

func (s *filePreferenceStore) SetAge(_ context.Context, age int) error {
	if !types.ValidAge(age) {
		return errors.New("age out of range")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	prefs := s.load()
	prefs.Age = age
	return writeJSONAtomic(s.path, prefs)
}

func (s *filePreferenceStore) Age(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load().Age, nil
}

func (s *filePreferenceStore) SetLastConversation(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prefs := s.load()
	prefs.LastConversation = id
	return writeJSONAtomic(s.path, prefs)
}

func (s *filePreferenceStore) LastConversation(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load().LastConversation, nil
}
