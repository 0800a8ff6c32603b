package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/HaRin2806/nutribot-cli/internal/types"
)

func openBackends(t *testing.T) map[string]Repository {
	t.Helper()
	dir := t.TempDir()
	bbolt, err := OpenRepository(RepositoryPaths{DBPath: filepath.Join(dir, "nutribot.db")}, RepositoryBackendBbolt)
	if err != nil {
		t.Fatalf("open bbolt repository: %v", err)
	}
	t.Cleanup(func() { _ = bbolt.Close() })
	file, err := OpenRepository(RepositoryPaths{
		CredentialsPath: filepath.Join(dir, "credentials.json"),
		PreferencesPath: filepath.Join(dir, "preferences.json"),
	}, RepositoryBackendFile)
	if err != nil {
		t.Fatalf("open file repository: %v", err)
	}
	t.Cleanup(func() { _ = file.Close() })
	return map[string]Repository{
		RepositoryBackendBbolt: bbolt,
		RepositoryBackendFile:  file,
	}
}

func TestCredentialRoundTrip(t *testing.T) {
	for backend, repo := range openBackends(t) {
		t.Run(backend, func(t *testing.T) {
			ctx := context.Background()
			creds := Credentials{
				Token:    "tok-1",
				User:     &types.User{ID: "u1", Name: "An", Email: "an@example.com", IsAdmin: true},
				Remember: true,
			}
			if err := repo.Credentials().Save(ctx, creds); err != nil {
				t.Fatalf("Save: %v", err)
			}
			loaded, err := repo.Credentials().Load(ctx)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if loaded == nil || loaded.Token != "tok-1" {
				t.Fatalf("unexpected credentials %+v", loaded)
			}
			if loaded.User == nil || loaded.User.Email != "an@example.com" || !loaded.User.IsAdmin {
				t.Fatalf("unexpected user %+v", loaded.User)
			}
			if loaded.SavedAt.IsZero() {
				t.Fatalf("SavedAt must be stamped")
			}

			if err := repo.Credentials().Clear(ctx); err != nil {
				t.Fatalf("Clear: %v", err)
			}
			loaded, err = repo.Credentials().Load(ctx)
			if err != nil {
				t.Fatalf("Load after clear: %v", err)
			}
			if loaded != nil {
				t.Fatalf("expected nil after clear, got %+v", loaded)
			}
		})
	}
}

func TestSessionTierCredentialsSkipDisk(t *testing.T) {
	for backend, repo := range openBackends(t) {
		t.Run(backend, func(t *testing.T) {
			ctx := context.Background()
			err := repo.Credentials().Save(ctx, Credentials{Token: "tok", Remember: false})
			if err != nil {
				t.Fatalf("Save: %v", err)
			}
			loaded, err := repo.Credentials().Load(ctx)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if loaded != nil {
				t.Fatalf("session-tier save must not persist, got %+v", loaded)
			}
		})
	}
}

func TestPreferenceRoundTrip(t *testing.T) {
	for backend, repo := range openBackends(t) {
		t.Run(backend, func(t *testing.T) {
			ctx := context.Background()
			if err := repo.Preferences().SetAge(ctx, 8); err != nil {
				t.Fatalf("SetAge: %v", err)
			}
			age, err := repo.Preferences().Age(ctx)
			if err != nil || age != 8 {
				t.Fatalf("Age = %d, %v", age, err)
			}
			if err := repo.Preferences().SetAge(ctx, 25); err == nil {
				t.Fatalf("out-of-range age must be rejected")
			}

			if err := repo.Preferences().SetLastConversation(ctx, "c1"); err != nil {
				t.Fatalf("SetLastConversation: %v", err)
			}
			id, err := repo.Preferences().LastConversation(ctx)
			if err != nil || id != "c1" {
				t.Fatalf("LastConversation = %q, %v", id, err)
			}
		})
	}
}

func TestOpenRepositoryDefaultsToBbolt(t *testing.T) {
	dir := t.TempDir()
	repo, err := OpenRepository(RepositoryPaths{DBPath: filepath.Join(dir, "n.db")}, "")
	if err != nil {
		t.Fatalf("OpenRepository: %v", err)
	}
	defer repo.Close()
	if repo.Backend() != RepositoryBackendBbolt {
		t.Fatalf("expected bbolt default, got %s", repo.Backend())
	}

	if _, err := OpenRepository(RepositoryPaths{}, "redis"); err == nil {
		t.Fatalf("unknown backend must be rejected")
	}
}
