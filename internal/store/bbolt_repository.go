package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/HaRin2806/nutribot-cli/internal/types"
)

var (
	bucketCredentials = []byte("credentials")
	bucketPreferences = []byte("preferences")

	keyToken    = []byte("token")
	keyUser     = []byte("user")
	keyRemember = []byte("remember")
	keySavedAt  = []byte("saved_at")
	keyAge      = []byte("age")
	keyLastConv = []byte("last_conversation")
)

type bboltRepository struct {
	db          *bolt.DB
	credentials CredentialStore
	preferences PreferenceStore
}

func NewBboltRepository(path string) (Repository, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("repository db path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, err
	}
	if err := initBboltSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &bboltRepository{
		db:          db,
		credentials: &bboltCredentialStore{db: db},
		preferences: &bboltPreferenceStore{db: db},
	}, nil
}

func initBboltSchema(db *bolt.DB) error {
	return db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketCredentials, bucketPreferences} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *bboltRepository) Credentials() CredentialStore {
	return r.credentials
}

func (r *bboltRepository) Preferences() PreferenceStore {
	return r.preferences
}

func (r *bboltRepository) Backend() string {
	return RepositoryBackendBbolt
}

func (r *bboltRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

type bboltCredentialStore struct {
	db *bolt.DB
}

func (s *bboltCredentialStore) Save(_ context.Context, creds Credentials) error {
	if !creds.Remember {
		// Session-tier credentials never touch disk.
		return s.clear()
	}
	var userJSON []byte
	if creds.User != nil {
		encoded, err := json.Marshal(creds.User)
		if err != nil {
			return err
		}
		userJSON = encoded
	}
	savedAt := creds.SavedAt
	if savedAt.IsZero() {
		savedAt = time.Now()
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketCredentials)
		if err := bucket.Put(keyToken, []byte(creds.Token)); err != nil {
			return err
		}
		if err := bucket.Put(keyRemember, []byte("true")); err != nil {
			return err
		}
		if err := bucket.Put(keySavedAt, []byte(savedAt.UTC().Format(time.RFC3339))); err != nil {
			return err
		}
		if userJSON != nil {
			return bucket.Put(keyUser, userJSON)
		}
		return bucket.Delete(keyUser)
	})
}

func (s *bboltCredentialStore) Load(_ context.Context) (*Credentials, error) {
	var creds *Credentials
	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketCredentials)
		token := bucket.Get(keyToken)
		if len(token) == 0 {
			return nil
		}
		loaded := &Credentials{
			Token:    string(token),
			Remember: string(bucket.Get(keyRemember)) == "true",
		}
		if raw := bucket.Get(keySavedAt); len(raw) > 0 {
			if ts, err := time.Parse(time.RFC3339, string(raw)); err == nil {
				loaded.SavedAt = ts
			}
		}
		if raw := bucket.Get(keyUser); len(raw) > 0 {
			var user types.User
			if err := json.Unmarshal(raw, &user); err == nil {
				loaded.User = &user
			}
		}
		creds = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return creds, nil
}

func (s *bboltCredentialStore) Clear(_ context.Context) error {
	return s.clear()
}

func (s *bboltCredentialStore) clear() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucketCredentials); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(bucketCredentials)
		return err
	})
}

type bboltPreferenceStore struct {
	db *bolt.DB
}

func (s *bboltPreferenceStore) SetAge(_ context.Context, age int) error {
	if !types.ValidAge(age) {
		return errors.New("age out of range")
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketPreferences).Put(keyAge, []byte(strconv.Itoa(age)))
	})
}

func (s *bboltPreferenceStore) Age(_ context.Context) (int, error) {
	age := 0
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucketPreferences).Get(keyAge)
		if len(raw) == 0 {
			return nil
		}
		parsed, err := strconv.Atoi(string(raw))
		if err != nil {
			return nil
		}
		age = parsed
		return nil
	})
	return age, err
}

func (s *bboltPreferenceStore) SetLastConversation(_ context.Context, id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketPreferences)
		if strings.TrimSpace(id) == "" {
			return bucket.Delete(keyLastConv)
		}
		return bucket.Put(keyLastConv, []byte(id))
	})
}

func (s *bboltPreferenceStore) LastConversation(_ context.Context) (string, error) {
	id := ""
	err := s.db.View(func(tx *bolt.Tx) error {
		id = string(tx.Bucket(bucketPreferences).Get(keyLastConv))
		return nil
	})
	return id, err
}
