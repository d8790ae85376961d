package sessionstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

const sessionBucket = "sessions"

// BoltStore persists sessions in a single bbolt bucket.
type BoltStore struct {
	db *bolt.DB
}

// OpenBoltStore opens or creates the database file at path.
func OpenBoltStore(path string) (*BoltStore, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create session store directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt db: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(sessionBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("init bucket: %w", err)
	}
	return &BoltStore{db: db}, nil
}

// Store writes session under user, replacing any previous one.
func (b *BoltStore) Store(_ context.Context, user string, session Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("sessionstore: marshal session: %w", err)
	}
	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(sessionBucket))
		if bucket == nil {
			return fmt.Errorf("session bucket missing")
		}
		return bucket.Put([]byte(user), data)
	})
}

// Lookup reads the session stored under user.
func (b *BoltStore) Lookup(_ context.Context, user string) (Session, bool, error) {
	var session Session
	var found bool
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(sessionBucket))
		if bucket == nil {
			return fmt.Errorf("session bucket missing")
		}
		value := bucket.Get([]byte(user))
		if value == nil {
			return nil
		}
		found = true
		return json.Unmarshal(value, &session)
	})
	if err != nil {
		return Session{}, false, err
	}
	return session, found, nil
}

// Close closes the database file.
func (b *BoltStore) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}
