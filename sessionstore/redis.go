package sessionstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps sessions as JSON strings under prefix+user.
type RedisStore struct {
	client    redis.UniversalClient
	prefix    string
	ttl       time.Duration
	ownClient bool
}

// NewRedisStore wraps an existing client; Close leaves the client open.
func NewRedisStore(client redis.UniversalClient, prefix string, ttl time.Duration) *RedisStore {
	return newRedisStore(client, prefix, ttl, false)
}

func newRedisStore(client redis.UniversalClient, prefix string, ttl time.Duration, own bool) *RedisStore {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	if ttl < 0 {
		ttl = 0
	}
	return &RedisStore{client: client, prefix: prefix, ttl: ttl, ownClient: own}
}

// Store sets session under the prefixed user key with the store TTL.
func (r *RedisStore) Store(ctx context.Context, user string, session Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("sessionstore: marshal session: %w", err)
	}
	if err := r.client.Set(ctx, r.prefix+user, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("sessionstore: set %s: %w", user, err)
	}
	return nil
}

// Lookup reads the session under the prefixed user key. A missing key is not an error.
func (r *RedisStore) Lookup(ctx context.Context, user string) (Session, bool, error) {
	data, err := r.client.Get(ctx, r.prefix+user).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Session{}, false, nil
		}
		return Session{}, false, fmt.Errorf("sessionstore: get %s: %w", user, err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return Session{}, false, fmt.Errorf("sessionstore: unmarshal session: %w", err)
	}
	return session, true, nil
}

// Close closes the client only when Open created it.
func (r *RedisStore) Close() error {
	if r.ownClient {
		return r.client.Close()
	}
	return nil
}
