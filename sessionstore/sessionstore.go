// Package sessionstore keeps the session keys issued by the CS-Cart auth endpoint,
// keyed by user email.
package sessionstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Session is what a successful auth request hands out.
type Session struct {
	Key  string `json:"key"`
	Link string `json:"link,omitempty"`
}

// Store maps a user identifier to its latest Session. Storing a session for a user
// replaces the previous one.
type Store interface {
	Store(ctx context.Context, user string, session Session) error
	Lookup(ctx context.Context, user string) (Session, bool, error)
	Close() error
}

// Backend names accepted by Open.
const (
	TypeMemory = "memory"
	TypeRedis  = "redis"
	TypeBolt   = "bbolt"
)

const defaultKeyPrefix = "cscart:session:"

// Options selects and configures a backend for Open.
type Options struct {
	Type string `mapstructure:"type"`

	// redis
	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"`
	KeyPrefix     string        `mapstructure:"key_prefix"`
	TTL           time.Duration `mapstructure:"ttl"` // zero keeps sessions until replaced

	// bbolt
	Path string `mapstructure:"path"`
}

// Open creates the configured backend. An empty type selects the in-memory store.
func Open(opts Options) (Store, error) {
	switch strings.TrimSpace(strings.ToLower(opts.Type)) {
	case "", TypeMemory:
		return NewMemoryStore(), nil
	case TypeRedis:
		if strings.TrimSpace(opts.RedisAddr) == "" {
			return nil, fmt.Errorf("redis session store requires an address")
		}
		client := redis.NewClient(&redis.Options{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
		})
		return newRedisStore(client, opts.KeyPrefix, opts.TTL, true), nil
	case TypeBolt, "bolt":
		if strings.TrimSpace(opts.Path) == "" {
			return nil, fmt.Errorf("bbolt session store requires a path")
		}
		return OpenBoltStore(opts.Path)
	default:
		return nil, fmt.Errorf("unsupported session store type %q", opts.Type)
	}
}
