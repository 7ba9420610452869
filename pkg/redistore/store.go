package redistore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/flash"
)

// Store keeps flash payloads in Redis behind random tokens, so multiple
// application instances share one flash space. Payloads expire via Redis
// TTL; an expired or unknown token reads as flash.ErrNotFound (Redis does
// not distinguish the two once a key is gone).
type Store struct {
	client   redis.UniversalClient
	ttl      time.Duration
	prefix   string
	newToken func() string
}

// Option configures the Store.
type Option func(*Store)

// WithTTL bounds how long an unread payload survives.
// Default: flash.DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithPrefix sets the Redis key prefix. Default: "flash".
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// WithTokenFunc overrides token generation. Default: random UUIDs.
func WithTokenFunc(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newToken = fn
		}
	}
}

// New creates a Redis-backed flash store.
//
// Example:
//
//	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
//	store := redistore.New(client, redistore.WithTTL(5*time.Minute))
//	mw := flash.Middleware(flash.WithStore(store))
func New(client redis.UniversalClient, opts ...Option) *Store {
	s := &Store{
		client:   client,
		ttl:      flash.DefaultTTL,
		prefix:   "flash",
		newToken: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save stores the payload under a fresh token with the configured TTL.
func (s *Store) Save(ctx context.Context, payload []byte) (string, error) {
	token := s.newToken()
	if err := s.client.Set(ctx, s.key(token), payload, s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Load resolves a token to its payload and consumes it in one atomic
// GETDEL, so concurrent replays of one token deliver at most once.
func (s *Store) Load(ctx context.Context, token string) ([]byte, error) {
	payload, err := s.client.GetDel(ctx, s.key(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, flash.ErrNotFound
		}
		return nil, err
	}
	return payload, nil
}

func (s *Store) key(token string) string {
	return s.prefix + ":" + token
}

var _ flash.Store = (*Store)(nil)
