package flash

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store keeps flash payloads server-side so the cookie carries only an
// opaque token. Use WithStore to switch the middleware from cookie-borne
// payloads to store-backed ones.
//
// Save persists a payload and returns the token to embed in the cookie.
// Load consumes: resolving a token invalidates it in the same operation,
// so concurrent replays of one token deliver at most once. Load returns
// ErrNotFound for unknown tokens and ErrExpired for elapsed ones.
type Store interface {
	Save(ctx context.Context, payload []byte) (string, error)
	Load(ctx context.Context, token string) ([]byte, error)
}

// DefaultTTL bounds how long an unread payload survives in a store.
// One redirect hop completes in seconds; anything older is abandoned.
const DefaultTTL = 10 * time.Minute

type memoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

// Memory is an in-process Store. It is safe for concurrent use and
// intended for tests and single-process applications; multi-instance
// deployments should use a shared store such as redistore.
//
// Expired entries are dropped lazily on access and swept on Save, so no
// background goroutine is involved.
type Memory struct {
	mu    sync.Mutex
	items map[string]memoryEntry
	ttl   time.Duration
}

// NewMemory creates an in-process store. A non-positive ttl falls back
// to DefaultTTL.
func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Memory{
		items: make(map[string]memoryEntry),
		ttl:   ttl,
	}
}

// Save stores the payload under a fresh random token.
func (m *Memory) Save(_ context.Context, payload []byte) (string, error) {
	token := uuid.NewString()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.sweep()
	m.items[token] = memoryEntry{
		payload:   payload,
		expiresAt: time.Now().Add(m.ttl),
	}

	return token, nil
}

// Load resolves a token to its payload, consuming it: the token is gone
// whether the payload was live or expired.
func (m *Memory) Load(_ context.Context, token string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.items[token]
	if !ok {
		return nil, ErrNotFound
	}
	delete(m.items, token)

	if time.Now().After(e.expiresAt) {
		return nil, ErrExpired
	}

	return e.payload, nil
}

// sweep removes expired entries. Caller must hold the lock.
func (m *Memory) sweep() {
	now := time.Now()
	for token, e := range m.items {
		if now.After(e.expiresAt) {
			delete(m.items, token)
		}
	}
}

var _ Store = (*Memory)(nil)
