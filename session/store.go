package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store persists sessions of type S under opaque tokens. Get returns
// ErrNotFound for unknown tokens and ErrExpired for expired ones, so a
// store's Get method can be passed to Bearer directly.
type Store[S any] interface {
	Get(ctx context.Context, token string) (*S, error)
	Set(ctx context.Context, token string, s *S, ttl time.Duration) error
	Delete(ctx context.Context, token string) error
}

// Issue stores s under a fresh random token and returns the token.
func Issue[S any](ctx context.Context, store Store[S], s *S, ttl time.Duration) (string, error) {
	if s == nil {
		return "", ErrInvalidSession
	}
	token := uuid.NewString()
	if err := store.Set(ctx, token, s, ttl); err != nil {
		return "", err
	}
	return token, nil
}

type memoryEntry[S any] struct {
	value     S
	expiresAt time.Time
}

// MemoryStore is a process-local Store. Expired entries are dropped on read.
type MemoryStore[S any] struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry[S]
	now     func() time.Time
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore[S any]() *MemoryStore[S] {
	return &MemoryStore[S]{
		entries: make(map[string]memoryEntry[S]),
		now:     time.Now,
	}
}

// Get returns a copy of the session stored under token.
func (m *MemoryStore[S]) Get(_ context.Context, token string) (*S, error) {
	m.mu.RLock()
	e, ok := m.entries[token]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	if !e.expiresAt.IsZero() && m.now().After(e.expiresAt) {
		m.mu.Lock()
		delete(m.entries, token)
		m.mu.Unlock()
		return nil, ErrExpired
	}

	v := e.value
	return &v, nil
}

// Set stores a copy of s. A ttl <= 0 never expires.
func (m *MemoryStore[S]) Set(_ context.Context, token string, s *S, ttl time.Duration) error {
	if token == "" || s == nil {
		return ErrInvalidSession
	}

	e := memoryEntry[S]{value: *s}
	if ttl > 0 {
		e.expiresAt = m.now().Add(ttl)
	}

	m.mu.Lock()
	m.entries[token] = e
	m.mu.Unlock()
	return nil
}

// Delete removes token; deleting an unknown token is not an error.
func (m *MemoryStore[S]) Delete(_ context.Context, token string) error {
	m.mu.Lock()
	delete(m.entries, token)
	m.mu.Unlock()
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (m *MemoryStore[S]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
