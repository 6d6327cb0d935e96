package challenge

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryEntry struct {
	value     string
	sc        SignupContext
	expiresAt time.Time
}

// MemoryStore is an in-process Store for local development and tests.
// Expiry is checked lazily on read, which matches the observable Redis
// semantics: an expired key is simply absent.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// NewMemoryStoreWithClock creates a store with an injectable clock so
// tests can simulate TTL expiry without sleeping.
func NewMemoryStoreWithClock(now func() time.Time) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     now,
	}
}

func (s *MemoryStore) put(key string, e memoryEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = e
}

func (s *MemoryStore) get(key string) (memoryEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		return memoryEntry{}, false
	}
	if s.now().After(e.expiresAt) {
		delete(s.entries, key)
		return memoryEntry{}, false
	}
	return e, true
}

func (s *MemoryStore) delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

func (s *MemoryStore) PutArtifact(_ context.Context, accountID uuid.UUID, artifact string, ttl time.Duration) error {
	if ttl <= 0 {
		return ErrInvalidTTL
	}
	s.put(artifactKey(accountID), memoryEntry{value: artifact, expiresAt: s.now().Add(ttl)})
	return nil
}

func (s *MemoryStore) Artifact(_ context.Context, accountID uuid.UUID) (string, error) {
	e, ok := s.get(artifactKey(accountID))
	if !ok {
		return "", ErrNotFound
	}
	return e.value, nil
}

func (s *MemoryStore) ArtifactExists(_ context.Context, accountID uuid.UUID) (bool, error) {
	_, ok := s.get(artifactKey(accountID))
	return ok, nil
}

func (s *MemoryStore) DeleteArtifact(_ context.Context, accountID uuid.UUID) error {
	s.delete(artifactKey(accountID))
	return nil
}

func (s *MemoryStore) PutSignupContext(_ context.Context, accountID uuid.UUID, sc SignupContext, ttl time.Duration) error {
	if ttl <= 0 {
		return ErrInvalidTTL
	}
	s.put(signupKey(accountID), memoryEntry{sc: sc, expiresAt: s.now().Add(ttl)})
	return nil
}

func (s *MemoryStore) SignupContext(_ context.Context, accountID uuid.UUID) (SignupContext, error) {
	e, ok := s.get(signupKey(accountID))
	if !ok {
		return SignupContext{}, ErrNotFound
	}
	return e.sc, nil
}

func (s *MemoryStore) DeleteSignupContext(_ context.Context, accountID uuid.UUID) error {
	s.delete(signupKey(accountID))
	return nil
}
