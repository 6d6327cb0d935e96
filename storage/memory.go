package storage

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wyrdhq/authcore/pkg/auth"
)

// MemoryStorage is an in-memory auth.Storage for tests and local
// development. It enforces the same username/email uniqueness the
// database constraints do.
type MemoryStorage struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]auth.Account
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{accounts: make(map[uuid.UUID]auth.Account)}
}

func (s *MemoryStorage) InsertAccount(_ context.Context, account *auth.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.accounts {
		if existing.Username == account.Username {
			return auth.ErrUsernameTaken
		}
		if existing.Email == account.Email {
			return auth.ErrEmailTaken
		}
	}

	s.accounts[account.ID] = *account
	return nil
}

func (s *MemoryStorage) FindAccountByID(_ context.Context, id uuid.UUID) (*auth.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[id]
	if !ok {
		return nil, auth.ErrAccountNotFound
	}
	return &account, nil
}

func (s *MemoryStorage) FindAccountByUsername(_ context.Context, username string) (*auth.Account, error) {
	return s.find(func(a auth.Account) bool { return a.Username == username })
}

func (s *MemoryStorage) FindAccountByEmail(_ context.Context, email string) (*auth.Account, error) {
	return s.find(func(a auth.Account) bool { return a.Email == email })
}

func (s *MemoryStorage) find(match func(auth.Account) bool) (*auth.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, account := range s.accounts {
		if match(account) {
			found := account
			return &found, nil
		}
	}
	return nil, auth.ErrAccountNotFound
}

func (s *MemoryStorage) SetAccountVerified(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[id]
	if !ok {
		return auth.ErrAccountNotFound
	}
	account.Verified = true
	s.accounts[id] = account
	return nil
}

func (s *MemoryStorage) TouchLastLogin(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[id]
	if !ok {
		return auth.ErrAccountNotFound
	}
	account.LastLoginAt = time.Now()
	s.accounts[id] = account
	return nil
}

func (s *MemoryStorage) TOTPSecret(_ context.Context, id uuid.UUID) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[id]
	if !ok {
		return "", auth.ErrAccountNotFound
	}
	return account.TOTPSecret, nil
}
