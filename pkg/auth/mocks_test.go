package auth_test

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/wyrdhq/authcore/pkg/auth"
	"github.com/wyrdhq/authcore/pkg/email"
)

// MockStorage is a mock implementation of auth.Storage.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) InsertAccount(ctx context.Context, account *auth.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockStorage) FindAccountByID(ctx context.Context, id uuid.UUID) (*auth.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Account), args.Error(1)
}

func (m *MockStorage) FindAccountByUsername(ctx context.Context, username string) (*auth.Account, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Account), args.Error(1)
}

func (m *MockStorage) FindAccountByEmail(ctx context.Context, emailAddr string) (*auth.Account, error) {
	args := m.Called(ctx, emailAddr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Account), args.Error(1)
}

func (m *MockStorage) SetAccountVerified(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStorage) TouchLastLogin(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStorage) TOTPSecret(ctx context.Context, id uuid.UUID) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

// captureSender records every message it is asked to deliver and can be
// told to fail, while still recording, to exercise the
// store-then-deliver ordering.
type captureSender struct {
	mu   sync.Mutex
	sent []email.SendEmailParams
	err  error
}

func (c *captureSender) SendEmail(_ context.Context, params email.SendEmailParams) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, params)
	return c.err
}

func (c *captureSender) last() (email.SendEmailParams, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.sent) == 0 {
		return email.SendEmailParams{}, false
	}
	return c.sent[len(c.sent)-1], true
}

func (c *captureSender) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sent)
}
