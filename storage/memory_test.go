package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyrdhq/authcore/pkg/auth"
	"github.com/wyrdhq/authcore/storage"
)

func newAccount(username, email string) *auth.Account {
	return &auth.Account{
		ID:         uuid.New(),
		Name:       "Test User",
		Username:   username,
		Email:      email,
		TOTPSecret: "JBSWY3DPEHPK3PXP",
		CreatedAt:  time.Now(),
	}
}

func TestMemoryStorageLifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := storage.NewMemoryStorage()
	account := newAccount("alice", "alice@example.com")

	require.NoError(t, store.InsertAccount(ctx, account))

	byID, err := store.FindAccountByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, account.Username, byID.Username)

	byUsername, err := store.FindAccountByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, account.ID, byUsername.ID)

	byEmail, err := store.FindAccountByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, account.ID, byEmail.ID)

	secret, err := store.TOTPSecret(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, account.TOTPSecret, secret)
}

func TestMemoryStorageUniqueness(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := storage.NewMemoryStorage()
	require.NoError(t, store.InsertAccount(ctx, newAccount("alice", "alice@example.com")))

	err := store.InsertAccount(ctx, newAccount("alice", "other@example.com"))
	assert.ErrorIs(t, err, auth.ErrUsernameTaken)

	err = store.InsertAccount(ctx, newAccount("bob", "alice@example.com"))
	assert.ErrorIs(t, err, auth.ErrEmailTaken)
}

func TestMemoryStorageVerifiedAndLastLogin(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := storage.NewMemoryStorage()
	account := newAccount("alice", "alice@example.com")
	require.NoError(t, store.InsertAccount(ctx, account))

	require.NoError(t, store.SetAccountVerified(ctx, account.ID))
	found, err := store.FindAccountByID(ctx, account.ID)
	require.NoError(t, err)
	assert.True(t, found.Verified)

	require.NoError(t, store.TouchLastLogin(ctx, account.ID))
	found, err = store.FindAccountByID(ctx, account.ID)
	require.NoError(t, err)
	assert.False(t, found.LastLoginAt.IsZero())
}

func TestMemoryStorageNotFound(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := storage.NewMemoryStorage()
	unknown := uuid.New()

	_, err := store.FindAccountByID(ctx, unknown)
	assert.ErrorIs(t, err, auth.ErrAccountNotFound)

	_, err = store.FindAccountByUsername(ctx, "ghost")
	assert.ErrorIs(t, err, auth.ErrAccountNotFound)

	_, err = store.FindAccountByEmail(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, auth.ErrAccountNotFound)

	assert.ErrorIs(t, store.SetAccountVerified(ctx, unknown), auth.ErrAccountNotFound)
	assert.ErrorIs(t, store.TouchLastLogin(ctx, unknown), auth.ErrAccountNotFound)

	_, err = store.TOTPSecret(ctx, unknown)
	assert.ErrorIs(t, err, auth.ErrAccountNotFound)
}
