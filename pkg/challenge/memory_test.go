package challenge_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyrdhq/authcore/pkg/challenge"
)

// fakeClock is a mutable time source for simulating TTL expiry.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestMemoryStoreArtifactLifecycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clock := &fakeClock{now: time.Unix(1000, 0)}
	store := challenge.NewMemoryStoreWithClock(clock.Now)
	accountID := uuid.New()

	// Nothing issued yet.
	exists, err := store.ArtifactExists(ctx, accountID)
	require.NoError(t, err)
	assert.False(t, exists)
	_, err = store.Artifact(ctx, accountID)
	assert.ErrorIs(t, err, challenge.ErrNotFound)

	require.NoError(t, store.PutArtifact(ctx, accountID, "fp-1", 90*time.Second))

	exists, err = store.ArtifactExists(ctx, accountID)
	require.NoError(t, err)
	assert.True(t, exists)

	got, err := store.Artifact(ctx, accountID)
	require.NoError(t, err)
	assert.Equal(t, "fp-1", got)

	require.NoError(t, store.DeleteArtifact(ctx, accountID))
	_, err = store.Artifact(ctx, accountID)
	assert.ErrorIs(t, err, challenge.ErrNotFound)

	// Deleting again is a no-op, not an error.
	require.NoError(t, store.DeleteArtifact(ctx, accountID))
}

func TestMemoryStorePutOverwrites(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := challenge.NewMemoryStore()
	accountID := uuid.New()

	require.NoError(t, store.PutArtifact(ctx, accountID, "fp-old", time.Minute))
	require.NoError(t, store.PutArtifact(ctx, accountID, "fp-new", time.Minute))

	got, err := store.Artifact(ctx, accountID)
	require.NoError(t, err)
	assert.Equal(t, "fp-new", got, "resend replaces the previous challenge")
}

func TestMemoryStoreTTLExpiry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clock := &fakeClock{now: time.Unix(1000, 0)}
	store := challenge.NewMemoryStoreWithClock(clock.Now)
	accountID := uuid.New()

	require.NoError(t, store.PutArtifact(ctx, accountID, "fp", 90*time.Second))

	clock.Advance(89 * time.Second)
	exists, err := store.ArtifactExists(ctx, accountID)
	require.NoError(t, err)
	assert.True(t, exists)

	clock.Advance(2 * time.Second)
	exists, err = store.ArtifactExists(ctx, accountID)
	require.NoError(t, err)
	assert.False(t, exists, "an expired challenge is indistinguishable from none")
	_, err = store.Artifact(ctx, accountID)
	assert.ErrorIs(t, err, challenge.ErrNotFound)
}

func TestMemoryStoreRejectsNonPositiveTTL(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := challenge.NewMemoryStore()
	accountID := uuid.New()

	assert.ErrorIs(t, store.PutArtifact(ctx, accountID, "fp", 0), challenge.ErrInvalidTTL)
	assert.ErrorIs(t, store.PutSignupContext(ctx, accountID, challenge.SignupContext{}, -time.Second), challenge.ErrInvalidTTL)
}

func TestMemoryStoreSignupContext(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clock := &fakeClock{now: time.Unix(1000, 0)}
	store := challenge.NewMemoryStoreWithClock(clock.Now)
	accountID := uuid.New()

	_, err := store.SignupContext(ctx, accountID)
	assert.ErrorIs(t, err, challenge.ErrNotFound)

	sc := challenge.SignupContext{Name: "Ada", Email: "ada@example.com"}
	require.NoError(t, store.PutSignupContext(ctx, accountID, sc, 90*time.Second))

	got, err := store.SignupContext(ctx, accountID)
	require.NoError(t, err)
	assert.Equal(t, sc, got)

	clock.Advance(2 * time.Minute)
	_, err = store.SignupContext(ctx, accountID)
	assert.ErrorIs(t, err, challenge.ErrNotFound)
}

func TestMemoryStoreAccountsAreIsolated(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := challenge.NewMemoryStore()
	a, b := uuid.New(), uuid.New()

	require.NoError(t, store.PutArtifact(ctx, a, "fp-a", time.Minute))
	require.NoError(t, store.PutArtifact(ctx, b, "fp-b", time.Minute))

	require.NoError(t, store.DeleteArtifact(ctx, a))

	got, err := store.Artifact(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, "fp-b", got, "deleting one account's challenge must not touch another's")
}
