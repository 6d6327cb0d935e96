package password_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyrdhq/authcore/pkg/password"
)

// Low-cost parameters keep the test suite fast; correctness does not
// depend on the work factor.
func testHasher() *password.Hasher {
	return password.New(
		password.WithMemory(8*1024),
		password.WithIterations(1),
		password.WithParallelism(1),
	)
}

func TestHashVerifyRoundTrip(t *testing.T) {
	t.Parallel()
	h := testHasher()
	ctx := context.Background()

	passwords := []string{"s3cret", "", "correct horse battery staple", "пароль"}
	for _, pw := range passwords {
		encoded, err := h.Hash(ctx, pw)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(encoded, "$argon2id$v=19$"))

		ok, err := h.Verify(ctx, pw, encoded)
		require.NoError(t, err)
		assert.True(t, ok, "password %q should verify against its own hash", pw)
	}
}

func TestVerifyWrongPassword(t *testing.T) {
	t.Parallel()
	h := testHasher()
	ctx := context.Background()

	encoded, err := h.Hash(ctx, "s3cret")
	require.NoError(t, err)

	ok, err := h.Verify(ctx, "not-the-password", encoded)
	require.NoError(t, err, "a mismatch is not an error")
	assert.False(t, ok)
}

func TestHashIsSalted(t *testing.T) {
	t.Parallel()
	h := testHasher()
	ctx := context.Background()

	a, err := h.Hash(ctx, "s3cret")
	require.NoError(t, err)
	b, err := h.Hash(ctx, "s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, a, b, "two hashes of the same password must differ by salt")
}

func TestVerifyMalformedHash(t *testing.T) {
	t.Parallel()
	h := testHasher()
	ctx := context.Background()

	tests := []struct {
		name    string
		encoded string
		wantErr error
	}{
		{"empty", "", password.ErrMalformedHash},
		{"not a hash", "plaintext", password.ErrMalformedHash},
		{"wrong algorithm", "$bcrypt$v=19$m=8192,t=1,p=1$c2FsdA$a2V5", password.ErrUnsupportedAlgorithm},
		{"wrong version", "$argon2id$v=18$m=8192,t=1,p=1$c2FsdA$a2V5", password.ErrIncompatibleVersion},
		{"bad params", "$argon2id$v=19$m=?,t=?,p=?$c2FsdA$a2V5", password.ErrMalformedHash},
		{"bad salt encoding", "$argon2id$v=19$m=8192,t=1,p=1$!!!$a2V5", password.ErrMalformedHash},
		{"truncated", "$argon2id$v=19$m=8192,t=1,p=1$c2FsdA", password.ErrMalformedHash},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ok, err := h.Verify(ctx, "s3cret", tt.encoded)
			assert.False(t, ok)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestVerifyAcceptsExternallyGeneratedParams(t *testing.T) {
	t.Parallel()
	// A hash produced with different cost parameters must still verify,
	// since parameters are read from the stored string.
	expensive := password.New(password.WithMemory(16*1024), password.WithIterations(2), password.WithParallelism(2))
	cheapVerifier := testHasher()
	ctx := context.Background()

	encoded, err := expensive.Hash(ctx, "s3cret")
	require.NoError(t, err)

	ok, err := cheapVerifier.Verify(ctx, "s3cret", encoded)
	require.NoError(t, err)
	assert.True(t, ok)
}
