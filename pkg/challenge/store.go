package challenge

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SignupContext carries the pending signup's delivery details between
// the issue and resend steps. It lives alongside the artifact under the
// same account key and shares its lifetime with the whole verification
// flow, not the individual code.
type SignupContext struct {
	Name  string
	Email string
}

// Store is the expiring, single-use keyspace backing in-flight OTP
// challenges. Implementations must guarantee single-key atomicity:
// a Put fully replaces any previous value under the same account, which
// is what makes "resend invalidates the previous code" hold. No
// atomicity across the artifact and context keys is assumed; callers
// treat a missing context with a live artifact as recoverable.
type Store interface {
	// PutArtifact stores the one-way artifact of the issued code,
	// replacing any previous artifact for the account.
	PutArtifact(ctx context.Context, accountID uuid.UUID, artifact string, ttl time.Duration) error
	// Artifact returns the stored artifact or ErrNotFound once the TTL
	// elapsed (indistinguishable from never having been issued).
	Artifact(ctx context.Context, accountID uuid.UUID) (string, error)
	// ArtifactExists reports whether a live challenge exists.
	ArtifactExists(ctx context.Context, accountID uuid.UUID) (bool, error)
	// DeleteArtifact removes the challenge. Deleting an absent artifact
	// is not an error.
	DeleteArtifact(ctx context.Context, accountID uuid.UUID) error

	PutSignupContext(ctx context.Context, accountID uuid.UUID, sc SignupContext, ttl time.Duration) error
	SignupContext(ctx context.Context, accountID uuid.UUID) (SignupContext, error)
	DeleteSignupContext(ctx context.Context, accountID uuid.UUID) error
}

const (
	artifactKeyPrefix = "otp:artifact:"
	signupKeyPrefix   = "otp:signup:"
)

func artifactKey(accountID uuid.UUID) string {
	return artifactKeyPrefix + accountID.String()
}

func signupKey(accountID uuid.UUID) string {
	return signupKeyPrefix + accountID.String()
}
