package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wyrdhq/authcore/pkg/challenge"
	"github.com/wyrdhq/authcore/pkg/email"
	"github.com/wyrdhq/authcore/pkg/password"
	"github.com/wyrdhq/authcore/pkg/totp"
)

const (
	// DefaultChallengeTTL is the external contract for how long an
	// issued code is accepted. The challenge store's TTL is the sole
	// expiry authority; the TOTP period below only parameterizes code
	// generation and never acts as an independent expiry check.
	DefaultChallengeTTL = 90 * time.Second

	// DefaultContextTTL bounds the whole signup-verification window:
	// the stored name/email survive code expiry so a resend does not
	// need the client to repeat them.
	DefaultContextTTL = 15 * time.Minute
)

// VerificationService owns the OTP challenge lifecycle:
//
//	NoChallenge -> Pending -> {Verified | Expired | Invalidated}
//
// Issue and Resend move any state to Pending by overwriting the stored
// artifact. Verify moves Pending to Verified (deleting the challenge,
// making the code single-use) or leaves it Pending on a mismatch so the
// user can retry within the TTL. Expiry is implicit: once the store's
// TTL elapses the state is indistinguishable from NoChallenge.
type VerificationService struct {
	storage      Storage
	challenges   challenge.Store
	sender       email.EmailSender
	logger       *slog.Logger
	issuer       string
	challengeTTL time.Duration
	contextTTL   time.Duration
}

type VerificationOption func(*VerificationService)

// WithVerificationLogger sets a custom logger for the service.
func WithVerificationLogger(logger *slog.Logger) VerificationOption {
	return func(s *VerificationService) {
		s.logger = logger
	}
}

// WithChallengeTTL overrides how long an issued code is accepted.
func WithChallengeTTL(ttl time.Duration) VerificationOption {
	return func(s *VerificationService) {
		if ttl > 0 {
			s.challengeTTL = ttl
		}
	}
}

// WithSignupContextTTL overrides the signup-context retention window.
func WithSignupContextTTL(ttl time.Duration) VerificationOption {
	return func(s *VerificationService) {
		if ttl > 0 {
			s.contextTTL = ttl
		}
	}
}

// WithIssuer sets the issuer label used in code derivation parameters
// and provisioning URIs.
func WithIssuer(issuer string) VerificationOption {
	return func(s *VerificationService) {
		s.issuer = issuer
	}
}

// NewVerificationService creates the OTP lifecycle manager.
func NewVerificationService(storage Storage, challenges challenge.Store, sender email.EmailSender, opts ...VerificationOption) *VerificationService {
	s := &VerificationService{
		storage:      storage,
		challenges:   challenges,
		sender:       sender,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		issuer:       "Wyrd",
		challengeTTL: DefaultChallengeTTL,
		contextTTL:   DefaultContextTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue derives the current code for the account, stores its
// fingerprint with the challenge TTL, records the signup context and
// dispatches the code by email. The store write happens before the
// delivery attempt on purpose: when delivery fails the challenge is
// already Pending and a resend recovers without silently rotating a
// code the user may yet receive. Delivery failure is reported as
// ErrEmailSendFailed and never retried here.
func (s *VerificationService) Issue(ctx context.Context, account *Account) error {
	return s.issue(ctx, account.ID, challenge.SignupContext{
		Name:  account.Name,
		Email: account.Email,
	})
}

// Resend re-issues a code for an account whose signup is pending. It is
// always allowed: the new artifact overwrites the previous one, which
// invalidates the old code. When the stored signup context is gone or
// unusable the account record supplies the delivery details, so an
// expired context never strands a signup.
func (s *VerificationService) Resend(ctx context.Context, accountID uuid.UUID) error {
	sc, err := s.challenges.SignupContext(ctx, accountID)
	if err != nil {
		if !errors.Is(err, challenge.ErrNotFound) && !errors.Is(err, challenge.ErrIncompleteContext) {
			return fmt.Errorf("failed to load signup context: %w", err)
		}
		account, lookupErr := s.storage.FindAccountByID(ctx, accountID)
		if lookupErr != nil {
			return fmt.Errorf("failed to load account for resend: %w", lookupErr)
		}
		sc = challenge.SignupContext{Name: account.Name, Email: account.Email}
	}

	return s.issue(ctx, accountID, sc)
}

func (s *VerificationService) issue(ctx context.Context, accountID uuid.UUID, sc challenge.SignupContext) error {
	secret, err := s.storage.TOTPSecret(ctx, accountID)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) || errors.Is(err, ErrMissingTOTPSecret) {
			// Every signed-up account has a secret; reaching this is an
			// invariant violation upstream, not a user error.
			return errors.Join(ErrCodeGeneration, err)
		}
		return fmt.Errorf("failed to load TOTP secret: %w", err)
	}

	code, err := totp.GenerateCode(totp.Params{
		Secret:      secret,
		AccountName: sc.Email,
		Issuer:      s.issuer,
	})
	if err != nil {
		return errors.Join(ErrCodeGeneration, err)
	}

	artifact := password.Fingerprint(code)
	if err := s.challenges.PutArtifact(ctx, accountID, artifact, s.challengeTTL); err != nil {
		return fmt.Errorf("failed to store challenge: %w", err)
	}
	if err := s.challenges.PutSignupContext(ctx, accountID, sc, s.contextTTL); err != nil {
		return fmt.Errorf("failed to store signup context: %w", err)
	}

	msg, err := email.VerificationCodeEmail(s.issuer, sc.Name, sc.Email, code, int(s.challengeTTL.Seconds()))
	if err != nil {
		return errors.Join(ErrEmailSendFailed, err)
	}
	if err := s.sender.SendEmail(ctx, msg); err != nil {
		// The challenge is already Pending; the caller offers a resend.
		s.logger.ErrorContext(ctx, "verification email delivery failed",
			slog.String("account_id", accountID.String()),
			slog.Any("error", err),
		)
		return errors.Join(ErrEmailSendFailed, err)
	}

	return nil
}

// Verify compares the submitted code's fingerprint against the stored
// artifact. On success the challenge is deleted first, making the code
// single-use, then the account is marked verified. A mismatch leaves
// the challenge Pending so further attempts are allowed until the TTL
// elapses; an absent challenge (never issued, expired, or already
// consumed) reports ErrOTPExpired.
func (s *VerificationService) Verify(ctx context.Context, accountID uuid.UUID, submittedCode string) error {
	exists, err := s.challenges.ArtifactExists(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to check challenge: %w", err)
	}
	if !exists {
		return ErrOTPExpired
	}

	stored, err := s.challenges.Artifact(ctx, accountID)
	if err != nil {
		if errors.Is(err, challenge.ErrNotFound) {
			// Expired between the existence check and the read.
			return ErrOTPExpired
		}
		return fmt.Errorf("failed to fetch challenge: %w", err)
	}

	submitted := password.Fingerprint(strings.TrimSpace(submittedCode))
	if subtle.ConstantTimeCompare([]byte(submitted), []byte(stored)) != 1 {
		return ErrOTPMismatch
	}

	if err := s.challenges.DeleteArtifact(ctx, accountID); err != nil {
		return fmt.Errorf("failed to consume challenge: %w", err)
	}
	if err := s.challenges.DeleteSignupContext(ctx, accountID); err != nil {
		// The challenge is consumed; a leftover context only wastes a
		// key until its TTL and must not fail the verification.
		s.logger.WarnContext(ctx, "failed to delete signup context",
			slog.String("account_id", accountID.String()),
			slog.Any("error", err),
		)
	}

	if err := s.storage.SetAccountVerified(ctx, accountID); err != nil {
		return fmt.Errorf("failed to mark account verified: %w", err)
	}

	return nil
}
