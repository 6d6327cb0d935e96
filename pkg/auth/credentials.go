package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wyrdhq/authcore/pkg/async"
	"github.com/wyrdhq/authcore/pkg/password"
	"github.com/wyrdhq/authcore/pkg/sanitizer"
	"github.com/wyrdhq/authcore/pkg/totp"
)

// Identifier selects the account for a login attempt. Exactly one of
// Username or Email must be set; supplying both or neither is a caller
// error, not a failed login.
type Identifier struct {
	Username string
	Email    string
}

// CredentialService implements local signup and login on top of the
// password hasher and the account storage.
type CredentialService struct {
	storage Storage
	hasher  *password.Hasher
	logger  *slog.Logger
}

type CredentialOption func(*CredentialService)

// WithCredentialLogger sets a custom logger for the service.
func WithCredentialLogger(logger *slog.Logger) CredentialOption {
	return func(s *CredentialService) {
		s.logger = logger
	}
}

// NewCredentialService creates a credential service.
func NewCredentialService(storage Storage, hasher *password.Hasher, opts ...CredentialOption) *CredentialService {
	s := &CredentialService{
		storage: storage,
		hasher:  hasher,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Signup creates a new unverified account. Username and email
// uniqueness violations are collected and returned together (joined, so
// errors.Is matches each); nothing is persisted when any violation is
// found. The password hash runs on the hasher's bounded worker pool off
// the caller's request path.
func (s *CredentialService) Signup(ctx context.Context, name, username, email, plainPassword string) (*Account, error) {
	username = strings.TrimSpace(username)
	email = sanitizer.NormalizeEmail(email)

	var violations []error

	if _, err := s.storage.FindAccountByUsername(ctx, username); err == nil {
		violations = append(violations, ErrUsernameTaken)
	} else if !errors.Is(err, ErrAccountNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	if _, err := s.storage.FindAccountByEmail(ctx, email); err == nil {
		violations = append(violations, ErrEmailTaken)
	} else if !errors.Is(err, ErrAccountNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	if len(violations) > 0 {
		return nil, errors.Join(violations...)
	}

	// Dispatch the memory-hard derivation so this goroutine stays free
	// to be suspended with the rest of the request's I/O.
	hashFut := async.Async(ctx, plainPassword, s.hasher.Hash)

	secret, err := totp.GenerateSecretKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate TOTP secret: %w", err)
	}

	hash, err := hashFut.Await()
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &Account{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(name),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		TOTPSecret:   secret,
		Verified:     false,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.storage.InsertAccount(ctx, account); err != nil {
		// A concurrent signup may have won the race; the unique
		// constraints report it the same way the pre-checks would have.
		if errors.Is(err, ErrUsernameTaken) || errors.Is(err, ErrEmailTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return account, nil
}

// Login verifies the password for the account matched by id. Any
// combination of missing account and wrong password yields the same
// ErrInvalidCredentials. A stored hash that cannot be parsed is NOT
// folded into that generic error: it means the credential record is
// corrupt and must surface as an internal failure.
func (s *CredentialService) Login(ctx context.Context, id Identifier, plainPassword string) error {
	account, err := s.lookup(ctx, id)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return ErrInvalidCredentials
		}
		return err
	}

	ok, err := s.hasher.Verify(ctx, plainPassword, account.PasswordHash)
	if err != nil {
		return fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return ErrInvalidCredentials
	}

	if err := s.storage.TouchLastLogin(ctx, account.ID); err != nil {
		// Best effort: a login must not fail because bookkeeping did.
		s.logger.ErrorContext(ctx, "failed to update last login",
			slog.String("account_id", account.ID.String()),
			slog.Any("error", err),
		)
	}

	return nil
}

func (s *CredentialService) lookup(ctx context.Context, id Identifier) (*Account, error) {
	switch {
	case id.Username != "" && id.Email != "":
		return nil, ErrBadIdentifier
	case id.Username != "":
		return s.storage.FindAccountByUsername(ctx, strings.TrimSpace(id.Username))
	case id.Email != "":
		return s.storage.FindAccountByEmail(ctx, sanitizer.NormalizeEmail(id.Email))
	default:
		return nil, ErrBadIdentifier
	}
}
