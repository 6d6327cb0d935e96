package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Account is the persisted identity record. The TOTP secret is created
// once at signup and never rotated for the lifetime of the account;
// Verified flips false to true exactly once, on the first successful
// code verification.
type Account struct {
	ID           uuid.UUID
	Name         string
	Username     string
	Email        string
	PasswordHash string
	TOTPSecret   string
	Verified     bool
	CreatedAt    time.Time
	LastLoginAt  time.Time
}

// Storage is the persistence contract both services depend on. Lookups
// return ErrAccountNotFound when no row matches. InsertAccount relies on
// database unique constraints for username and email, so a concurrent
// duplicate signup fails at the persistence layer even when the
// application-level checks raced; implementations translate those
// constraint violations to ErrUsernameTaken / ErrEmailTaken.
type Storage interface {
	InsertAccount(ctx context.Context, account *Account) error
	FindAccountByID(ctx context.Context, id uuid.UUID) (*Account, error)
	FindAccountByUsername(ctx context.Context, username string) (*Account, error)
	FindAccountByEmail(ctx context.Context, email string) (*Account, error)
	SetAccountVerified(ctx context.Context, id uuid.UUID) error
	TouchLastLogin(ctx context.Context, id uuid.UUID) error
	TOTPSecret(ctx context.Context, id uuid.UUID) (string, error)
}
