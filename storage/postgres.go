package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wyrdhq/authcore/pkg/auth"
	"github.com/wyrdhq/authcore/pkg/pg"
)

// Unique index names from the accounts migration, used to map a
// duplicate-key insert to the field that caused it.
const (
	usernameConstraint = "accounts_username_key"
	emailConstraint    = "accounts_email_key"
)

// PostgresStorage implements auth.Storage on top of a pgx connection
// pool.
type PostgresStorage struct {
	pool *pgxpool.Pool
}

// NewPostgresStorage returns a PostgresStorage using the provided pool.
// The pool's lifecycle stays with the caller.
func NewPostgresStorage(pool *pgxpool.Pool) *PostgresStorage {
	return &PostgresStorage{pool: pool}
}

const accountColumns = `id, name, username, email, password_hash, totp_secret, verified, created_at, last_login_at`

func (s *PostgresStorage) InsertAccount(ctx context.Context, account *auth.Account) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO accounts (id, name, username, email, password_hash, totp_secret, verified, created_at, last_login_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		account.ID, account.Name, account.Username, account.Email,
		account.PasswordHash, account.TOTPSecret, account.Verified,
		account.CreatedAt, account.LastLoginAt,
	)
	if err != nil {
		if pg.IsUniqueViolation(err) {
			switch pg.ConstraintName(err) {
			case usernameConstraint:
				return errors.Join(auth.ErrUsernameTaken, err)
			case emailConstraint:
				return errors.Join(auth.ErrEmailTaken, err)
			}
		}
		return err
	}
	return nil
}

func (s *PostgresStorage) FindAccountByID(ctx context.Context, id uuid.UUID) (*auth.Account, error) {
	return s.findAccount(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
}

func (s *PostgresStorage) FindAccountByUsername(ctx context.Context, username string) (*auth.Account, error) {
	return s.findAccount(ctx, `SELECT `+accountColumns+` FROM accounts WHERE username = $1`, username)
}

func (s *PostgresStorage) FindAccountByEmail(ctx context.Context, email string) (*auth.Account, error) {
	return s.findAccount(ctx, `SELECT `+accountColumns+` FROM accounts WHERE email = $1`, email)
}

func (s *PostgresStorage) findAccount(ctx context.Context, query string, arg any) (*auth.Account, error) {
	var account auth.Account
	err := s.pool.QueryRow(ctx, query, arg).Scan(
		&account.ID, &account.Name, &account.Username, &account.Email,
		&account.PasswordHash, &account.TOTPSecret, &account.Verified,
		&account.CreatedAt, &account.LastLoginAt,
	)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, auth.ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (s *PostgresStorage) SetAccountVerified(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `UPDATE accounts SET verified = TRUE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return auth.ErrAccountNotFound
	}
	return nil
}

func (s *PostgresStorage) TouchLastLogin(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `UPDATE accounts SET last_login_at = now() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return auth.ErrAccountNotFound
	}
	return nil
}

func (s *PostgresStorage) TOTPSecret(ctx context.Context, id uuid.UUID) (string, error) {
	var secret string
	err := s.pool.QueryRow(ctx, `SELECT totp_secret FROM accounts WHERE id = $1`, id).Scan(&secret)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return "", auth.ErrAccountNotFound
		}
		return "", err
	}
	return secret, nil
}
