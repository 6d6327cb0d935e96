package challenge

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store on top of a shared Redis client. SET with
// an expiry gives atomic replace-with-TTL per key, and Redis expiry is
// the sole authority for challenge lifetime.
type RedisStore struct {
	client redis.UniversalClient
}

// NewRedisStore wraps an already-connected client. The store does not
// own the connection; closing it is the caller's job.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) PutArtifact(ctx context.Context, accountID uuid.UUID, artifact string, ttl time.Duration) error {
	if ttl <= 0 {
		return ErrInvalidTTL
	}
	if err := s.client.Set(ctx, artifactKey(accountID), artifact, ttl).Err(); err != nil {
		return errors.Join(ErrFailedToStore, err)
	}
	return nil
}

func (s *RedisStore) Artifact(ctx context.Context, accountID uuid.UUID) (string, error) {
	value, err := s.client.Get(ctx, artifactKey(accountID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", errors.Join(ErrFailedToFetch, err)
	}
	return value, nil
}

func (s *RedisStore) ArtifactExists(ctx context.Context, accountID uuid.UUID) (bool, error) {
	n, err := s.client.Exists(ctx, artifactKey(accountID)).Result()
	if err != nil {
		return false, errors.Join(ErrFailedToFetch, err)
	}
	return n > 0, nil
}

func (s *RedisStore) DeleteArtifact(ctx context.Context, accountID uuid.UUID) error {
	if err := s.client.Del(ctx, artifactKey(accountID)).Err(); err != nil {
		return errors.Join(ErrFailedToDelete, err)
	}
	return nil
}

// PutSignupContext stores name and email in a single hash so the context
// is written in one round trip rather than as two independent keys.
func (s *RedisStore) PutSignupContext(ctx context.Context, accountID uuid.UUID, sc SignupContext, ttl time.Duration) error {
	if ttl <= 0 {
		return ErrInvalidTTL
	}
	key := signupKey(accountID)
	if err := s.client.HSet(ctx, key, "name", sc.Name, "email", sc.Email).Err(); err != nil {
		return errors.Join(ErrFailedToStore, err)
	}
	if err := s.client.Expire(ctx, key, ttl).Err(); err != nil {
		return errors.Join(ErrFailedToStore, err)
	}
	return nil
}

func (s *RedisStore) SignupContext(ctx context.Context, accountID uuid.UUID) (SignupContext, error) {
	values, err := s.client.HGetAll(ctx, signupKey(accountID)).Result()
	if err != nil {
		return SignupContext{}, errors.Join(ErrFailedToFetch, err)
	}
	if len(values) == 0 {
		return SignupContext{}, ErrNotFound
	}

	sc := SignupContext{Name: values["name"], Email: values["email"]}
	if sc.Email == "" {
		// A crash between HSET and EXPIRE, or a partial manual edit,
		// leaves a context we cannot deliver to.
		return SignupContext{}, ErrIncompleteContext
	}
	return sc, nil
}

func (s *RedisStore) DeleteSignupContext(ctx context.Context, accountID uuid.UUID) error {
	if err := s.client.Del(ctx, signupKey(accountID)).Err(); err != nil {
		return errors.Join(ErrFailedToDelete, err)
	}
	return nil
}
