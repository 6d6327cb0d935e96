package password

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	// Argon2id parameters. 64 MiB with a single pass is the RFC 9106
	// second recommended option, suitable for constrained environments.
	DefaultMemory      = 64 * 1024 // KiB
	DefaultIterations  = 1
	DefaultParallelism = 4
	DefaultSaltLength  = 16
	DefaultKeyLength   = 32
)

// Hasher computes and verifies argon2id password hashes in PHC string
// format ($argon2id$v=19$m=...,t=...,p=...$salt$key). Hashing is
// memory- and CPU-bound on the order of tens of milliseconds, so the
// hasher bounds how many derivations run at once; callers waiting for a
// slot are released when their context is canceled.
type Hasher struct {
	memory      uint32
	iterations  uint32
	parallelism uint8
	saltLength  uint32
	keyLength   uint32
	slots       chan struct{}
}

type HasherOption func(*Hasher)

// WithMemory sets the argon2id memory cost in KiB.
func WithMemory(kib uint32) HasherOption {
	return func(h *Hasher) { h.memory = kib }
}

// WithIterations sets the argon2id time cost.
func WithIterations(n uint32) HasherOption {
	return func(h *Hasher) { h.iterations = n }
}

// WithParallelism sets the argon2id lane count.
func WithParallelism(n uint8) HasherOption {
	return func(h *Hasher) { h.parallelism = n }
}

// WithMaxConcurrency bounds how many hash/verify operations may run
// simultaneously. Defaults to 2x GOMAXPROCS.
func WithMaxConcurrency(n int) HasherOption {
	return func(h *Hasher) {
		if n > 0 {
			h.slots = make(chan struct{}, n)
		}
	}
}

// New creates a Hasher with RFC 9106 argon2id defaults.
func New(opts ...HasherOption) *Hasher {
	h := &Hasher{
		memory:      DefaultMemory,
		iterations:  DefaultIterations,
		parallelism: DefaultParallelism,
		saltLength:  DefaultSaltLength,
		keyLength:   DefaultKeyLength,
		slots:       make(chan struct{}, 2*runtime.GOMAXPROCS(0)),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Hash derives an argon2id hash of password with a fresh random salt and
// returns it as a self-describing PHC string.
func (h *Hasher) Hash(ctx context.Context, password string) (string, error) {
	release, err := h.acquire(ctx)
	if err != nil {
		return "", err
	}
	defer release()

	salt := make([]byte, h.saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", errors.Join(ErrFailedToGenerateSalt, err)
	}

	key := argon2.IDKey([]byte(password), salt, h.iterations, h.memory, h.parallelism, h.keyLength)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.memory,
		h.iterations,
		h.parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)

	return encoded, nil
}

// Verify recomputes the hash of password using the parameters embedded in
// encoded and compares in constant time. A mismatched password returns
// (false, nil); a hash string that cannot be parsed returns an error
// wrapping ErrMalformedHash, since a corrupt stored hash indicates data
// corruption rather than user error.
func (h *Hasher) Verify(ctx context.Context, password, encoded string) (bool, error) {
	params, salt, key, err := decodeHash(encoded)
	if err != nil {
		return false, err
	}

	release, err := h.acquire(ctx)
	if err != nil {
		return false, err
	}
	defer release()

	other := argon2.IDKey([]byte(password), salt, params.iterations, params.memory, params.parallelism, uint32(len(key)))

	return subtle.ConstantTimeCompare(key, other) == 1, nil
}

func (h *Hasher) acquire(ctx context.Context) (func(), error) {
	select {
	case h.slots <- struct{}{}:
		return func() { <-h.slots }, nil
	case <-ctx.Done():
		return nil, errors.Join(ErrHasherBusy, ctx.Err())
	}
}

type hashParams struct {
	memory      uint32
	iterations  uint32
	parallelism uint8
}

func decodeHash(encoded string) (hashParams, []byte, []byte, error) {
	var params hashParams

	parts := strings.Split(encoded, "$")
	if len(parts) != 6 {
		return params, nil, nil, fmt.Errorf("%w: expected 6 segments, got %d", ErrMalformedHash, len(parts))
	}
	if parts[1] != "argon2id" {
		return params, nil, nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return params, nil, nil, errors.Join(ErrMalformedHash, err)
	}
	if version != argon2.Version {
		return params, nil, nil, fmt.Errorf("%w: v=%d", ErrIncompatibleVersion, version)
	}

	var parallelism uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.memory, &params.iterations, &parallelism); err != nil {
		return params, nil, nil, errors.Join(ErrMalformedHash, err)
	}
	params.parallelism = uint8(parallelism)

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return params, nil, nil, errors.Join(ErrMalformedHash, err)
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return params, nil, nil, errors.Join(ErrMalformedHash, err)
	}

	return params, salt, key, nil
}
