package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	mu     sync.Mutex
	loaded = make(map[string]any)

	dotenvOnce sync.Once
)

// Load populates cfg from the process environment using `env` struct
// tags. The first call loads the default .env file if one exists; each
// configuration type is parsed at most once per process and served from
// cache afterwards.
func Load[T any](cfg *T) error {
	if cfg == nil {
		return ErrNilPointer
	}

	dotenvOnce.Do(func() {
		// Missing .env is fine; the real environment still applies.
		_ = godotenv.Load()
	})

	key := typeKey[T]()

	mu.Lock()
	defer mu.Unlock()

	if cached, ok := loaded[key]; ok {
		*cfg = cached.(T)
		return nil
	}

	if err := env.Parse(cfg); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}

	loaded[key] = *cfg
	return nil
}

// MustLoad is Load that panics on failure. Use it for configuration the
// process cannot start without.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
}

// Reset clears the cache so the next Load re-parses the environment.
// Intended for tests that mutate env vars between cases.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	loaded = make(map[string]any)
}

func typeKey[T any]() string {
	var zero T
	if t := reflect.TypeOf(zero); t != nil {
		return t.String()
	}
	return fmt.Sprintf("%T", *new(T))
}
