package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyrdhq/authcore/pkg/config"
)

type testConfig struct {
	Host string `env:"TEST_CFG_HOST" envDefault:"localhost"`
	Port int    `env:"TEST_CFG_PORT" envDefault:"5432"`
	Name string `env:"TEST_CFG_NAME,required"`
}

func TestLoad(t *testing.T) {
	config.Reset()
	t.Setenv("TEST_CFG_NAME", "authcore")
	t.Setenv("TEST_CFG_PORT", "6543")

	var cfg testConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 6543, cfg.Port)
	assert.Equal(t, "authcore", cfg.Name)
}

func TestLoadCachesPerType(t *testing.T) {
	config.Reset()
	t.Setenv("TEST_CFG_NAME", "first")

	var cfg testConfig
	require.NoError(t, config.Load(&cfg))

	// Environment changes after the first parse are not observed.
	t.Setenv("TEST_CFG_NAME", "second")

	var again testConfig
	require.NoError(t, config.Load(&again))
	assert.Equal(t, "first", again.Name)
}

func TestLoadMissingRequired(t *testing.T) {
	config.Reset()
	t.Setenv("TEST_CFG_NAME", "") // register cleanup, then clear
	require.NoError(t, os.Unsetenv("TEST_CFG_NAME"))

	var cfg testConfig
	err := config.Load(&cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestLoadNilPointer(t *testing.T) {
	config.Reset()

	err := config.Load[testConfig](nil)
	assert.ErrorIs(t, err, config.ErrNilPointer)
}

func TestReset(t *testing.T) {
	config.Reset()
	t.Setenv("TEST_CFG_NAME", "before")

	var cfg testConfig
	require.NoError(t, config.Load(&cfg))

	t.Setenv("TEST_CFG_NAME", "after")
	config.Reset()

	var fresh testConfig
	require.NoError(t, config.Load(&fresh))
	assert.Equal(t, "after", fresh.Name)
}
