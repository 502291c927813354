package auth

import (
	"testing"

	"marketplace/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHasherConfig(cost int) *config.Config {
	cfg := &config.Config{}
	cfg.Auth = &config.AuthConfig{BcryptCost: cost}

	return cfg
}

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := NewBcryptHasher(newHasherConfig(4))

	hash, err := hasher.Hash("examplePW")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "examplePW", hash)

	assert.True(t, hasher.Check("examplePW", hash))
	assert.False(t, hasher.Check("wrongPW", hash))
}

func TestBcryptHasher_HashesAreSalted(t *testing.T) {
	hasher := NewBcryptHasher(newHasherConfig(4))

	first, err := hasher.Hash("examplePW")
	require.NoError(t, err)
	second, err := hasher.Hash("examplePW")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestBcryptHasher_InvalidCostFallsBackToDefault(t *testing.T) {
	hasher := NewBcryptHasher(newHasherConfig(99))

	hash, err := hasher.Hash("examplePW")
	require.NoError(t, err)
	assert.True(t, hasher.Check("examplePW", hash))
}
