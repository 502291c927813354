package auth

import (
	"testing"
	"time"

	"marketplace/config"
	"marketplace/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokenConfig(secret string, ttl time.Duration) *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = secret
	cfg.Auth = &config.AuthConfig{AccessTokenTTL: ttl}

	return cfg
}

func TestJWTService_RequiresSecret(t *testing.T) {
	_, err := NewJWTService(newTokenConfig("", 0))
	assert.Error(t, err)
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc, err := NewJWTService(newTokenConfig("test-secret", time.Hour))
	require.NoError(t, err)

	userID := uuid.New()
	token, err := svc.GenerateToken(userID, entity.RoleBusiness.String(), true)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, entity.RoleBusiness.String(), claims.Role)
	assert.True(t, claims.IsStaff)
}

func TestJWTService_RejectsForeignSignature(t *testing.T) {
	issuer, err := NewJWTService(newTokenConfig("issuer-secret", time.Hour))
	require.NoError(t, err)
	verifier, err := NewJWTService(newTokenConfig("other-secret", time.Hour))
	require.NoError(t, err)

	token, err := issuer.GenerateToken(uuid.New(), entity.RoleCustomer.String(), false)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	svc, err := NewJWTService(newTokenConfig("test-secret", -time.Minute))
	require.NoError(t, err)

	token, err := svc.GenerateToken(uuid.New(), entity.RoleCustomer.String(), false)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	svc, err := NewJWTService(newTokenConfig("test-secret", time.Hour))
	require.NoError(t, err)

	_, err = svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}
