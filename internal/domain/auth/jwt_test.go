package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	cfg := DefaultJWTConfig("test-secret")
	u, err := NewUser("admin", "s3cret")
	require.NoError(t, err)

	token, err := GenerateAccessToken(cfg, u)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	uc, err := ValidateToken(cfg, token)
	require.NoError(t, err)
	assert.Equal(t, u.ID.String(), uc.UserID)
	assert.Equal(t, "admin", uc.Username)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	u, err := NewUser("admin", "s3cret")
	require.NoError(t, err)

	token, err := GenerateAccessToken(DefaultJWTConfig("secret-a"), u)
	require.NoError(t, err)

	_, err = ValidateToken(DefaultJWTConfig("secret-b"), token)
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	cfg := DefaultJWTConfig("test-secret")
	cfg.AccessTokenTTL = -time.Minute

	u, err := NewUser("admin", "s3cret")
	require.NoError(t, err)

	token, err := GenerateAccessToken(cfg, u)
	require.NoError(t, err)

	_, err = ValidateToken(cfg, token)
	assert.Error(t, err)
}

func TestCheckPassword(t *testing.T) {
	u, err := NewUser("admin", "correct horse")
	require.NoError(t, err)

	assert.True(t, u.CheckPassword("correct horse"))
	assert.False(t, u.CheckPassword("wrong"))
}
