package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_AccessTokenRoundtrip(t *testing.T) {
	m := NewManager("test-secret", 15, 168)

	token, err := m.GenerateAccessToken("user-123", "USER")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "USER", claims.Role)
	assert.Equal(t, "access", claims.Type)
}

func TestManager_RefreshTokenRoundtrip(t *testing.T) {
	m := NewManager("test-secret", 15, 168)

	token, err := m.GenerateRefreshToken("user-123", "ADMIN")
	require.NoError(t, err)

	claims, err := m.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "ADMIN", claims.Role)
	assert.Equal(t, "refresh", claims.Type)
}

func TestManager_RejectsWrongTokenType(t *testing.T) {
	m := NewManager("test-secret", 15, 168)

	refresh, err := m.GenerateRefreshToken("user-123", "USER")
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(refresh)
	assert.Error(t, err)

	access, err := m.GenerateAccessToken("user-123", "USER")
	require.NoError(t, err)

	_, err = m.ValidateRefreshToken(access)
	assert.Error(t, err)
}

func TestManager_RejectsWrongSecret(t *testing.T) {
	m := NewManager("secret-a", 15, 168)
	other := NewManager("secret-b", 15, 168)

	token, err := m.GenerateAccessToken("user-123", "USER")
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestManager_RejectsExpiredToken(t *testing.T) {
	// Expiry of 0 minutes produces an already-expired token
	m := NewManager("test-secret", 0, 168)

	token, err := m.GenerateAccessToken("user-123", "USER")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = m.ValidateToken(token)
	assert.Error(t, err)
}
