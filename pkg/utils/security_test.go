package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *TokenManager {
	return NewTokenManager(TokenConfig{
		Issuer:        "vidtube-test",
		AccessSecret:  "access-secret",
		AccessTTL:     time.Hour,
		RefreshSecret: "refresh-secret",
		RefreshTTL:    24 * time.Hour,
	})
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)
	assert.True(t, VerifyPassword("secret123", hash))
	assert.False(t, VerifyPassword("secret124", hash))
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := newTestManager()

	token, err := m.IssueAccess(7, "alice", "alice@example.com")
	require.NoError(t, err)

	claims, err := m.ParseAccess(token)
	require.NoError(t, err)
	assert.EqualValues(t, 7, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, "7", claims.Subject)
}

func TestTokensUseSeparateSecrets(t *testing.T) {
	m := newTestManager()

	refresh, err := m.IssueRefresh(7)
	require.NoError(t, err)
	access, err := m.IssueAccess(7, "alice", "alice@example.com")
	require.NoError(t, err)

	_, err = m.ParseAccess(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = m.ParseRefresh(access)
	assert.ErrorIs(t, err, ErrInvalidToken)

	claims, err := m.ParseRefresh(refresh)
	require.NoError(t, err)
	assert.EqualValues(t, 7, claims.UserID)
}

func TestExpiredToken(t *testing.T) {
	m := newTestManager()
	issuedAt := time.Now().Add(-2 * time.Hour)
	m.now = func() time.Time { return issuedAt }

	token, err := m.IssueAccess(7, "alice", "alice@example.com")
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.ParseAccess(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestEachTokenHasUniqueID(t *testing.T) {
	m := newTestManager()
	a, err := m.IssueRefresh(1)
	require.NoError(t, err)
	b, err := m.IssueRefresh(1)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
