package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
	assert.False(t, CheckPasswordHash("s3cret-pass", ""))
}

func TestSessionJWT(t *testing.T) {
	now := time.Now()
	token, expiresAt, err := GenerateSessionJWT("user-1", "admin", "secret", "credence", time.Hour, now)
	require.NoError(t, err)
	assert.WithinDuration(t, now.Add(time.Hour), expiresAt, time.Second)

	claims, err := ParseSessionJWT(token, "secret", "credence")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "admin", claims.Role)

	_, err = ParseSessionJWT(token, "other-secret", "credence")
	assert.Error(t, err, "signature must be checked")

	_, err = ParseSessionJWT(token, "secret", "someone-else")
	assert.Error(t, err, "issuer must be checked")
}

func TestSessionJWTExpired(t *testing.T) {
	token, _, err := GenerateSessionJWT("user-1", "client", "secret", "credence", time.Minute, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)
	_, err = ParseSessionJWT(token, "secret", "credence")
	assert.Error(t, err)
}
