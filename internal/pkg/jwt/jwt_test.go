package jwt

import (
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken(t *testing.T) {
	svc := NewJWTService("test-secret", "15m")

	token, expiresAt, err := svc.GenerateAccessToken("u-1", true)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.InDelta(t, time.Now().Add(15*time.Minute).Unix(), expiresAt, 5)

	parsed, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)

	typ, _ := parsed.Get("type")
	assert.Equal(t, TokenTypeAccess, typ)
	admin, _ := parsed.Get("is_admin")
	assert.Equal(t, true, admin)
	uid, _ := parsed.Get("user_id")
	assert.Equal(t, "u-1", uid)
}

func TestGenerateAccessToken_BadDuration(t *testing.T) {
	svc := NewJWTService("test-secret", "soon")

	_, _, err := svc.GenerateAccessToken("u-1", false)
	assert.Error(t, err)
}

func TestSSEToken_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", "15m")

	token, expiresIn, err := svc.GenerateSSEToken("u-1")
	require.NoError(t, err)
	assert.Equal(t, int64(300), expiresIn)

	userID, err := svc.ValidateSSEToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)
}

func TestValidateSSEToken_RejectsAccessToken(t *testing.T) {
	svc := NewJWTService("test-secret", "15m")

	access, _, err := svc.GenerateAccessToken("u-1", false)
	require.NoError(t, err)

	_, err = svc.ValidateSSEToken(access)
	assert.Error(t, err)
}

func TestValidateSSEToken_RejectsForeignSignature(t *testing.T) {
	other := NewJWTService("another-secret", "15m")
	token, _, err := other.GenerateSSEToken("u-1")
	require.NoError(t, err)

	_, err = NewJWTService("test-secret", "15m").ValidateSSEToken(token)
	assert.Error(t, err)
}

func TestValidateSSEToken_Expired(t *testing.T) {
	svc := NewJWTService("test-secret", "15m")

	_, token, err := svc.JWTAuth().Encode(map[string]interface{}{
		"user_id": "u-1",
		"type":    TokenTypeSSE,
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	require.NoError(t, err)

	_, err = svc.ValidateSSEToken(token)
	assert.Error(t, err)
}
