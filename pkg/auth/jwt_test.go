package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_GenerateAndParse(t *testing.T) {
	svc, err := NewJWTService("test-secret", 30*time.Minute)
	require.NoError(t, err)

	token, err := svc.GenerateToken(7, "+919876543210", "citizen")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "+919876543210", claims.Phone)
	assert.Equal(t, "citizen", claims.Role)
	assert.Equal(t, "janseva-api", claims.Issuer)
}

func TestJWTService_ParseToken_Expired(t *testing.T) {
	svc, err := NewJWTService("test-secret", 1*time.Nanosecond)
	require.NoError(t, err)

	token, err := svc.GenerateToken(7, "", "citizen")
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	_, err = svc.ParseToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestJWTService_ParseToken_WrongSecret(t *testing.T) {
	issuer, err := NewJWTService("secret-a", 30*time.Minute)
	require.NoError(t, err)
	verifier, err := NewJWTService("secret-b", 30*time.Minute)
	require.NoError(t, err)

	token, err := issuer.GenerateToken(7, "", "citizen")
	require.NoError(t, err)

	_, err = verifier.ParseToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestJWTService_ParseToken_Malformed(t *testing.T) {
	svc, err := NewJWTService("test-secret", 30*time.Minute)
	require.NoError(t, err)

	_, err = svc.ParseToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestNewJWTService_RequiresSecret(t *testing.T) {
	_, err := NewJWTService("", 30*time.Minute)
	assert.Error(t, err)
}
