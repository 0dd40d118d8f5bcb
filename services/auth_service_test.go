package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("left-bower"), bcrypt.MinCost)
	require.NoError(t, err)
	svc := NewAuthService(string(hash), "test-secret")

	_, err = svc.Login(LoginInput{Password: "right-bower"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	token, err := svc.Login(LoginInput{Password: "left-bower"})
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, AdminRole, claims["role"])

	exp, ok := claims["exp"].(float64)
	require.True(t, ok)
	assert.InDelta(t, float64(time.Now().Add(tokenTTL).Unix()), exp, 5)
}

func TestAuthService_BadHash(t *testing.T) {
	_, err := NewAuthService("not-a-bcrypt-hash", "s").Login(LoginInput{Password: "x"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("left-bower")
	require.NoError(t, err)

	token, err := NewAuthService(hash, "s").Login(LoginInput{Password: "left-bower"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, err = HashPassword("")
	assert.ErrorIs(t, err, ErrValidationFailed)
}
