package jwtutil

import (
	"testing"
	"time"

	"storefront-service/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	Initialize(&config.JWTConfig{SigningKey: "test-signing-key", ExpirationTime: time.Hour})

	token, err := GenerateToken("user@example.com", 12, true)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.EqualValues(t, 12, claims.UserID)
	assert.True(t, claims.IsStaff)
}

func TestValidateToken_WrongKey(t *testing.T) {
	Initialize(&config.JWTConfig{SigningKey: "key-one", ExpirationTime: time.Hour})
	token, err := GenerateToken("user@example.com", 1, false)
	require.NoError(t, err)

	Initialize(&config.JWTConfig{SigningKey: "key-two", ExpirationTime: time.Hour})
	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	Initialize(&config.JWTConfig{SigningKey: "test-signing-key", ExpirationTime: -time.Minute})
	token, err := GenerateToken("user@example.com", 1, false)
	require.NoError(t, err)

	_, err = ValidateToken(token)
	assert.Error(t, err)
}
