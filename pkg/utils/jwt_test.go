package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dramoir/dramoir-backend/internal/models"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	user := &models.User{Model: gorm.Model{ID: 42}, Email: "a@x.com"}
	tokenString, err := GenerateToken(user)
	require.NoError(t, err)

	token, err := ValidateToken(tokenString)
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	require.Equal(t, float64(42), claims["id"])
	require.Equal(t, "a@x.com", claims["email"])
	_, hasRefresh := claims["refresh"]
	require.False(t, hasRefresh)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	user := &models.User{Model: gorm.Model{ID: 42}}
	tokenString, err := GenerateRefreshToken(user)
	require.NoError(t, err)

	id, err := ParseRefreshToken(tokenString)
	require.NoError(t, err)
	require.Equal(t, uint(42), id)
}

func TestAccessTokenIsNotARefreshToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	user := &models.User{Model: gorm.Model{ID: 42}}
	tokenString, err := GenerateToken(user)
	require.NoError(t, err)

	_, err = ParseRefreshToken(tokenString)
	require.Error(t, err)
}

func TestTokenSignedWithWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	user := &models.User{Model: gorm.Model{ID: 42}}
	tokenString, err := GenerateToken(user)
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "another-secret")
	token, err := ValidateToken(tokenString)
	if err == nil {
		require.False(t, token.Valid)
	}
}
