package utils

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dramoir/dramoir-backend/internal/models"
)

const (
	accessTokenLifetime  = 24 * time.Hour
	refreshTokenLifetime = 30 * 24 * time.Hour
)

func GenerateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"exp":   time.Now().Add(accessTokenLifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func GenerateRefreshToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"id":      user.ID,
		"refresh": true,
		"exp":     time.Now().Add(refreshTokenLifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
}

// ParseRefreshToken validates a refresh token and returns the user ID it
// was minted for.
func ParseRefreshToken(tokenString string) (uint, error) {
	token, err := ValidateToken(tokenString)
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("invalid refresh token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fmt.Errorf("invalid token claims")
	}
	if isRefresh, _ := claims["refresh"].(bool); !isRefresh {
		return 0, fmt.Errorf("not a refresh token")
	}

	id, ok := claims["id"].(float64)
	if !ok {
		return 0, fmt.Errorf("invalid token claims")
	}
	return uint(id), nil
}
