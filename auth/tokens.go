package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"patakha/globals"
	"patakha/middleware"
	"patakha/models"

	"github.com/golang-jwt/jwt/v5"
)

const (
	refreshTokenTTL = 7 * 24 * time.Hour
	accessTokenTTL  = 24 * time.Hour
)

func generateAccessToken(user models.User) (string, error) {
	claims := middleware.Claims{
		Username: user.Name,
		UserID:   user.UserID,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(accessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(globals.JwtSecret)
}

func generateRefreshToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
