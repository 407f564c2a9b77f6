package auth

import (
	"testing"

	"patakha/middleware"
	"patakha/models"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	user := models.User{
		UserID: "user-123",
		Name:   "Asha",
		Role:   models.RoleAdmin,
	}

	token, err := generateAccessToken(user)
	if err != nil {
		t.Fatalf("generateAccessToken failed: %v", err)
	}

	claims, err := middleware.ValidateRawToken(token)
	if err != nil {
		t.Fatalf("token did not validate: %v", err)
	}
	if claims.UserID != "user-123" || claims.Username != "Asha" || claims.Role != models.RoleAdmin {
		t.Fatalf("claims round-tripped as %+v", claims)
	}
}

func TestValidateRawTokenRejectsGarbage(t *testing.T) {
	if _, err := middleware.ValidateRawToken(""); err == nil {
		t.Fatal("empty token must be rejected")
	}
	if _, err := middleware.ValidateRawToken("not.a.jwt"); err == nil {
		t.Fatal("malformed token must be rejected")
	}
}

func TestRefreshTokensAreUniqueAndHashed(t *testing.T) {
	a, err := generateRefreshToken()
	if err != nil {
		t.Fatalf("generateRefreshToken failed: %v", err)
	}
	b, err := generateRefreshToken()
	if err != nil {
		t.Fatalf("generateRefreshToken failed: %v", err)
	}
	if a == b {
		t.Fatal("two refresh tokens came out identical")
	}
	if len(a) != 64 {
		t.Fatalf("refresh token length %d, want 64 hex chars", len(a))
	}

	if hashToken(a) == a {
		t.Fatal("stored token must be a hash, not the token itself")
	}
	if hashToken(a) != hashToken(a) {
		t.Fatal("hashToken must be deterministic")
	}
}
