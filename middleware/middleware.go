package middleware

import (
	"context"
	"fmt"
	"net/http"

	"patakha/globals"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

// JWT claims
type Claims struct {
	Username string `json:"username"`
	UserID   string `json:"userId"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

func Authenticate(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if websocket.IsWebSocketUpgrade(r) {
			// Token arrives as a query param on upgrades; validated there.
			next(w, r, ps)
			return
		}

		tokenString := r.Header.Get("Authorization")
		if tokenString == "" {
			http.Error(w, "Missing token", http.StatusUnauthorized)
			return
		}

		if len(tokenString) < 8 || tokenString[:7] != "Bearer " {
			http.Error(w, "Invalid token format", http.StatusUnauthorized)
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString[7:], claims, func(token *jwt.Token) (any, error) {
			return globals.JwtSecret, nil
		})
		if err != nil || !token.Valid {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		next(w, r.WithContext(withClaims(r.Context(), claims)), ps)
	}
}

// RequireAdmin wraps an already-authenticated handle and rejects callers
// without the admin role.
func RequireAdmin(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		role, _ := r.Context().Value(globals.RoleKey).(string)
		if role != "admin" {
			http.Error(w, "Admin access required", http.StatusUnauthorized)
			return
		}
		next(w, r, ps)
	}
}

func OptionalAuth(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		tokenString := r.Header.Get("Authorization")
		if len(tokenString) >= 8 && tokenString[:7] == "Bearer " {
			claims := &Claims{}
			token, err := jwt.ParseWithClaims(tokenString[7:], claims, func(token *jwt.Token) (any, error) {
				return globals.JwtSecret, nil
			})
			if err == nil && token.Valid {
				r = r.WithContext(withClaims(r.Context(), claims))
			}
		}
		// Proceed regardless of token state
		next(w, r, ps)
	}
}

func ValidateJWT(tokenString string) (*Claims, error) {
	if tokenString == "" || len(tokenString) < 8 {
		return nil, fmt.Errorf("invalid token")
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString[7:], claims, func(token *jwt.Token) (any, error) {
		return globals.JwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("unauthorized: %w", err)
	}
	return claims, nil
}

// ValidateRawToken parses a bare token string (no "Bearer " prefix), used
// by websocket upgrades that carry the token as a query parameter.
func ValidateRawToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("invalid token")
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return globals.JwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("unauthorized")
	}
	return claims, nil
}

func withClaims(ctx context.Context, claims *Claims) context.Context {
	ctx = context.WithValue(ctx, globals.UserIDKey, claims.UserID)
	ctx = context.WithValue(ctx, globals.RoleKey, claims.Role)
	return context.WithValue(ctx, globals.UsernameKey, claims.Username)
}
