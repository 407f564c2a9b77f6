package globals

import (
	"context"
	"os"
)

var JwtSecret = []byte(getenv("JWT_SECRET", "change_me_in_production"))

// Context keys
type ContextKey string

const UserIDKey ContextKey = "userId"
const RoleKey ContextKey = "role"
const UsernameKey ContextKey = "username"

var Ctx = context.Background()

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
