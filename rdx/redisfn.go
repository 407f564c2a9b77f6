package rdx

import (
	"os"
	"time"

	"patakha/globals"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

func init() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	Conn = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
}

// --- Hash helpers (issued-token store) ---

func RdxHset(hash, field, value string) error {
	return Conn.HSet(globals.Ctx, hash, field, value).Err()
}

func RdxHget(hash, field string) (string, error) {
	return Conn.HGet(globals.Ctx, hash, field).Result()
}

func RdxHdel(hash, field string) error {
	return Conn.HDel(globals.Ctx, hash, field).Err()
}

// --- Plain cache helpers (catalog listing) ---

func CacheSet(key, value string, ttl time.Duration) error {
	return Conn.Set(globals.Ctx, key, value, ttl).Err()
}

func CacheGet(key string) (string, error) {
	return Conn.Get(globals.Ctx, key).Result()
}

func CacheDel(keys ...string) {
	if len(keys) == 0 {
		return
	}
	Conn.Del(globals.Ctx, keys...)
}

func CacheDelPattern(pattern string) {
	keys, err := Conn.Keys(globals.Ctx, pattern).Result()
	if err != nil || len(keys) == 0 {
		return
	}
	Conn.Del(globals.Ctx, keys...)
}
