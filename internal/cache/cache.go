// Package cache wraps the redis client used for short-lived read helpers.
// The cart badge count tolerates a small staleness window, so a miss or a
// redis outage just falls through to the database.
package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// cart_count:{user_id} -> item count shown on the cart badge
	KeyCartCount = "cart_count:%s"
)

var TTLCartCount = 5 * time.Minute

// New returns a redis client, or nil when no address is configured.
// Callers treat a nil client as "cache disabled".
func New(addr string) *redis.Client {
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{Addr: addr})
}

// GetCartCount returns the cached count and whether it was present.
func GetCartCount(ctx context.Context, rdb *redis.Client, userID string) (int, bool) {
	if rdb == nil {
		return 0, false
	}
	v, err := rdb.Get(ctx, fmt.Sprintf(KeyCartCount, userID)).Result()
	if err != nil {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// SetCartCount stores the count with a short TTL.
func SetCartCount(ctx context.Context, rdb *redis.Client, userID string, count int) {
	if rdb == nil {
		return
	}
	rdb.Set(ctx, fmt.Sprintf(KeyCartCount, userID), count, TTLCartCount)
}

// DropCartCount invalidates the count after any cart write.
func DropCartCount(ctx context.Context, rdb *redis.Client, userID string) {
	if rdb == nil {
		return
	}
	rdb.Del(ctx, fmt.Sprintf(KeyCartCount, userID))
}
