package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// Cache keys. The catalog is immutable after seeding so a single shared key
// is enough; per-wallet keys are invalidated by the mutation that changes
// the underlying rows.
const (
	CatalogKey = "catalog:upgrades" // Upgrade catalog listing
)

// OwnedUpgradesKey is the cache key for one wallet's owned-upgrade ids.
func OwnedUpgradesKey(walletID string) string {
	return "owned:wallet:" + walletID
}

// PayoutHistoryKey is the cache key for one wallet's payout history.
func PayoutHistoryKey(walletID string) string {
	return "payouts:wallet:" + walletID
}

// GetCache retrieves a value from Redis and unmarshals it into dest. A nil
// client reports a miss, so callers can run uncached (e.g. in tests).
func GetCache(ctx context.Context, rdb *redis.Client, key string, dest any) (bool, error) {
	if rdb == nil {
		return false, nil
	}
	val, err := rdb.Get(ctx, key).Result() // Get value from Redis
	if err == redis.Nil {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	return true, json.Unmarshal([]byte(val), dest) // Unmarshal JSON into dest
}

// SetCache stores a value in Redis with the given TTL.
func SetCache(ctx context.Context, rdb *redis.Client, key string, value any, ttl time.Duration) error {
	if rdb == nil {
		return nil
	}
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return err
	}
	return rdb.Set(ctx, key, b, ttl).Err() // Set value in Redis with TTL
}

// DeleteCache removes a key from Redis.
func DeleteCache(ctx context.Context, rdb *redis.Client, key string) error {
	if rdb == nil {
		return nil
	}
	return rdb.Del(ctx, key).Err()
}
