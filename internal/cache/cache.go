// Package cache provides the response caches for the two evidence services
// and the episode-scoped memoization of extraction lists.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is a byte-oriented cache with per-entry TTLs.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a stable cache key from an arbitrary request descriptor. The
// version segment invalidates everything when the cached payload shape
// changes.
func Key(descriptor string) string {
	sum := sha256.Sum256([]byte(descriptor))
	return "bibliocheck:v1:" + hex.EncodeToString(sum[:])
}
