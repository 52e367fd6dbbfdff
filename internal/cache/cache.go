// Package cache provides the layered fetch cache. Values are the
// JSON-encoded extracted pages the scraper produces, keyed by URL, so
// repeated research runs over the same sources skip the network.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// CacheKey generates a cache key from a URL. The prefix versions the
// entry format; bump it when the cached document schema changes.
func CacheKey(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "indago:v1:" + hex.EncodeToString(hash[:])
}
