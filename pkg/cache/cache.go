// Package cache provides a small file-backed cache for expensive local
// lookups.
//
// The only hot consumer is font discovery: scanning system font
// directories for a CJK face takes noticeable time on every run, so
// resolved paths are cached under the user cache directory with a TTL.
// A NullCache is available when caching should be disabled.
package cache

import (
	"context"
	"time"
)

// Default TTLs for cached font lookups.
const (
	// DefaultPathTTL is how long a resolved font path stays valid.
	DefaultPathTTL = 30 * 24 * time.Hour

	// DefaultMissTTL is how long a failed lookup is remembered.
	// Shorter than DefaultPathTTL so newly installed fonts are found
	// within a day.
	DefaultMissTTL = 24 * time.Hour
)

// Cache stores opaque byte values under string keys with optional
// expiration.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A non-positive ttl stores it without expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// Keyer builds cache keys for the lookup types this project caches.
type Keyer interface {
	// FontKey returns the cache key for a font search pattern.
	FontKey(pattern string) string
}

// DefaultKeyer hashes lookups into collision-safe keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// FontKey generates a key for a font search pattern.
func (DefaultKeyer) FontKey(pattern string) string {
	return hashKey("font", pattern)
}
