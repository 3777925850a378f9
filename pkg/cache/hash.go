package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// hashKey builds a cache key of the form kind:hash(input). Hashing keeps
// keys filesystem-safe no matter what characters the lookup carries.
func hashKey(kind, input string) string {
	return kind + ":" + Hash([]byte(input))
}

// Hash returns the hex-encoded SHA-256 of data, 64 characters.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
