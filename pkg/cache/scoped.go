package cache

// ScopedKeyer wraps a Keyer with a prefix so lookups from different
// environments stay isolated. Font paths are host-specific, so the font
// registry scopes its keys by operating system; a cache directory copied
// between machines then never serves a stale path from another platform.
//
// Example usage:
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), runtime.GOOS+":")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner so every generated key carries prefix. A
// nil inner falls back to the default keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// FontKey generates a prefixed key for a font search pattern.
func (k *ScopedKeyer) FontKey(pattern string) string {
	return k.prefix + k.inner.FontKey(pattern)
}
