// Package fonts resolves the typefaces style sheets ask for.
//
// The bundled Liberation faces cover Latin text without touching the
// host system. Anything else, in practice the CJK faces the GB sheet
// needs, is discovered on the host with findfont, parsed once, and
// registered in a gonum font cache under both the Serif and Sans
// variants. Discovery results persist through pkg/cache so repeated
// runs skip the filesystem walk.
//
// # Usage
//
//	reg := fonts.NewRegistry(fileCache)
//	if _, err := reg.Ensure(ctx, "SimSun"); err != nil {
//	    log.Warn("CJK face unavailable", "err", err)
//	}
//	tf := reg.Resolve("SimSun", "Times New Roman") // falls back to Liberation
package fonts

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/flopp/go-findfont"
	"golang.org/x/image/font/opentype"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/font/liberation"

	"github.com/pplot/pplot/pkg/cache"
	"github.com/pplot/pplot/pkg/errors"
	"github.com/pplot/pplot/pkg/observability"
)

// DefaultTypeface is the bundled fallback face. It is always resolvable
// because every registry seeds its cache with the Liberation family.
const DefaultTypeface = font.Typeface("Liberation")

// registeredVariants are the variants every discovered face is filed
// under. Sheets select serif or sans per family; registering both keeps
// a single physical face usable for either.
var registeredVariants = []font.Variant{"Serif", "Sans"}

// missMarker is the cached value for a pattern that matched nothing.
// Negative results expire on the shorter miss TTL so newly installed
// fonts are picked up within a day.
var missMarker = []byte{0x00}

// aliasPatterns maps a requested face (lowercased) to the file-name
// patterns tried against the host font directories, most specific
// first. SimSun gets open substitutes because the genuine file only
// ships with Windows.
var aliasPatterns = map[string][]string{
	"simsun": {
		"simsun.ttc",
		"simsun",
		"nsimsun",
		"sourcehanserifsc",
		"sourcehanserif",
		"notoserifcjksc",
		"notoserifcjk",
		"notoserifsc",
		"wqy-microhei",
	},
	"times new roman": {
		"times.ttf",
		"timesnewroman",
		"times new roman",
		"liberationserif",
	},
}

// =============================================================================
// Registry
// =============================================================================

// Registry tracks which typefaces have been parsed and registered for
// text rendering. It owns its font cache, so nothing it registers
// leaks into package-global state. It is safe for concurrent use.
type Registry struct {
	fonts *font.Cache // parsed faces, consulted by installed text handlers
	files cache.Cache // persisted discovery results
	keyer cache.Keyer

	mu    sync.RWMutex
	known map[font.Typeface]bool
}

// NewRegistry returns a registry over a fresh font cache seeded with
// the bundled Liberation collection. Discovery results are persisted
// in files; pass nil to skip caching.
func NewRegistry(files cache.Cache) *Registry {
	return NewRegistryWithCache(font.NewCache(liberation.Collection()), files)
}

// NewRegistryWithCache is NewRegistry with an explicit font cache. The
// cache is expected to already hold the Liberation collection.
func NewRegistryWithCache(fc *font.Cache, files cache.Cache) *Registry {
	if files == nil {
		files = cache.NewNullCache()
	}
	return &Registry{
		fonts: fc,
		files: files,
		// Font paths are host-specific, so scope keys by OS to keep a
		// shared cache directory coherent across platforms.
		keyer: cache.NewScopedKeyer(cache.NewDefaultKeyer(), runtime.GOOS+":"),
		known: map[font.Typeface]bool{DefaultTypeface: true},
	}
}

// DefaultCacheDir returns the directory discovery results persist in.
func DefaultCacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeFontLoad, err, "resolve user cache directory")
	}
	return filepath.Join(base, "pplot", "fonts"), nil
}

// DefaultCache opens the standard file cache for font discovery. When
// the user cache directory cannot be resolved, discovery still works
// but nothing persists.
func DefaultCache() (cache.Cache, error) {
	dir, err := DefaultCacheDir()
	if err != nil {
		return cache.NewNullCache(), err
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return cache.NewNullCache(), err
	}
	return fc, nil
}

// Cache exposes the underlying font cache for text handlers.
func (r *Registry) Cache() *font.Cache {
	return r.fonts
}

// Ensure makes the named face available, discovering and parsing it if
// it is not registered yet. It returns the typeface to reference in
// font specs. The search tries each known alias pattern in order and
// fails only when none matches a parseable file.
func (r *Registry) Ensure(ctx context.Context, name string) (font.Typeface, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New(errors.ErrCodeFontLoad, "font name is empty")
	}
	if tf, ok := r.lookup(name); ok {
		return tf, nil
	}

	tf := font.Typeface(name)
	for _, pattern := range searchPatterns(name) {
		path, err := r.locate(ctx, pattern)
		if err != nil || path == "" {
			continue
		}
		coll, err := loadFaces(path, tf)
		if err != nil {
			continue
		}
		r.register(tf, coll)
		return tf, nil
	}
	return "", errors.New(errors.ErrCodeFontLoad, "font %q not found on this system", name)
}

// Resolve returns the first registered face among preferred, falling
// back to the bundled default. Empty names are skipped, so callers can
// pass optional settings straight through.
func (r *Registry) Resolve(preferred ...string) font.Typeface {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, name := range preferred {
		if tf, ok := r.lookupLocked(name); ok {
			return tf
		}
	}
	return DefaultTypeface
}

// Has reports whether the named face is registered. Matching is
// case-insensitive.
func (r *Registry) Has(name string) bool {
	_, ok := r.lookup(name)
	return ok
}

// Known returns the registered typeface names, sorted.
func (r *Registry) Known() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.known))
	for tf := range r.known {
		names = append(names, string(tf))
	}
	sort.Strings(names)
	return names
}

// RegisterFile parses the font file at path and registers it under
// name, bypassing discovery. The CLI uses it for explicit --font-file
// overrides.
func (r *Registry) RegisterFile(name, path string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New(errors.ErrCodeFontLoad, "font name is empty")
	}
	tf := font.Typeface(name)
	coll, err := loadFaces(path, tf)
	if err != nil {
		return err
	}
	r.register(tf, coll)
	return nil
}

// Refresh drops the persisted discovery results for name's patterns
// and runs discovery again, picking up fonts installed since the last
// scan. Faces parsed earlier in this process stay loaded.
func (r *Registry) Refresh(ctx context.Context, name string) (font.Typeface, error) {
	for _, pattern := range searchPatterns(name) {
		_ = r.files.Delete(ctx, r.keyer.FontKey(pattern))
	}
	r.mu.Lock()
	if tf, ok := r.lookupLocked(name); ok && tf != DefaultTypeface {
		delete(r.known, tf)
	}
	r.mu.Unlock()
	return r.Ensure(ctx, name)
}

func (r *Registry) lookup(name string) (font.Typeface, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lookupLocked(name)
}

func (r *Registry) lookupLocked(name string) (font.Typeface, bool) {
	if name = strings.TrimSpace(name); name == "" {
		return "", false
	}
	for tf := range r.known {
		if strings.EqualFold(string(tf), name) {
			return tf, true
		}
	}
	return "", false
}

func (r *Registry) register(tf font.Typeface, coll font.Collection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fonts.Add(coll)
	r.known[tf] = true
}

// =============================================================================
// Discovery
// =============================================================================

// searchPatterns expands a face name into the file patterns to try.
func searchPatterns(name string) []string {
	key := strings.ToLower(strings.TrimSpace(name))
	if alts, ok := aliasPatterns[key]; ok {
		return alts
	}
	return []string{key}
}

// locate finds the font file matching pattern, consulting the file
// cache first. Hits are revalidated with a stat so a moved file
// triggers a fresh search; misses are cached with a marker entry.
func (r *Registry) locate(ctx context.Context, pattern string) (string, error) {
	key := r.keyer.FontKey(pattern)
	if data, ok, err := r.files.Get(ctx, key); err == nil && ok {
		if bytes.Equal(data, missMarker) {
			observability.Cache().OnCacheHit(ctx, "font")
			return "", nil
		}
		path := string(data)
		if _, err := os.Stat(path); err == nil {
			observability.Cache().OnCacheHit(ctx, "font")
			return path, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "font")

	path, err := findfont.Find(pattern)
	if err != nil || path == "" {
		_ = r.files.Set(ctx, key, missMarker, cache.DefaultMissTTL)
		observability.Cache().OnCacheSet(ctx, "font", len(missMarker))
		return "", nil
	}
	_ = r.files.Set(ctx, key, []byte(path), cache.DefaultPathTTL)
	observability.Cache().OnCacheSet(ctx, "font", len(path))
	return path, nil
}

// loadFaces reads and parses a font file, returning faces filed under
// every registered variant. TrueType collections contribute their
// first font.
func loadFaces(path string, tf font.Typeface) (font.Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFontLoad, err, "read font file %s", path)
	}

	var parsed *opentype.Font
	if strings.EqualFold(filepath.Ext(path), ".ttc") {
		coll, err := opentype.ParseCollection(data)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeFontLoad, err, "parse font collection %s", path)
		}
		parsed, err = coll.Font(0)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeFontLoad, err, "read first font of %s", path)
		}
	} else {
		parsed, err = opentype.Parse(data)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeFontLoad, err, "parse font %s", path)
		}
	}

	faces := make(font.Collection, 0, len(registeredVariants))
	for _, v := range registeredVariants {
		faces = append(faces, font.Face{
			Font: font.Font{Typeface: tf, Variant: v},
			Face: parsed,
		})
	}
	return faces, nil
}

// List returns every font file visible to discovery on this host.
func List() []string {
	paths := findfont.List()
	sort.Strings(paths)
	return paths
}
