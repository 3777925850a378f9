package style

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/pplot/pplot/pkg/errors"
)

//go:embed styles/*.toml
var builtinFS embed.FS

// builtinDir is the embedded directory holding the shipped sheets.
const builtinDir = "styles"

// =============================================================================
// Discovery
// =============================================================================

// Origin identifies where a sheet was found on the search path.
type Origin string

const (
	OriginBuiltin Origin = "builtin"
	OriginProject Origin = "project"
	OriginUser    Origin = "user"
)

// Sheet describes one discoverable style sheet.
type Sheet struct {
	Name   string
	Origin Origin
	Path   string // empty for builtin sheets
}

type searchDir struct {
	path   string
	origin Origin
}

// Finder locates style sheets. The search order is: explicit extra
// directories, the project styles/ directory, the user config
// directory, then the embedded builtins. Earlier entries shadow later
// ones, so a project sheet named IEEE.toml replaces the shipped one.
type Finder struct {
	dirs []searchDir
}

// NewFinder returns a finder over the default search path, with extra
// directories prepended at project precedence.
func NewFinder(extra ...string) *Finder {
	f := &Finder{}
	for _, dir := range extra {
		if dir != "" {
			f.dirs = append(f.dirs, searchDir{dir, OriginProject})
		}
	}
	f.dirs = append(f.dirs, searchDir{"styles", OriginProject})
	if cfg, err := os.UserConfigDir(); err == nil {
		f.dirs = append(f.dirs, searchDir{filepath.Join(cfg, "pplot", "styles"), OriginUser})
	}
	return f
}

// Sheets returns every visible sheet after shadowing, sorted by name.
func (f *Finder) Sheets() []Sheet {
	seen := make(map[string]bool)
	var sheets []Sheet

	add := func(s Sheet) {
		key := strings.ToLower(s.Name)
		if seen[key] {
			return
		}
		seen[key] = true
		sheets = append(sheets, s)
	}

	for _, d := range f.dirs {
		entries, err := os.ReadDir(d.path)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if name, ok := sheetStem(e); ok {
				add(Sheet{Name: name, Origin: d.origin, Path: filepath.Join(d.path, e.Name())})
			}
		}
	}
	if entries, err := fs.ReadDir(builtinFS, builtinDir); err == nil {
		for _, e := range entries {
			if name, ok := sheetStem(e); ok {
				add(Sheet{Name: name, Origin: OriginBuiltin})
			}
		}
	}

	sort.Slice(sheets, func(i, j int) bool { return sheets[i].Name < sheets[j].Name })
	return sheets
}

// Names returns the visible sheet names, sorted.
func (f *Finder) Names() []string {
	sheets := f.Sheets()
	names := make([]string, len(sheets))
	for i, s := range sheets {
		names[i] = s.Name
	}
	return names
}

// Load finds and decodes the named sheet. Matching is case-insensitive
// on the file stem. Unknown names fail with the visible alternatives
// in the message.
func (f *Finder) Load(name string) (*Style, error) {
	if err := errors.ValidateLookupName("style", name); err != nil {
		return nil, err
	}

	for _, d := range f.dirs {
		entries, err := os.ReadDir(d.path)
		if err != nil {
			continue
		}
		for _, e := range entries {
			stem, ok := sheetStem(e)
			if !ok || !strings.EqualFold(stem, name) {
				continue
			}
			path := filepath.Join(d.path, e.Name())
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeStyleParse, err, "read style sheet %s", path)
			}
			return decode(data, stem, d.origin, path)
		}
	}

	if entries, err := fs.ReadDir(builtinFS, builtinDir); err == nil {
		for _, e := range entries {
			stem, ok := sheetStem(e)
			if !ok || !strings.EqualFold(stem, name) {
				continue
			}
			data, err := builtinFS.ReadFile(builtinDir + "/" + e.Name())
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeStyleParse, err, "read builtin sheet %s", e.Name())
			}
			return decode(data, stem, OriginBuiltin, "")
		}
	}

	return nil, errors.New(errors.ErrCodeUnknownStyle,
		"unknown style %q (available: %s)", name, strings.Join(f.Names(), ", "))
}

// Load decodes the named sheet from the default search path.
func Load(name string) (*Style, error) {
	return NewFinder().Load(name)
}

// Available lists the sheets visible on the default search path.
func Available() []Sheet {
	return NewFinder().Sheets()
}

func sheetStem(e fs.DirEntry) (string, bool) {
	if e.IsDir() {
		return "", false
	}
	ext := filepath.Ext(e.Name())
	if !strings.EqualFold(ext, ".toml") {
		return "", false
	}
	return strings.TrimSuffix(e.Name(), ext), true
}

func decode(data []byte, stem string, origin Origin, path string) (*Style, error) {
	var s Style
	if err := toml.Unmarshal(data, &s); err != nil {
		src := path
		if src == "" {
			src = stem
		}
		return nil, errors.Wrap(errors.ErrCodeStyleParse, err, "parse style sheet %s", src)
	}
	s.Name = stem
	s.Origin = origin
	s.setDefaults()
	return &s, nil
}
