// Package preset maps short preset names to a style sheet plus a color set.
//
// Presets are the quick path for common journal targets: "ieee-okabe" is the
// IEEE sheet with the Okabe-Ito cycle, "gb-gray" is the GB sheet with the
// grayscale-safe cycle for photocopy-proof figures. The table is fixed;
// lookups are case-insensitive.
package preset

import (
	"strings"

	"github.com/pplot/pplot/pkg/errors"
)

// Preset pairs a style sheet with a color set.
type Preset struct {
	Name     string // Canonical preset name (e.g. "ieee-okabe")
	Style    string // Style sheet name (e.g. "IEEE")
	ColorSet string // Color set name (e.g. "Okabe-Ito")
}

// presets is the fixed preset table, in presentation order.
var presets = []Preset{
	{Name: "ieee-modern", Style: "IEEE", ColorSet: "Modern Scientific"},
	{Name: "ieee-contrast1", Style: "IEEE", ColorSet: "Contrast Set 1"},
	{Name: "ieee-okabe", Style: "IEEE", ColorSet: "Okabe-Ito"},
	{Name: "gb-modern", Style: "GB", ColorSet: "Modern Scientific"},
	{Name: "gb-contrast2", Style: "GB", ColorSet: "Contrast Set 2"},
	{Name: "gb-okabe", Style: "GB", ColorSet: "Okabe-Ito"},
	// Grayscale-safe pairings for print and photocopy.
	{Name: "ieee-gray", Style: "IEEE", ColorSet: "Grayscale-Safe"},
	{Name: "gb-gray", Style: "GB", ColorSet: "Grayscale-Safe"},
}

// Names returns all preset names in presentation order.
func Names() []string {
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = p.Name
	}
	return names
}

// All returns the preset table in presentation order.
func All() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// Get returns the preset with the given name.
// The lookup is case-insensitive. Unknown names return a configuration
// error listing the available presets.
func Get(name string) (Preset, error) {
	if err := errors.ValidateLookupName("preset", name); err != nil {
		return Preset{}, err
	}

	lower := strings.ToLower(name)
	for _, p := range presets {
		if p.Name == lower {
			return p, nil
		}
	}
	return Preset{}, errors.New(errors.ErrCodeUnknownPreset,
		"preset %q not found (available: %s)", name, strings.Join(Names(), ", "))
}
