// Package colorset provides the named color cycles used for publication
// figures.
//
// Each set is a fixed cycle of eight colors chosen for print contrast.
// Lookups are case-insensitive. The Grayscale-Safe set and the
// discriminability check exist because many journals still print in
// grayscale; two colors that survive a grayscale conversion must differ
// in luminance, not just hue.
//
// # Usage
//
//	set, err := colorset.Get("okabe-ito")
//	if err != nil {
//	    return err
//	}
//	next := set.Cycle()
//	line.Color = next()
package colorset

import (
	"image/color"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/pplot/pplot/pkg/errors"
)

// DefaultMinLumaDelta is the minimum adjacent luminance gap (0-100 scale)
// for a set to count as grayscale-discriminable.
const DefaultMinLumaDelta = 8.0

// Set is a named, ordered color cycle.
type Set struct {
	Name string   // Canonical name (e.g. "Okabe-Ito")
	Hex  []string // Colors as "#RRGGBB", in cycle order
}

// sets is the fixed color-set table, in presentation order.
var sets = []Set{
	{Name: "Contrast Set 1", Hex: []string{
		"#D55E00", "#0072B2", "#009E73", "#F0E442",
		"#CC79A7", "#56B4E9", "#E69F00", "#F4A582",
	}},
	{Name: "Contrast Set 2", Hex: []string{
		"#A6761D", "#666666", "#E7298A", "#66A61E",
		"#E6AB02", "#A6CEE3", "#1F78B4", "#B2DF8A",
	}},
	{Name: "Muted Yet Bold", Hex: []string{
		"#8B3A3A", "#2E8B57", "#4682B4", "#CD5C5C",
		"#5F9EA0", "#8A2BE2", "#FF6347", "#FFD700",
	}},
	{Name: "Refined Contrast", Hex: []string{
		"#8B4513", "#00CED1", "#808000", "#8FBC8F",
		"#2F4F4F", "#FF69B4", "#DAA520", "#4682B4",
	}},
	{Name: "Modern Scientific", Hex: []string{
		"#E41A1C", "#377EB8", "#4DAF4A", "#984EA3",
		"#FF7F00", "#FFFF33", "#A65628", "#F781BF",
	}},
	{Name: "Extended Elegance", Hex: []string{
		"#B22222", "#6A5ACD", "#2E8B57", "#FF8C00",
		"#20B2AA", "#9370DB", "#8FBC8F", "#A52A2A",
	}},
	{Name: "Pastel High Contrast", Hex: []string{
		"#F4A582", "#92C5DE", "#B2DF8A", "#FC9272",
		"#FFD92F", "#9E0142", "#D53E4F", "#F46D43",
	}},
	{Name: "Softened Bold Colors", Hex: []string{
		"#F28E2B", "#4E79A7", "#E15759", "#76B7B2",
		"#59A14F", "#EDC948", "#B07AA1", "#FF9DA7",
	}},
	// Color-blind friendly palette after Okabe & Ito.
	{Name: "Okabe-Ito", Hex: []string{
		"#E69F00", "#56B4E9", "#009E73", "#F0E442",
		"#0072B2", "#D55E00", "#CC79A7", "#000000",
	}},
	// Brewer qualitative (Set2/Paired-like) selections.
	{Name: "Brewer-Qual-Soft", Hex: []string{
		"#66C2A5", "#FC8D62", "#8DA0CB", "#E78AC3",
		"#A6D854", "#FFD92F", "#E5C494", "#B3B3B3",
	}},
	// Curated luminance steps (~0,10,25,40,55,70,85,95) so the cycle
	// survives grayscale printing.
	{Name: "Grayscale-Safe", Hex: []string{
		"#000000", "#1A1A1A", "#404040", "#666666",
		"#8C8C8C", "#B3B3B3", "#D9D9D9", "#F2F2F2",
	}},
}

// Names returns all color-set names in presentation order.
func Names() []string {
	names := make([]string, len(sets))
	for i, s := range sets {
		names[i] = s.Name
	}
	return names
}

// Default returns the set used when no palette was selected.
func Default() Set {
	return sets[0]
}

// Get returns the color set with the given name.
// The lookup is case-insensitive. Unknown names return a configuration
// error listing the available sets.
func Get(name string) (Set, error) {
	if err := errors.ValidateLookupName("color set", name); err != nil {
		return Set{}, err
	}

	lower := strings.ToLower(name)
	for _, s := range sets {
		if strings.ToLower(s.Name) == lower {
			return s, nil
		}
	}
	return Set{}, errors.New(errors.ErrCodeUnknownColorSet,
		"color set %q not found (available: %s)", name, strings.Join(Names(), ", "))
}

// Colors returns the set's cycle as color.Color values.
func (s Set) Colors() []color.Color {
	colors := make([]color.Color, 0, len(s.Hex))
	for _, h := range s.Hex {
		c, err := colorful.Hex(h)
		if err != nil {
			continue
		}
		colors = append(colors, c)
	}
	return colors
}

// At returns the color at position i, wrapping around the cycle.
func (s Set) At(i int) color.Color {
	colors := s.Colors()
	if len(colors) == 0 {
		return color.Black
	}
	return colors[i%len(colors)]
}

// Cycle returns a function that yields the set's colors in order,
// wrapping around when the cycle is exhausted.
func (s Set) Cycle() func() color.Color {
	colors := s.Colors()
	i := 0
	return func() color.Color {
		if len(colors) == 0 {
			return color.Black
		}
		c := colors[i%len(colors)]
		i++
		return c
	}
}

// Luma returns the Rec. 709 luminance of a "#RRGGBB" color on a 0-100
// scale.
func Luma(hex string) (float64, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse color %q", hex)
	}
	y := 0.2126*c.R + 0.7152*c.G + 0.0722*c.B
	return y * 100.0, nil
}

// Lumas returns the luminance of every color in the set, in cycle order.
func Lumas(s Set) []float64 {
	ys := make([]float64, 0, len(s.Hex))
	for _, h := range s.Hex {
		y, err := Luma(h)
		if err != nil {
			continue
		}
		ys = append(ys, y)
	}
	return ys
}

// GrayscaleDiscriminable reports whether every pair of adjacent colors,
// ordered by luminance, differs by at least minDelta on the 0-100 scale.
// Pass DefaultMinLumaDelta for the standard threshold.
func GrayscaleDiscriminable(s Set, minDelta float64) bool {
	ys := Lumas(s)
	sort.Float64s(ys)
	for i := 1; i < len(ys); i++ {
		if ys[i]-ys[i-1] < minDelta {
			return false
		}
	}
	return true
}
