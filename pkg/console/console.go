// Package console provides themed terminal output for pplot sessions.
//
// A Styler is built once from an enumerated Theme and maps message roles
// (success, warning, error, accent) to a fixed color palette. Themes exist
// because publication work happens on dark terminals, light terminals, and
// dumb terminals without color support; the palette for each is resolved at
// construction time and unsupported themes fail immediately.
//
// # Emphasis Markup
//
// Log messages may mark spans for emphasis with ~<...>~:
//
//	styler.Emphasize("saved to ~<out/fig.pdf>~")
//
// The span is rendered in the theme's accent color (plain text on mono).
package console

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pplot/pplot/pkg/errors"
)

// Theme selects the terminal color palette for a Styler.
type Theme string

// Supported themes.
const (
	// ThemeDark is the palette for dark terminal backgrounds.
	ThemeDark Theme = "dark"

	// ThemeLight is the palette for light terminal backgrounds.
	ThemeLight Theme = "light"

	// ThemeMono disables color entirely (dumb terminals, CI logs).
	ThemeMono Theme = "mono"
)

// DefaultTheme is used when no theme is configured.
const DefaultTheme = ThemeDark

// ValidThemes is the set of supported themes.
var ValidThemes = map[Theme]bool{
	ThemeDark:  true,
	ThemeLight: true,
	ThemeMono:  true,
}

// ParseTheme converts a string to a Theme.
// "dumb" is accepted as an alias for mono. Unknown names return a
// configuration error listing the supported themes.
func ParseTheme(s string) (Theme, error) {
	if err := errors.ValidateLookupName("theme", s); err != nil {
		return "", err
	}
	t := Theme(strings.ToLower(s))
	if t == "dumb" {
		t = ThemeMono
	}
	if !ValidThemes[t] {
		return "", errors.New(errors.ErrCodeUnknownTheme,
			"unknown theme %q (supported: dark, light, mono)", s)
	}
	return t, nil
}

// palette holds the raw colors a theme maps roles to.
type palette struct {
	green  lipgloss.Color
	yellow lipgloss.Color
	red    lipgloss.Color
	blue   lipgloss.Color
	mint   lipgloss.Color
	gray   lipgloss.Color
	dim    lipgloss.Color
}

// palettes is the fixed theme table. Themes not listed here are not
// constructible.
var palettes = map[Theme]palette{
	ThemeDark: {
		green:  lipgloss.Color("35"),
		yellow: lipgloss.Color("220"),
		red:    lipgloss.Color("167"),
		blue:   lipgloss.Color("75"),
		mint:   lipgloss.Color("85"),
		gray:   lipgloss.Color("245"),
		dim:    lipgloss.Color("240"),
	},
	ThemeLight: {
		green:  lipgloss.Color("28"),
		yellow: lipgloss.Color("130"),
		red:    lipgloss.Color("124"),
		blue:   lipgloss.Color("26"),
		mint:   lipgloss.Color("29"),
		gray:   lipgloss.Color("240"),
		dim:    lipgloss.Color("247"),
	},
}

// Styler renders message roles in a theme's palette.
// The zero value is not usable; construct with NewStyler.
type Styler struct {
	theme Theme

	success lipgloss.Style
	warning lipgloss.Style
	err     lipgloss.Style
	accent  lipgloss.Style
	value   lipgloss.Style
	dim     lipgloss.Style
}

// NewStyler builds a Styler for the given theme.
// The theme table is resolved here; an unsupported theme is a
// configuration error, not a silent fallback.
func NewStyler(theme Theme) (*Styler, error) {
	if theme == "" {
		theme = DefaultTheme
	}
	if !ValidThemes[theme] {
		return nil, errors.New(errors.ErrCodeUnknownTheme,
			"unknown theme %q (supported: dark, light, mono)", theme)
	}

	s := &Styler{theme: theme}
	if theme == ThemeMono {
		// All styles stay zero-valued and render plain text.
		return s, nil
	}

	p := palettes[theme]
	s.success = lipgloss.NewStyle().Foreground(p.green)
	s.warning = lipgloss.NewStyle().Foreground(p.yellow)
	s.err = lipgloss.NewStyle().Foreground(p.red)
	s.accent = lipgloss.NewStyle().Foreground(p.mint)
	s.value = lipgloss.NewStyle().Foreground(p.blue)
	s.dim = lipgloss.NewStyle().Foreground(p.dim)
	return s, nil
}

// Theme returns the theme the Styler was built with.
func (s *Styler) Theme() Theme { return s.theme }

// Success renders text in the success color.
func (s *Styler) Success(text string) string { return s.success.Render(text) }

// Warning renders text in the warning color.
func (s *Styler) Warning(text string) string { return s.warning.Render(text) }

// Error renders text in the error color.
func (s *Styler) Error(text string) string { return s.err.Render(text) }

// Accent renders text in the accent color.
func (s *Styler) Accent(text string) string { return s.accent.Render(text) }

// Value renders text in the value color.
func (s *Styler) Value(text string) string { return s.value.Render(text) }

// Dim renders text in the muted color.
func (s *Styler) Dim(text string) string { return s.dim.Render(text) }

// emphasisRe matches ~<...>~ emphasis spans in log messages.
var emphasisRe = regexp.MustCompile(`~<(.*?)>~`)

// Emphasize renders the ~<...>~ spans of msg in the accent color and
// returns the rest unchanged. On mono themes the markers are stripped
// and the content kept as-is.
func (s *Styler) Emphasize(msg string) string {
	return emphasisRe.ReplaceAllStringFunc(msg, func(m string) string {
		inner := emphasisRe.FindStringSubmatch(m)[1]
		return s.accent.Render(inner)
	})
}

// ansiRe matches SGR escape sequences.
var ansiRe = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// Strip removes color escape sequences from s.
// Used when output is redirected to files and in tests.
func Strip(s string) string {
	return ansiRe.ReplaceAllString(s, "")
}
