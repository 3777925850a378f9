// Package style loads and applies publication style sheets.
//
// A style sheet is a TOML document describing everything about a figure
// that is not data: physical widths, font faces and sizes, line weights,
// tick geometry, and legend defaults. Two sheets ship embedded in the
// binary, IEEE (Times-like serif, 3.5in column) and GB (SimSun for
// GB/T 7714 manuscripts). Users can shadow or extend them by dropping
// .toml files into a project styles/ directory or the user config
// directory; see Finder.
//
// Styles are applied per plot, never through package-global mutation:
//
//	st, err := style.Load("IEEE")
//	if err != nil {
//	    return err
//	}
//	st.Apply(p, reg)
package style

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"

	"github.com/pplot/pplot/pkg/fonts"
)

// =============================================================================
// Defaults
// =============================================================================

// Default physical dimensions, shared by every sheet that does not
// override them. Widths follow the IEEE column conventions.
const (
	DefaultWidthSingle = 3.5  // inches, one column
	DefaultWidthDouble = 7.16 // inches, two columns
	DefaultBaseHeight  = 2.5  // inches per subplot row unit
	DefaultDPI         = 600.0
)

// Default legend geometry (inches per entry cell).
const (
	DefaultLegendEntryWidth = 0.875
	DefaultLegendRowHeight  = 0.15
)

// =============================================================================
// Style Sheet Model
// =============================================================================

// Style holds the decoded settings of one style sheet.
// Zero fields are filled by setDefaults after decoding, so every loaded
// Style is fully populated.
type Style struct {
	Name   string `toml:"-"` // Sheet name (file stem)
	Origin Origin `toml:"-"` // Where the sheet came from

	Figure FigureSettings `toml:"figure"`
	Font   FontSettings   `toml:"font"`
	Lines  LineSettings   `toml:"lines"`
	Axes   AxesSettings   `toml:"axes"`
	Legend LegendSettings `toml:"legend"`
	Ticks  TickSettings   `toml:"ticks"`
}

// FigureSettings control physical figure geometry.
type FigureSettings struct {
	WidthSingle float64 `toml:"width_single"` // inches, span 1
	WidthDouble float64 `toml:"width_double"` // inches, span 2
	BaseHeight  float64 `toml:"base_height"`  // inches
	DPI         float64 `toml:"dpi"`
	Pad         float64 `toml:"pad"`   // outer padding, font-size multiples
	WPad        float64 `toml:"w_pad"` // horizontal subplot padding
	HPad        float64 `toml:"h_pad"` // vertical subplot padding
}

// FontSettings select faces and sizes (points).
type FontSettings struct {
	Family     string  `toml:"family"` // "serif" or "sans"
	Serif      string  `toml:"serif"`  // preferred serif face
	CJK        string  `toml:"cjk"`    // CJK face, empty when unused
	Size       float64 `toml:"size"`
	TitleSize  float64 `toml:"title_size"`
	LabelSize  float64 `toml:"label_size"`
	TickSize   float64 `toml:"tick_size"`
	LegendSize float64 `toml:"legend_size"`
}

// LineSettings control plotted line and marker geometry (points).
type LineSettings struct {
	Width      float64 `toml:"width"`
	MarkerSize float64 `toml:"marker_size"`
}

// AxesSettings control the axes frame.
type AxesSettings struct {
	LineWidth float64 `toml:"line_width"` // points
	Grid      bool    `toml:"grid"`
}

// LegendSettings control shared-legend geometry (inches per entry cell).
type LegendSettings struct {
	EntryWidth float64 `toml:"entry_width"`
	RowHeight  float64 `toml:"row_height"`
	Frame      bool    `toml:"frame"`
}

// TickSettings control tick geometry (points).
type TickSettings struct {
	Length float64 `toml:"length"`
	Width  float64 `toml:"width"`
}

// setDefaults fills unset fields so callers never see zeros.
func (s *Style) setDefaults() {
	if s.Figure.WidthSingle <= 0 {
		s.Figure.WidthSingle = DefaultWidthSingle
	}
	if s.Figure.WidthDouble <= 0 {
		s.Figure.WidthDouble = DefaultWidthDouble
	}
	if s.Figure.BaseHeight <= 0 {
		s.Figure.BaseHeight = DefaultBaseHeight
	}
	if s.Figure.DPI <= 0 {
		s.Figure.DPI = DefaultDPI
	}
	if s.Figure.Pad <= 0 {
		s.Figure.Pad = 0.1
	}
	if s.Figure.WPad <= 0 {
		s.Figure.WPad = 0.5
	}
	if s.Figure.HPad <= 0 {
		s.Figure.HPad = 0.5
	}
	if s.Font.Family == "" {
		s.Font.Family = "serif"
	}
	if s.Font.Size <= 0 {
		s.Font.Size = 8
	}
	if s.Font.TitleSize <= 0 {
		s.Font.TitleSize = s.Font.Size
	}
	if s.Font.LabelSize <= 0 {
		s.Font.LabelSize = s.Font.Size
	}
	if s.Font.TickSize <= 0 {
		s.Font.TickSize = s.Font.Size - 1
	}
	if s.Font.LegendSize <= 0 {
		s.Font.LegendSize = s.Font.Size - 1
	}
	if s.Lines.Width <= 0 {
		s.Lines.Width = 1.0
	}
	if s.Lines.MarkerSize <= 0 {
		s.Lines.MarkerSize = 2.0
	}
	if s.Axes.LineWidth <= 0 {
		s.Axes.LineWidth = 0.5
	}
	if s.Legend.EntryWidth <= 0 {
		s.Legend.EntryWidth = DefaultLegendEntryWidth
	}
	if s.Legend.RowHeight <= 0 {
		s.Legend.RowHeight = DefaultLegendRowHeight
	}
	if s.Ticks.Length <= 0 {
		s.Ticks.Length = 2.5
	}
	if s.Ticks.Width <= 0 {
		s.Ticks.Width = s.Axes.LineWidth
	}
}

// Defaults returns a sheet with every setting at its default value.
func Defaults() *Style {
	s := &Style{Name: "default", Origin: OriginBuiltin}
	s.setDefaults()
	return s
}

// =============================================================================
// Geometry Helpers
// =============================================================================

// Width returns the figure width for a column span (1 or 2).
func (s *Style) Width(span int) vg.Length {
	if span >= 2 {
		return vg.Length(s.Figure.WidthDouble) * vg.Inch
	}
	return vg.Length(s.Figure.WidthSingle) * vg.Inch
}

// BaseHeight returns the per-row height unit.
func (s *Style) BaseHeight() vg.Length {
	return vg.Length(s.Figure.BaseHeight) * vg.Inch
}

// LineWidth returns the plotted-line weight.
func (s *Style) LineWidth() vg.Length {
	return vg.Points(s.Lines.Width)
}

// MarkerRadius returns the scatter marker radius.
func (s *Style) MarkerRadius() vg.Length {
	return vg.Points(s.Lines.MarkerSize)
}

// =============================================================================
// Application
// =============================================================================

// TextFont builds a font spec for the sheet's face at the given size.
// The concrete typeface is resolved against the registry so a missing
// CJK face degrades to the bundled serif instead of failing the draw.
func (s *Style) TextFont(reg *fonts.Registry, size float64) font.Font {
	variant := font.Variant("Serif")
	if s.Font.Family == "sans" {
		variant = font.Variant("Sans")
	}
	return font.Font{
		Typeface: reg.Resolve(s.Font.CJK, s.Font.Serif),
		Variant:  variant,
		Size:     vg.Points(size),
	}
}

// Handler returns a text handler over the registry's font cache, so
// faces the registry discovered at runtime are available when text is
// measured and drawn.
func Handler(reg *fonts.Registry) text.Handler {
	return text.Plain{Fonts: reg.Cache()}
}

// Apply sets the sheet's fonts, line weights, and tick geometry on a
// single plot, and points its text handlers at the registry's cache.
func (s *Style) Apply(p *plot.Plot, reg *fonts.Registry) {
	h := Handler(reg)
	p.TextHandler = h

	p.Title.TextStyle.Font = s.TextFont(reg, s.Font.TitleSize)
	p.Title.TextStyle.Handler = h
	p.Title.Padding = vg.Points(2)

	p.X.Label.TextStyle.Font = s.TextFont(reg, s.Font.LabelSize)
	p.Y.Label.TextStyle.Font = s.TextFont(reg, s.Font.LabelSize)
	p.X.Label.TextStyle.Handler = h
	p.Y.Label.TextStyle.Handler = h
	p.X.Tick.Label.Font = s.TextFont(reg, s.Font.TickSize)
	p.Y.Tick.Label.Font = s.TextFont(reg, s.Font.TickSize)
	p.X.Tick.Label.Handler = h
	p.Y.Tick.Label.Handler = h

	p.X.LineStyle.Width = vg.Points(s.Axes.LineWidth)
	p.Y.LineStyle.Width = vg.Points(s.Axes.LineWidth)
	p.X.Tick.LineStyle.Width = vg.Points(s.Ticks.Width)
	p.Y.Tick.LineStyle.Width = vg.Points(s.Ticks.Width)
	p.X.Tick.Length = vg.Points(s.Ticks.Length)
	p.Y.Tick.Length = vg.Points(s.Ticks.Length)

	p.Legend.TextStyle.Font = s.TextFont(reg, s.Font.LegendSize)
	p.Legend.TextStyle.Handler = h

	if s.Axes.Grid {
		p.Add(plotter.NewGrid())
	}
}
