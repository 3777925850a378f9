// Package figure builds publication figures: styled subplot grids with
// shared legends and multi-format file output.
//
// A figure is created in one shot. Draw and DrawGrid construct the
// subplots, apply the style sheet, invoke the caller's plotting
// callbacks, and resolve the legend geometry. The result is an
// immutable description that Save renders once per requested format:
//
//	fig, err := figure.DrawGrid(cfg, func(ax *figure.Axes, r, c, i int) error {
//	    _, err := ax.Line(fmt.Sprintf("run %d", i), series[i])
//	    return err
//	})
//	if err != nil {
//	    return err
//	}
//	paths, err := fig.Save("out/result", figure.SaveOptions{Formats: []string{"png", "pdf"}})
//
// # Sizing
//
// Width follows the style sheet's column widths unless overridden.
// Height is rows/cols times the per-row base height, matching the
// aspect conventions of two-column journals. A shared legend extends
// the figure instead of squeezing the subplot area.
package figure

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/pplot/pplot/pkg/colorset"
	"github.com/pplot/pplot/pkg/errors"
	"github.com/pplot/pplot/pkg/fonts"
	"github.com/pplot/pplot/pkg/style"
)

// =============================================================================
// Configuration
// =============================================================================

// Config describes one figure build. The zero value is not usable on
// its own: Style must be set. Everything else has working defaults.
type Config struct {
	// Rows and Cols set the subplot grid. Zero means 1.
	Rows, Cols int

	// ColSpan selects the column width from the style sheet: 1 for a
	// single journal column, 2 for a double. Ignored when Width is set.
	ColSpan int

	// Width and Height override the derived figure size.
	Width, Height vg.Length

	// BaseHeight overrides the style sheet's per-row height unit.
	BaseHeight vg.Length

	// ShareX and ShareY unify the axis ranges across all subplots.
	ShareX, ShareY bool

	// Titles are applied to subplots in traversal order, typically
	// "(a)", "(b)", ... annotations.
	Titles []string

	// Legend requests a figure-level legend collected from labeled
	// series.
	Legend *LegendConfig

	// Style is the active sheet. Required.
	Style *style.Style

	// Registry resolves typefaces. Defaults to a fresh registry.
	Registry *fonts.Registry

	// Palette provides the per-subplot color cycle. Defaults to the
	// first built-in color set.
	Palette colorset.Set
}

func (c *Config) validate() error {
	if c.Style == nil {
		return errors.New(errors.ErrCodeInvalidConfig, "figure config needs a style sheet")
	}
	if c.Rows <= 0 {
		c.Rows = 1
	}
	if c.Cols <= 0 {
		c.Cols = 1
	}
	if c.ColSpan <= 0 {
		c.ColSpan = 1
	}
	if c.Registry == nil {
		c.Registry = fonts.NewRegistry(nil)
	}
	if len(c.Palette.Hex) == 0 {
		c.Palette = colorset.Default()
	}
	return nil
}

// DrawFunc populates a single-plot figure.
type DrawFunc func(ax *Axes) error

// CellFunc populates one subplot of a grid. row and col locate the
// cell; idx counts cells in row-major order from zero.
type CellFunc func(ax *Axes, row, col, idx int) error

// =============================================================================
// Figure
// =============================================================================

// Figure is a fully built figure, ready to render and save.
type Figure struct {
	st  *style.Style
	reg *fonts.Registry

	rows, cols    int
	plots         [][]*plot.Plot
	width, height vg.Length // content area, excluding any legend band

	legend  *LegendConfig
	layout  *Layout
	entries []entry
}

// Draw builds a single-plot figure and populates it with fn. A nil fn
// produces an empty styled plot.
func Draw(cfg Config, fn DrawFunc) (*Figure, error) {
	cfg.Rows, cfg.Cols = 1, 1
	var cell CellFunc
	if fn != nil {
		cell = func(ax *Axes, _, _, _ int) error { return fn(ax) }
	}
	return DrawGrid(cfg, cell)
}

// DrawGrid builds a subplot grid and invokes cell once per subplot in
// row-major order. Cell errors abort the build.
func DrawGrid(cfg Config, cell CellFunc) (*Figure, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	f := &Figure{
		st:     cfg.Style,
		reg:    cfg.Registry,
		rows:   cfg.Rows,
		cols:   cfg.Cols,
		legend: cfg.Legend,
	}

	f.width = cfg.Width
	if f.width <= 0 {
		f.width = f.st.Width(cfg.ColSpan)
	}
	base := cfg.BaseHeight
	if base <= 0 {
		base = f.st.BaseHeight()
	}
	f.height = cfg.Height
	if f.height <= 0 {
		f.height = vg.Length(float64(f.rows)/float64(f.cols)) * base
	}

	f.plots = make([][]*plot.Plot, f.rows)
	idx := 0
	for r := 0; r < f.rows; r++ {
		f.plots[r] = make([]*plot.Plot, f.cols)
		for c := 0; c < f.cols; c++ {
			p := plot.New()
			f.st.Apply(p, f.reg)
			f.plots[r][c] = p

			ax := &Axes{Plot: p, fig: f, next: cfg.Palette.Cycle()}
			if cell != nil {
				if err := cell(ax, r, c, idx); err != nil {
					return nil, errors.Wrap(errors.ErrCodeDrawFailed, err,
						"populate subplot (%d,%d)", r, c)
				}
			}
			if idx < len(cfg.Titles) {
				p.Title.Text = cfg.Titles[idx]
			}
			idx++
		}
	}

	if cfg.ShareX {
		f.shareX()
	}
	if cfg.ShareY {
		f.shareY()
	}
	f.resolveLegend()

	return f, nil
}

// addEntry records a labeled series for the shared legend.
func (f *Figure) addEntry(label string, thumbs ...plot.Thumbnailer) {
	f.entries = append(f.entries, entry{label: label, thumbs: thumbs})
}

// resolveLegend fixes the band geometry once all entries are known.
func (f *Figure) resolveLegend() {
	if f.legend == nil {
		return
	}
	for i, label := range f.legend.Labels {
		if i >= len(f.entries) {
			break
		}
		f.entries[i].label = label
	}
	if len(f.entries) == 0 {
		return
	}
	lay := f.legend.resolve(len(f.entries), f.width, f.height, f.st)
	f.layout = &lay
}

// shareX assigns the union of all x ranges to every subplot. Subplots
// without data adopt the shared range too.
func (f *Figure) shareX() {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, row := range f.plots {
		for _, p := range row {
			lo = math.Min(lo, p.X.Min)
			hi = math.Max(hi, p.X.Max)
		}
	}
	if lo > hi {
		return
	}
	for _, row := range f.plots {
		for _, p := range row {
			p.X.Min, p.X.Max = lo, hi
		}
	}
}

func (f *Figure) shareY() {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, row := range f.plots {
		for _, p := range row {
			lo = math.Min(lo, p.Y.Min)
			hi = math.Max(hi, p.Y.Max)
		}
	}
	if lo > hi {
		return
	}
	for _, row := range f.plots {
		for _, p := range row {
			p.Y.Min, p.Y.Max = lo, hi
		}
	}
}

// =============================================================================
// Geometry and Rendering
// =============================================================================

// Size returns the final physical size. Center-anchored legends add
// their band height; other anchors leave the size untouched.
func (f *Figure) Size() (w, h vg.Length) {
	h = f.height
	if f.layout != nil && f.layout.Reserved() {
		h += f.layout.Band
	}
	return f.width, h
}

// LegendLayout reports the resolved legend geometry, if a legend with
// at least one entry was configured.
func (f *Figure) LegendLayout() (Layout, bool) {
	if f.layout == nil {
		return Layout{}, false
	}
	return *f.layout, true
}

// Entries returns the collected legend labels in registration order.
func (f *Figure) Entries() []string {
	labels := make([]string, len(f.entries))
	for i, e := range f.entries {
		labels[i] = e.label
	}
	return labels
}

// Plot returns the subplot at the given cell for inspection.
func (f *Figure) Plot(row, col int) *plot.Plot {
	return f.plots[row][col]
}

// Render draws the whole figure onto dc: a white background, the
// aligned subplot tiles into the content area, then the legend into
// its band.
func (f *Figure) Render(dc draw.Canvas) {
	dc.SetColor(color.White)
	dc.Fill(dc.Rectangle.Path())

	content, band := f.split(dc)

	fs := f.st.Font.Size
	pad := vg.Points(fs * f.st.Figure.Pad)
	tiles := draw.Tiles{
		Rows:      f.rows,
		Cols:      f.cols,
		PadTop:    pad,
		PadBottom: pad,
		PadLeft:   pad,
		PadRight:  pad,
		PadX:      vg.Points(fs * f.st.Figure.WPad),
		PadY:      vg.Points(fs * f.st.Figure.HPad),
	}

	canvases := plot.Align(f.plots, tiles, content)
	for r := range f.plots {
		for c := range f.plots[r] {
			f.plots[r][c].Draw(canvases[r][c])
		}
	}

	if f.layout != nil {
		f.drawLegend(band, *f.layout)
	}
}

// split carves the legend band out of the canvas. The two center
// anchors reserve a dedicated strip; other anchors keep the full
// canvas for content and overlay the legend on the bottom margin.
func (f *Figure) split(dc draw.Canvas) (content, band draw.Canvas) {
	if f.layout == nil {
		return dc, draw.Canvas{}
	}
	h := dc.Max.Y - dc.Min.Y
	b := f.layout.Band
	if b > h {
		b = h
	}
	switch f.layout.Anchor {
	case AnchorUpperCenter:
		return draw.Crop(dc, 0, 0, 0, -b), draw.Crop(dc, 0, 0, h-b, 0)
	case AnchorLowerCenter:
		return draw.Crop(dc, 0, 0, b, 0), draw.Crop(dc, 0, 0, 0, b-h)
	default:
		return dc, draw.Crop(dc, 0, 0, 0, b-h)
	}
}
