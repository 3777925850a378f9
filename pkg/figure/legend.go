package figure

import (
	"image/color"
	"math"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/pplot/pplot/pkg/errors"
	"github.com/pplot/pplot/pkg/style"
)

// =============================================================================
// Anchors
// =============================================================================

// Anchor positions the shared legend relative to the figure. The two
// center anchors reserve a dedicated band and shrink the subplot area
// to make room; the remaining anchors draw over the subplot margin.
type Anchor string

const (
	AnchorLowerCenter Anchor = "lower center"
	AnchorUpperCenter Anchor = "upper center"
	AnchorLowerLeft   Anchor = "lower left"
	AnchorLowerRight  Anchor = "lower right"
	AnchorUpperLeft   Anchor = "upper left"
	AnchorUpperRight  Anchor = "upper right"
	AnchorCenter      Anchor = "center"
)

// DefaultAnchor is used when a legend config does not set one.
const DefaultAnchor = AnchorLowerCenter

// ValidAnchors is the set of recognized anchor names.
var ValidAnchors = map[Anchor]bool{
	AnchorLowerCenter: true,
	AnchorUpperCenter: true,
	AnchorLowerLeft:   true,
	AnchorLowerRight:  true,
	AnchorUpperLeft:   true,
	AnchorUpperRight:  true,
	AnchorCenter:      true,
}

// ParseAnchor normalizes and validates an anchor name. Empty input
// returns the default.
func ParseAnchor(s string) (Anchor, error) {
	if strings.TrimSpace(s) == "" {
		return DefaultAnchor, nil
	}
	a := Anchor(strings.ToLower(strings.TrimSpace(s)))
	if !ValidAnchors[a] {
		return "", errors.New(errors.ErrCodeInvalidConfig,
			"unknown legend anchor %q (supported: %s)", s, strings.Join(anchorNames(), ", "))
	}
	return a, nil
}

func anchorNames() []string {
	return []string{
		string(AnchorLowerCenter), string(AnchorUpperCenter),
		string(AnchorLowerLeft), string(AnchorLowerRight),
		string(AnchorUpperLeft), string(AnchorUpperRight),
		string(AnchorCenter),
	}
}

// =============================================================================
// Configuration and Layout
// =============================================================================

// LegendConfig requests a figure-level legend built from the labeled
// series of every subplot.
type LegendConfig struct {
	// Labels relabels the collected entries in order. Extra labels are
	// dropped; extra entries keep their own labels.
	Labels []string

	// Anchor places the legend. Zero value means lower center.
	Anchor Anchor

	// Cols fixes the column count. Zero derives it from the figure
	// width and the entry cell width.
	Cols int

	// EntryWidth and RowHeight are the legend cell dimensions in
	// inches. Zero values take the style sheet's legend settings.
	EntryWidth float64
	RowHeight  float64

	// Frame draws a box around the legend block.
	Frame bool
}

// Layout is the resolved geometry of a legend band. The band is extra
// figure height appended below (or above) the subplot area, so adding
// a legend never squeezes the plots themselves.
type Layout struct {
	Entries    int
	Cols       int
	Rows       int
	EntryWidth vg.Length
	RowHeight  vg.Length
	Band       vg.Length // band height, Rows * RowHeight
	Ratio      float64   // Band / (content height + Band)
	Anchor     Anchor
	Frame      bool
}

// Reserved reports whether the anchor claims a dedicated band. Only
// the two center anchors grow the figure; the rest draw over the
// subplot margin.
func (l Layout) Reserved() bool {
	return l.Anchor == AnchorLowerCenter || l.Anchor == AnchorUpperCenter
}

// resolve computes the band geometry for n entries on a content area
// of the given width and height.
//
// The column count defaults to one cell per EntryWidth of figure
// width, clamped to at least one column. Rows follow from the entry
// count, and the band grows one RowHeight per row.
func (c *LegendConfig) resolve(n int, width, height vg.Length, st *style.Style) Layout {
	entryW := c.EntryWidth
	if entryW <= 0 {
		entryW = st.Legend.EntryWidth
	}
	rowH := c.RowHeight
	if rowH <= 0 {
		rowH = st.Legend.RowHeight
	}

	cols := c.Cols
	if cols <= 0 {
		cols = int(math.Round(float64(width/vg.Inch) / entryW))
		if cols < 1 {
			cols = 1
		}
	}
	rows := (n + cols - 1) / cols

	anchor := c.Anchor
	if anchor == "" {
		anchor = DefaultAnchor
	}

	band := vg.Length(rows) * vg.Length(rowH) * vg.Inch
	return Layout{
		Entries:    n,
		Cols:       cols,
		Rows:       rows,
		EntryWidth: vg.Length(entryW) * vg.Inch,
		RowHeight:  vg.Length(rowH) * vg.Inch,
		Band:       band,
		Ratio:      float64(band / (height + band)),
		Anchor:     anchor,
		Frame:      c.Frame,
	}
}

// =============================================================================
// Rendering
// =============================================================================

// entry is one legend row: a label plus the thumbnails drawn next to it.
type entry struct {
	label  string
	thumbs []plot.Thumbnailer
}

// drawLegend renders the entries into the band canvas, filling
// column-major: entries run down the first column before spilling into
// the next. The block of columns is centered horizontally.
func (f *Figure) drawLegend(band draw.Canvas, lay Layout) {
	bandW := band.Max.X - band.Min.X
	blockW := vg.Length(lay.Cols) * lay.EntryWidth
	x0 := (bandW - blockW) / 2
	if x0 < 0 {
		x0 = 0
	}

	for col := 0; col < lay.Cols; col++ {
		lo := col * lay.Rows
		if lo >= len(f.entries) {
			break
		}
		hi := lo + lay.Rows
		if hi > len(f.entries) {
			hi = len(f.entries)
		}

		leg := plot.NewLegend()
		leg.TextStyle.Font = f.st.TextFont(f.reg, f.st.Font.LegendSize)
		leg.TextStyle.Handler = style.Handler(f.reg)
		leg.Top = true
		leg.Left = true
		for _, e := range f.entries[lo:hi] {
			leg.Add(e.label, e.thumbs...)
		}

		start := x0 + vg.Length(col)*lay.EntryWidth
		end := start + lay.EntryWidth
		cell := draw.Crop(band, start, end-bandW, 0, 0)
		leg.Draw(cell)
	}

	if lay.Frame {
		f.strokeFrame(band, x0, blockW)
	}
}

// strokeFrame boxes the legend block with the sheet's axes line weight.
func (f *Figure) strokeFrame(band draw.Canvas, x0, blockW vg.Length) {
	sty := draw.LineStyle{
		Color: color.Black,
		Width: vg.Points(f.st.Axes.LineWidth),
	}
	min := vg.Point{X: band.Min.X + x0, Y: band.Min.Y}
	max := vg.Point{X: band.Min.X + x0 + blockW, Y: band.Max.Y}
	band.StrokeLines(sty, []vg.Point{
		{X: min.X, Y: min.Y},
		{X: max.X, Y: min.Y},
		{X: max.X, Y: max.Y},
		{X: min.X, Y: max.Y},
		{X: min.X, Y: min.Y},
	})
}
