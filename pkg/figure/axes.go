package figure

import (
	"image/color"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"

	"github.com/pplot/pplot/pkg/errors"
)

// Axes wraps one subplot. The embedded plot gives direct access to
// titles, axis labels, and ticks; the helper methods add series with
// the figure's line weights and the next palette color, and register
// labeled series for the shared legend.
//
// Labels that are empty or start with "_" are plotted but kept out of
// the legend.
type Axes struct {
	*plot.Plot

	fig  *Figure
	next func() color.Color
}

// nextColor advances this subplot's palette cycle. Each subplot
// restarts the cycle so matching series get matching colors across
// cells.
func (a *Axes) nextColor() color.Color {
	return a.next()
}

// register adds a labeled series to the figure-level legend.
func (a *Axes) register(label string, thumbs ...plot.Thumbnailer) {
	if label == "" || strings.HasPrefix(label, "_") {
		return
	}
	a.fig.addEntry(label, thumbs...)
}

// Line plots pts as a line in the next palette color.
func (a *Axes) Line(label string, pts plotter.XYs) (*plotter.Line, error) {
	ln, err := plotter.NewLine(pts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDrawFailed, err, "build line %q", label)
	}
	ln.LineStyle.Width = a.fig.st.LineWidth()
	ln.LineStyle.Color = a.nextColor()
	a.Add(ln)
	a.register(label, ln)
	return ln, nil
}

// Scatter plots pts as circular markers in the next palette color.
func (a *Axes) Scatter(label string, pts plotter.XYs) (*plotter.Scatter, error) {
	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDrawFailed, err, "build scatter %q", label)
	}
	sc.GlyphStyle.Radius = a.fig.st.MarkerRadius()
	sc.GlyphStyle.Color = a.nextColor()
	sc.GlyphStyle.Shape = draw.CircleGlyph{}
	a.Add(sc)
	a.register(label, sc)
	return sc, nil
}

// LinePoints plots pts as a line with markers, both in the same
// palette color.
func (a *Axes) LinePoints(label string, pts plotter.XYs) (*plotter.Line, *plotter.Scatter, error) {
	ln, sc, err := plotter.NewLinePoints(pts)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeDrawFailed, err, "build line points %q", label)
	}
	c := a.nextColor()
	ln.LineStyle.Width = a.fig.st.LineWidth()
	ln.LineStyle.Color = c
	sc.GlyphStyle.Radius = a.fig.st.MarkerRadius()
	sc.GlyphStyle.Color = c
	sc.GlyphStyle.Shape = draw.CircleGlyph{}
	a.Add(ln, sc)
	a.register(label, ln, sc)
	return ln, sc, nil
}

// Function plots fn over the visible x range in the next palette color.
func (a *Axes) Function(label string, fn func(float64) float64) *plotter.Function {
	pf := plotter.NewFunction(fn)
	pf.LineStyle.Width = a.fig.st.LineWidth()
	pf.LineStyle.Color = a.nextColor()
	a.Add(pf)
	a.register(label, pf)
	return pf
}
