package figure

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/pplot/pplot/pkg/colorset"
	"github.com/pplot/pplot/pkg/errors"
	"github.com/pplot/pplot/pkg/style"
)

func testConfig() Config {
	return Config{Style: style.Defaults()}
}

func near(a, b vg.Length) bool {
	return math.Abs(float64(a-b)) < 1e-9
}

// points returns n points along y = x².
func points(n int) plotter.XYs {
	pts := make(plotter.XYs, n)
	for i := range pts {
		pts[i].X = float64(i)
		pts[i].Y = float64(i * i)
	}
	return pts
}

// shifted returns n points along y = x starting at x = dx.
func shifted(n int, dx float64) plotter.XYs {
	pts := make(plotter.XYs, n)
	for i := range pts {
		pts[i].X = float64(i) + dx
		pts[i].Y = float64(i)
	}
	return pts
}

func TestDrawSingle(t *testing.T) {
	fig, err := Draw(testConfig(), func(ax *Axes) error {
		_, err := ax.Line("signal", points(10))
		return err
	})
	if err != nil {
		t.Fatalf("Draw() error = %v", err)
	}

	w, h := fig.Size()
	if !near(w, 3.5*vg.Inch) {
		t.Errorf("width = %v, want %v", w, 3.5*vg.Inch)
	}
	if !near(h, 2.5*vg.Inch) {
		t.Errorf("height = %v, want %v", h, 2.5*vg.Inch)
	}
	if fig.Plot(0, 0) == nil {
		t.Error("Plot(0,0) = nil")
	}
}

func TestDrawRequiresStyle(t *testing.T) {
	_, err := Draw(Config{}, nil)
	if err == nil {
		t.Fatal("Draw() with no style did not fail")
	}
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidConfig)
	}
}

func TestDrawGridSizing(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		wantW vg.Length
		wantH vg.Length
	}{
		{
			name:  "single column single cell",
			cfg:   Config{},
			wantW: 3.5 * vg.Inch,
			wantH: 2.5 * vg.Inch,
		},
		{
			name:  "grid height scales rows over cols",
			cfg:   Config{Rows: 2, Cols: 3},
			wantW: 3.5 * vg.Inch,
			wantH: vg.Length(2.0/3.0) * 2.5 * vg.Inch,
		},
		{
			name:  "double column span",
			cfg:   Config{Rows: 2, Cols: 2, ColSpan: 2},
			wantW: 7.16 * vg.Inch,
			wantH: 2.5 * vg.Inch,
		},
		{
			name:  "explicit size wins",
			cfg:   Config{Rows: 2, Cols: 2, Width: 5 * vg.Inch, Height: 4 * vg.Inch},
			wantW: 5 * vg.Inch,
			wantH: 4 * vg.Inch,
		},
		{
			name:  "base height override",
			cfg:   Config{Rows: 3, Cols: 1, BaseHeight: 2 * vg.Inch},
			wantW: 3.5 * vg.Inch,
			wantH: 6 * vg.Inch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.cfg.Style = style.Defaults()
			fig, err := DrawGrid(tt.cfg, nil)
			if err != nil {
				t.Fatalf("DrawGrid() error = %v", err)
			}
			w, h := fig.Size()
			if !near(w, tt.wantW) {
				t.Errorf("width = %v, want %v", w, tt.wantW)
			}
			if !near(h, tt.wantH) {
				t.Errorf("height = %v, want %v", h, tt.wantH)
			}
		})
	}
}

func TestDrawGridTraversal(t *testing.T) {
	type visit struct{ row, col, idx int }
	var got []visit

	cfg := testConfig()
	cfg.Rows, cfg.Cols = 2, 3
	_, err := DrawGrid(cfg, func(_ *Axes, row, col, idx int) error {
		got = append(got, visit{row, col, idx})
		return nil
	})
	if err != nil {
		t.Fatalf("DrawGrid() error = %v", err)
	}

	want := []visit{
		{0, 0, 0}, {0, 1, 1}, {0, 2, 2},
		{1, 0, 3}, {1, 1, 4}, {1, 2, 5},
	}
	if len(got) != len(want) {
		t.Fatalf("visited %d cells, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("visit[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDrawGridTitlesOverrideCell(t *testing.T) {
	cfg := testConfig()
	cfg.Rows, cfg.Cols = 1, 3
	cfg.Titles = []string{"(a)", "(b)"}

	fig, err := DrawGrid(cfg, func(ax *Axes, _, _, _ int) error {
		ax.Title.Text = "from cell"
		return nil
	})
	if err != nil {
		t.Fatalf("DrawGrid() error = %v", err)
	}

	if got := fig.Plot(0, 0).Title.Text; got != "(a)" {
		t.Errorf("title[0] = %q, want %q", got, "(a)")
	}
	if got := fig.Plot(0, 1).Title.Text; got != "(b)" {
		t.Errorf("title[1] = %q, want %q", got, "(b)")
	}
	// No configured title for the third cell, so its own survives.
	if got := fig.Plot(0, 2).Title.Text; got != "from cell" {
		t.Errorf("title[2] = %q, want %q", got, "from cell")
	}
}

func TestDrawGridCellError(t *testing.T) {
	cfg := testConfig()
	cfg.Rows, cfg.Cols = 2, 2

	fig, err := DrawGrid(cfg, func(_ *Axes, row, col, _ int) error {
		if row == 1 && col == 0 {
			return fmt.Errorf("pen snapped")
		}
		return nil
	})
	if err == nil {
		t.Fatal("DrawGrid() with failing cell did not fail")
	}
	if fig != nil {
		t.Error("DrawGrid() returned a figure alongside the error")
	}
	if !errors.Is(err, errors.ErrCodeDrawFailed) {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeDrawFailed)
	}
	if !strings.Contains(err.Error(), "(1,0)") {
		t.Errorf("error %q does not name the failing cell", err)
	}
}

func TestDrawGridShareX(t *testing.T) {
	build := func(share bool) *Figure {
		cfg := testConfig()
		cfg.Rows, cfg.Cols = 1, 2
		cfg.ShareX = share
		fig, err := DrawGrid(cfg, func(ax *Axes, _, col, _ int) error {
			_, err := ax.Line("", shifted(10, float64(col)*5))
			return err
		})
		if err != nil {
			t.Fatalf("DrawGrid() error = %v", err)
		}
		return fig
	}

	shared := build(true)
	for col := 0; col < 2; col++ {
		p := shared.Plot(0, col)
		if p.X.Min != 0 || p.X.Max != 14 {
			t.Errorf("shared x range[%d] = [%v, %v], want [0, 14]", col, p.X.Min, p.X.Max)
		}
	}

	solo := build(false)
	if got := solo.Plot(0, 0).X.Max; got != 9 {
		t.Errorf("unshared x max = %v, want 9", got)
	}
}

func TestDrawGridShareY(t *testing.T) {
	cfg := testConfig()
	cfg.Rows, cfg.Cols = 2, 1
	cfg.ShareY = true

	fig, err := DrawGrid(cfg, func(ax *Axes, row, _, _ int) error {
		_, err := ax.Line("", shifted(10, float64(row)*100))
		return err
	})
	if err != nil {
		t.Fatalf("DrawGrid() error = %v", err)
	}

	for row := 0; row < 2; row++ {
		p := fig.Plot(row, 0)
		if p.Y.Min != 0 || p.Y.Max != 9 {
			t.Errorf("shared y range[%d] = [%v, %v], want [0, 9]", row, p.Y.Min, p.Y.Max)
		}
	}
}

func TestLegendCollectsLabeledSeries(t *testing.T) {
	cfg := testConfig()
	cfg.Rows, cfg.Cols = 1, 2
	cfg.Legend = &LegendConfig{}

	fig, err := DrawGrid(cfg, func(ax *Axes, _, col, _ int) error {
		if col == 0 {
			for _, label := range []string{"a", "b", "c"} {
				if _, err := ax.Line(label, points(3)); err != nil {
					return err
				}
			}
			return nil
		}
		// Hidden labels stay out of the legend.
		if _, err := ax.Line("_nolegend_", points(3)); err != nil {
			return err
		}
		_, err := ax.Line("", points(3))
		return err
	})
	if err != nil {
		t.Fatalf("DrawGrid() error = %v", err)
	}

	if got := fig.Entries(); len(got) != 3 {
		t.Fatalf("Entries() = %v, want 3 labels", got)
	}

	lay, ok := fig.LegendLayout()
	if !ok {
		t.Fatal("LegendLayout() ok = false, want true")
	}
	if lay.Cols != 4 || lay.Rows != 1 {
		t.Errorf("layout = %d cols x %d rows, want 4 x 1", lay.Cols, lay.Rows)
	}
	if !near(lay.Band, 0.15*vg.Inch) {
		t.Errorf("Band = %v, want %v", lay.Band, 0.15*vg.Inch)
	}

	// The band stacks under the 1x2 grid's content height.
	_, h := fig.Size()
	if want := vg.Length(1.25+0.15) * vg.Inch; !near(h, want) {
		t.Errorf("height with band = %v, want %v", h, want)
	}
}

func TestLegendWithoutEntries(t *testing.T) {
	cfg := testConfig()
	cfg.Legend = &LegendConfig{}

	fig, err := Draw(cfg, func(ax *Axes) error {
		_, err := ax.Line("", points(3))
		return err
	})
	if err != nil {
		t.Fatalf("Draw() error = %v", err)
	}

	if _, ok := fig.LegendLayout(); ok {
		t.Error("LegendLayout() ok = true for a legend with no entries")
	}
	if _, h := fig.Size(); !near(h, 2.5*vg.Inch) {
		t.Errorf("height = %v, want %v (no band)", h, 2.5*vg.Inch)
	}
}

func TestLegendLabelOverrides(t *testing.T) {
	cfg := testConfig()
	cfg.Legend = &LegendConfig{Labels: []string{"alpha", "beta"}}

	fig, err := Draw(cfg, func(ax *Axes) error {
		for _, label := range []string{"a", "b", "c"} {
			if _, err := ax.Line(label, points(3)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Draw() error = %v", err)
	}

	got := fig.Entries()
	want := []string{"alpha", "beta", "c"}
	if len(got) != len(want) {
		t.Fatalf("Entries() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Entries()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestColorCycleRestartsPerCell(t *testing.T) {
	cfg := testConfig()
	cfg.Rows, cfg.Cols = 1, 2

	var lines []*plotter.Line
	_, err := DrawGrid(cfg, func(ax *Axes, _, _, _ int) error {
		ln, err := ax.Line("", points(3))
		lines = append(lines, ln)
		return err
	})
	if err != nil {
		t.Fatalf("DrawGrid() error = %v", err)
	}

	first := colorset.Default().At(0)
	for i, ln := range lines {
		if ln.LineStyle.Color != first {
			t.Errorf("line[%d] color = %v, want cycle start %v", i, ln.LineStyle.Color, first)
		}
	}
}

func TestRender(t *testing.T) {
	anchors := []Anchor{AnchorLowerCenter, AnchorUpperCenter, AnchorLowerRight}
	for _, anchor := range anchors {
		t.Run(string(anchor), func(t *testing.T) {
			cfg := testConfig()
			cfg.Legend = &LegendConfig{Anchor: anchor, Frame: true}

			fig, err := Draw(cfg, func(ax *Axes) error {
				if _, err := ax.Line("sin", points(8)); err != nil {
					return err
				}
				_, err := ax.Scatter("samples", points(5))
				return err
			})
			if err != nil {
				t.Fatalf("Draw() error = %v", err)
			}

			w, h := fig.Size()
			c := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(96))
			fig.Render(draw.New(c))

			// A rendered figure is mostly white page with some ink.
			img := c.Image()
			bounds := img.Bounds()
			white, total := 0, 0
			for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
				for x := bounds.Min.X; x < bounds.Max.X; x++ {
					r, g, b, _ := img.At(x, y).RGBA()
					if r == 0xffff && g == 0xffff && b == 0xffff {
						white++
					}
					total++
				}
			}
			if white == total {
				t.Error("render produced a blank page")
			}
			if white < total/2 {
				t.Errorf("white pixels = %d of %d, want a mostly white page", white, total)
			}
		})
	}
}
