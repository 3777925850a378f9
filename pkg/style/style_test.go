package style

import (
	"testing"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/vg"

	"github.com/pplot/pplot/pkg/fonts"
)

func TestSetDefaults(t *testing.T) {
	var s Style
	s.setDefaults()

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"width single", s.Figure.WidthSingle, 3.5},
		{"width double", s.Figure.WidthDouble, 7.16},
		{"base height", s.Figure.BaseHeight, 2.5},
		{"dpi", s.Figure.DPI, 600},
		{"pad", s.Figure.Pad, 0.1},
		{"w pad", s.Figure.WPad, 0.5},
		{"h pad", s.Figure.HPad, 0.5},
		{"font size", s.Font.Size, 8},
		{"title size", s.Font.TitleSize, 8},
		{"tick size", s.Font.TickSize, 7},
		{"legend size", s.Font.LegendSize, 7},
		{"line width", s.Lines.Width, 1.0},
		{"marker size", s.Lines.MarkerSize, 2.0},
		{"axes line width", s.Axes.LineWidth, 0.5},
		{"legend entry width", s.Legend.EntryWidth, 0.875},
		{"legend row height", s.Legend.RowHeight, 0.15},
		{"tick length", s.Ticks.Length, 2.5},
		{"tick width tracks axes", s.Ticks.Width, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}

	if s.Font.Family != "serif" {
		t.Errorf("Family = %q, want serif", s.Font.Family)
	}
}

func TestSetDefaultsKeepsExplicitValues(t *testing.T) {
	var s Style
	s.Font.Size = 10
	s.Figure.WidthSingle = 3.0
	s.setDefaults()

	if s.Figure.WidthSingle != 3.0 {
		t.Errorf("WidthSingle = %v, want 3.0", s.Figure.WidthSingle)
	}
	if s.Font.TickSize != 9 {
		t.Errorf("TickSize = %v, want 9 (size-1)", s.Font.TickSize)
	}
	if s.Font.TitleSize != 10 {
		t.Errorf("TitleSize = %v, want 10", s.Font.TitleSize)
	}
}

func TestWidth(t *testing.T) {
	var s Style
	s.setDefaults()

	tests := []struct {
		name string
		span int
		want vg.Length
	}{
		{"single column", 1, 3.5 * vg.Inch},
		{"double column", 2, 7.16 * vg.Inch},
		{"zero span falls back to single", 0, 3.5 * vg.Inch},
		{"wide span clamps to double", 3, 7.16 * vg.Inch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Width(tt.span); got != tt.want {
				t.Errorf("Width(%d) = %v, want %v", tt.span, got, tt.want)
			}
		})
	}

	if got := s.BaseHeight(); got != 2.5*vg.Inch {
		t.Errorf("BaseHeight() = %v, want %v", got, 2.5*vg.Inch)
	}
}

func TestTextFont(t *testing.T) {
	reg := fonts.NewRegistry(nil)

	var s Style
	s.setDefaults()
	f := s.TextFont(reg, 8)
	if f.Typeface != fonts.DefaultTypeface {
		t.Errorf("Typeface = %q, want %q", f.Typeface, fonts.DefaultTypeface)
	}
	if f.Variant != font.Variant("Serif") {
		t.Errorf("Variant = %q, want Serif", f.Variant)
	}
	if f.Size != vg.Points(8) {
		t.Errorf("Size = %v, want %v", f.Size, vg.Points(8))
	}

	s.Font.Family = "sans"
	if got := s.TextFont(reg, 8).Variant; got != font.Variant("Sans") {
		t.Errorf("Variant = %q, want Sans", got)
	}
}

func TestApply(t *testing.T) {
	reg := fonts.NewRegistry(nil)
	var s Style
	s.setDefaults()

	p := plot.New()
	s.Apply(p, reg)

	if got := p.Title.TextStyle.Font.Size; got != vg.Points(8) {
		t.Errorf("title font size = %v, want %v", got, vg.Points(8))
	}
	if got := p.X.Tick.Label.Font.Size; got != vg.Points(7) {
		t.Errorf("tick font size = %v, want %v", got, vg.Points(7))
	}
	if got := p.Legend.TextStyle.Font.Size; got != vg.Points(7) {
		t.Errorf("legend font size = %v, want %v", got, vg.Points(7))
	}
	if got := p.Title.TextStyle.Font.Typeface; got != fonts.DefaultTypeface {
		t.Errorf("title typeface = %q, want %q", got, fonts.DefaultTypeface)
	}
	if got := p.X.Tick.Length; got != vg.Points(2.5) {
		t.Errorf("tick length = %v, want %v", got, vg.Points(2.5))
	}
	if got := p.X.LineStyle.Width; got != vg.Points(0.5) {
		t.Errorf("axis line width = %v, want %v", got, vg.Points(0.5))
	}
	if p.Title.TextStyle.Handler == nil {
		t.Error("title text handler was not installed")
	}
}
