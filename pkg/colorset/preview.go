package colorset

import (
	"image"

	"github.com/fogleman/gg"
)

// SwatchOptions configure RenderSwatches.
type SwatchOptions struct {
	CellWidth  int // Pixels per swatch (default 48)
	CellHeight int // Pixels per swatch row (default 28)
	Pad        int // Outer and inter-cell padding (default 4)
}

// setDefaults fills zero fields with defaults.
func (o *SwatchOptions) setDefaults() {
	if o.CellWidth <= 0 {
		o.CellWidth = 48
	}
	if o.CellHeight <= 0 {
		o.CellHeight = 28
	}
	if o.Pad < 0 {
		o.Pad = 0
	} else if o.Pad == 0 {
		o.Pad = 4
	}
}

// RenderSwatches draws one row of color swatches per set and returns the
// image. Rows appear in the given order; set names are not drawn, callers
// print them alongside.
func RenderSwatches(sets []Set, opts SwatchOptions) image.Image {
	opts.setDefaults()

	cols := 0
	for _, s := range sets {
		if len(s.Hex) > cols {
			cols = len(s.Hex)
		}
	}
	if cols == 0 || len(sets) == 0 {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}

	width := opts.Pad + cols*(opts.CellWidth+opts.Pad)
	height := opts.Pad + len(sets)*(opts.CellHeight+opts.Pad)

	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	for row, s := range sets {
		y := float64(opts.Pad + row*(opts.CellHeight+opts.Pad))
		for i, c := range s.Colors() {
			x := float64(opts.Pad + i*(opts.CellWidth+opts.Pad))
			dc.SetColor(c)
			dc.DrawRectangle(x, y, float64(opts.CellWidth), float64(opts.CellHeight))
			dc.Fill()
		}
	}

	return dc.Image()
}
