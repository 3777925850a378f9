package colorset

import (
	"image/color"
	"testing"
)

func TestRenderSwatchesSize(t *testing.T) {
	s1, _ := Get("Okabe-Ito")
	s2, _ := Get("Grayscale-Safe")

	img := RenderSwatches([]Set{s1, s2}, SwatchOptions{CellWidth: 10, CellHeight: 6, Pad: 2})

	bounds := img.Bounds()
	wantW := 2 + 8*(10+2) // pad + cols*(cell+pad)
	wantH := 2 + 2*(6+2)  // pad + rows*(cell+pad)
	if bounds.Dx() != wantW || bounds.Dy() != wantH {
		t.Errorf("bounds = %dx%d, want %dx%d", bounds.Dx(), bounds.Dy(), wantW, wantH)
	}
}

func TestRenderSwatchesPaintsColors(t *testing.T) {
	s, _ := Get("Grayscale-Safe")
	img := RenderSwatches([]Set{s}, SwatchOptions{CellWidth: 10, CellHeight: 10, Pad: 2})

	// Center of the first swatch must be the first cycle color (black).
	r, g, b, _ := img.At(7, 7).RGBA()
	if r != 0 || g != 0 || b != 0 {
		t.Errorf("first swatch center = (%d,%d,%d), want black", r>>8, g>>8, b>>8)
	}

	// Background stays white.
	bg := img.At(0, 0)
	wr, wg, wb, _ := bg.RGBA()
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	xr, xg, xb, _ := white.RGBA()
	if wr != xr || wg != xg || wb != xb {
		t.Errorf("background = %v, want white", bg)
	}
}

func TestRenderSwatchesEmpty(t *testing.T) {
	img := RenderSwatches(nil, SwatchOptions{})
	if img == nil {
		t.Fatal("RenderSwatches(nil) = nil, want placeholder image")
	}
}
