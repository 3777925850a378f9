package figure

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgeps"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/pplot/pplot/pkg/errors"
	"github.com/pplot/pplot/pkg/observability"
)

// =============================================================================
// Formats
// =============================================================================

// Format is an output encoding for saved figures.
type Format string

const (
	FormatPNG Format = "png"
	FormatPDF Format = "pdf"
	FormatSVG Format = "svg"
	FormatEPS Format = "eps"
	FormatJPG Format = "jpg"
	FormatTIF Format = "tif"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[Format]bool{
	FormatPNG: true,
	FormatPDF: true,
	FormatSVG: true,
	FormatEPS: true,
	FormatJPG: true,
	FormatTIF: true,
}

// FormatNames returns the supported format names, sorted.
func FormatNames() []string {
	names := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		names = append(names, string(f))
	}
	sort.Strings(names)
	return names
}

// ParseFormat normalizes a format token. Leading dots are stripped and
// the common long spellings (jpeg, tiff) map to their short forms.
func ParseFormat(s string) (Format, error) {
	if err := errors.ValidateFormatName(s); err != nil {
		return "", err
	}
	n := strings.ToLower(strings.TrimLeft(strings.TrimSpace(s), "."))
	switch n {
	case "jpeg":
		n = "jpg"
	case "tiff":
		n = "tif"
	}
	f := Format(n)
	if !ValidFormats[f] {
		return "", errors.New(errors.ErrCodeUnknownFormat,
			"unsupported format %q (supported: %s)", s, strings.Join(FormatNames(), ", "))
	}
	return f, nil
}

// =============================================================================
// Saving
// =============================================================================

// SaveOptions control how a figure is written to disk.
type SaveOptions struct {
	// Formats lists the encodings to produce. Each replaces the path's
	// extension. When empty, the path's own extension selects the
	// single output format.
	Formats []string

	// DPI overrides the style sheet's raster resolution.
	DPI float64
}

// Save writes the figure, one file per requested format, and returns
// the written paths in order. With explicit formats the path's
// extension is stripped first, so "out/fig.png" with formats png and
// pdf produces out/fig.png and out/fig.pdf. Without formats the path
// must carry an extension.
//
// On error the returned slice holds the files written so far.
func (f *Figure) Save(path string, opts SaveOptions) ([]string, error) {
	if err := errors.ValidateOutputPath(path); err != nil {
		return nil, err
	}

	dpi := opts.DPI
	if dpi <= 0 {
		dpi = f.st.Figure.DPI
	}

	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)

	type target struct {
		path   string
		format Format
	}
	var targets []target

	if len(opts.Formats) == 0 {
		if ext == "" {
			return nil, errors.New(errors.ErrCodeMissingExtension,
				"no formats given and path %q has no extension", path)
		}
		format, err := ParseFormat(ext)
		if err != nil {
			return nil, err
		}
		targets = append(targets, target{path: path, format: format})
	} else {
		for _, raw := range opts.Formats {
			format, err := ParseFormat(raw)
			if err != nil {
				return nil, err
			}
			// The written extension keeps the caller's spelling, only
			// dots and surrounding space are stripped.
			token := strings.TrimLeft(strings.TrimSpace(raw), ".")
			targets = append(targets, target{path: base + "." + token, format: format})
		}
	}

	formats := make([]string, len(targets))
	for i, t := range targets {
		formats[i] = string(t.format)
	}
	ctx := context.Background()
	start := time.Now()
	observability.Render().OnRenderStart(ctx, formats)

	written := make([]string, 0, len(targets))
	for _, t := range targets {
		if err := f.write(t.format, t.path, dpi); err != nil {
			observability.Render().OnRenderComplete(ctx, formats, time.Since(start), err)
			return written, err
		}
		written = append(written, t.path)
	}
	observability.Render().OnRenderComplete(ctx, formats, time.Since(start), nil)
	return written, nil
}

// write renders the figure in one format and writes it to path,
// creating parent directories as needed.
func (f *Figure) write(format Format, path string, dpi float64) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeSaveFailed, err, "create output directory %s", dir)
		}
	}

	wt, err := f.renderTo(format, dpi)
	if err != nil {
		return err
	}

	out, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeSaveFailed, err, "create %s", path)
	}
	if _, err := wt.WriteTo(out); err != nil {
		out.Close()
		return errors.Wrap(errors.ErrCodeSaveFailed, err, "write %s", path)
	}
	if err := out.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeSaveFailed, err, "close %s", path)
	}
	return nil
}

// renderTo draws the figure onto a fresh canvas for the format.
func (f *Figure) renderTo(format Format, dpi float64) (io.WriterTo, error) {
	w, h := f.Size()
	switch format {
	case FormatPNG, FormatJPG, FormatTIF:
		c := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(int(dpi)))
		f.Render(draw.New(c))
		switch format {
		case FormatPNG:
			return vgimg.PngCanvas{Canvas: c}, nil
		case FormatJPG:
			return vgimg.JpegCanvas{Canvas: c}, nil
		default:
			return vgimg.TiffCanvas{Canvas: c}, nil
		}
	case FormatPDF:
		c := vgpdf.New(w, h)
		c.EmbedFonts(true)
		f.Render(draw.New(c))
		return c, nil
	case FormatSVG:
		c := vgsvg.New(w, h)
		f.Render(draw.New(c))
		return c, nil
	case FormatEPS:
		c := vgeps.New(w, h)
		f.Render(draw.New(c))
		return c, nil
	}
	return nil, errors.New(errors.ErrCodeUnknownFormat, "unsupported format %q", format)
}
