// Package media assembles rendered frames into animations and writes
// standalone images. Frames come from figure rendering (vgimg canvases
// expose their image.Image) or from any other source; the encoder
// normalizes sizes so mixed inputs still produce a valid file.
package media

import (
	"image"
	"image/color/palette"
	"image/gif"
	"io"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"

	"github.com/pplot/pplot/pkg/errors"
)

// DefaultFPS is the frame rate used when the caller passes fps <= 0.
const DefaultFPS = 60

// EncodeGIF writes frames as an animated GIF. All frames are resized to
// the first frame's dimensions, then quantized to the Plan9 palette with
// Floyd-Steinberg dithering. The per-frame delay is derived from fps in
// GIF's centisecond units, with a floor of 2 (browsers treat shorter
// delays as 10cs).
func EncodeGIF(w io.Writer, frames []image.Image, fps int) error {
	if len(frames) == 0 {
		return errors.New(errors.ErrCodeNoFrames, "no frames to encode")
	}
	if fps <= 0 {
		fps = DefaultFPS
	}
	delay := int(math.Round(100 / float64(fps)))
	if delay < 2 {
		delay = 2
	}

	bounds := frames[0].Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	anim := gif.GIF{LoopCount: 0}
	for _, frame := range frames {
		if frame.Bounds().Dx() != width || frame.Bounds().Dy() != height {
			frame = imaging.Resize(frame, width, height, imaging.Lanczos)
		}
		pal := image.NewPaletted(image.Rect(0, 0, width, height), palette.Plan9)
		draw.FloydSteinberg.Draw(pal, pal.Bounds(), frame, frame.Bounds().Min)
		anim.Image = append(anim.Image, pal)
		anim.Delay = append(anim.Delay, delay)
	}

	if err := gif.EncodeAll(w, &anim); err != nil {
		return errors.Wrap(errors.ErrCodeSaveFailed, err, "encode gif")
	}
	return nil
}

// Animate encodes frames to an animated GIF file and returns the path
// written. An empty path derives animation_<timestamp>.gif in the
// working directory; a path without an extension gets .gif appended.
// Parent directories are created as needed.
func Animate(path string, frames []image.Image, fps int) (string, error) {
	if len(frames) == 0 {
		return "", errors.New(errors.ErrCodeNoFrames, "no frames to animate")
	}
	if path == "" {
		path = "animation_" + time.Now().Format("20060102_150405") + ".gif"
	}
	if filepath.Ext(path) == "" {
		path += ".gif"
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", errors.Wrap(errors.ErrCodeSaveFailed, err, "create output directory %s", dir)
		}
	}

	out, err := os.Create(path)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeSaveFailed, err, "create %s", path)
	}
	if err := EncodeGIF(out, frames, fps); err != nil {
		out.Close()
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", errors.Wrap(errors.ErrCodeSaveFailed, err, "close %s", path)
	}
	return path, nil
}

// SaveImage writes a single image to path, picking the encoder from the
// file extension. Parent directories are created as needed.
func SaveImage(img image.Image, path string) error {
	if img == nil {
		return errors.New(errors.ErrCodeInvalidConfig, "nil image")
	}
	if path == "" {
		return errors.New(errors.ErrCodeInvalidPath, "output path is empty")
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeSaveFailed, err, "create output directory %s", dir)
		}
	}
	if err := imaging.Save(img, path); err != nil {
		if err == imaging.ErrUnsupportedFormat {
			return errors.Wrap(errors.ErrCodeUnknownFormat, err, "save %s", path)
		}
		return errors.Wrap(errors.ErrCodeSaveFailed, err, "save %s", path)
	}
	return nil
}
