package cli

import (
	"context"
	"fmt"
	"image"
	"path/filepath"
	"sort"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"github.com/pplot/pplot/pkg/media"
)

// animateCommand creates the animate command.
func (c *CLI) animateCommand() *cobra.Command {
	var (
		fps     int
		out     string
		pattern string
	)

	cmd := &cobra.Command{
		Use:   "animate DIR",
		Short: "Encode a directory of frames into an animated GIF",
		Long: `Encode still frames into an animated GIF.

Frames are matched by --pattern inside DIR and encoded in lexical
order, so zero-padded frame numbers (frame_001.png, frame_002.png, ...)
play back in sequence. Every frame is resized to the first frame's
dimensions before quantization.`,
		Example: `  pplot animate ./frames

  # 30 fps with an explicit output path
  pplot animate ./frames --fps 30 -o demo.gif

  # Frames saved by the session as JPEGs
  pplot animate ./frames --pattern "*.jpg"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAnimate(cmd.Context(), args[0], pattern, out, fps)
		},
	}

	cmd.Flags().IntVar(&fps, "fps", media.DefaultFPS, "playback frame rate")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output path (default animation_<timestamp>.gif)")
	cmd.Flags().StringVar(&pattern, "pattern", "*.png", "frame filename glob")

	return cmd
}

func (c *CLI) runAnimate(ctx context.Context, dir, pattern, out string, fps int) error {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return fmt.Errorf("bad pattern %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("no frames matching %q in %s", pattern, dir)
	}
	sort.Strings(matches)

	p := newProgress(loggerFromContext(ctx))
	sp := newSpinnerWithContext(ctx, fmt.Sprintf("Encoding %d frames...", len(matches)))
	sp.Start()

	frames := make([]image.Image, 0, len(matches))
	for _, m := range matches {
		if err := ctx.Err(); err != nil {
			sp.Stop()
			return err
		}
		img, err := imaging.Open(m)
		if err != nil {
			sp.StopWithError(fmt.Sprintf("Failed to read %s", m))
			return fmt.Errorf("read frame %s: %w", m, err)
		}
		frames = append(frames, img)
	}

	path, err := media.Animate(out, frames, fps)
	if err != nil {
		sp.StopWithError("Encoding failed")
		return err
	}
	sp.StopWithSuccess(fmt.Sprintf("Encoded %d frames at %d fps", len(frames), fps))
	printFile(path)
	p.done(fmt.Sprintf("Animated %d frames", len(frames)))
	return nil
}
