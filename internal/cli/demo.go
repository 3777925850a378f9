package cli

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot/plotter"

	"github.com/pplot/pplot/pkg/figure"
	"github.com/pplot/pplot/pkg/observability"
	"github.com/pplot/pplot/pkg/pipeline"
	"github.com/pplot/pplot/pkg/session"
)

// demoOptions collects the flags shared by the demo subcommands.
type demoOptions struct {
	preset  string
	style   string
	out     string
	formats string
	theme   string
	elapsed bool
}

// demoCommand creates the demo command group.
func (c *CLI) demoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Render example figures through a full session",
		Long: `Render ready-made example figures.

Each demo walks a complete session: initialize, pick a style, draw,
save, close. The steps run through a pipeline so a failure names the
stage it happened in.`,
	}

	cmd.AddCommand(c.demoQuickstartCommand())
	cmd.AddCommand(c.demoGridCommand())

	return cmd
}

// demoQuickstartCommand creates the "demo quickstart" subcommand.
func (c *CLI) demoQuickstartCommand() *cobra.Command {
	var opts demoOptions

	cmd := &cobra.Command{
		Use:   "quickstart",
		Short: "Render a single example plot",
		Long: `Render a minimal single-plot figure: one labeled line with axis
labels and a title, using the IEEE sheet unless told otherwise.`,
		Example: `  pplot demo quickstart

  # GB sheet, PDF output
  pplot demo quickstart --style GB -o out/quickstart.pdf

  # A preset picks the color cycle too
  pplot demo quickstart --preset ieee-okabe`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDemoQuickstart(cmd.Context(), opts)
		},
	}

	addDemoFlags(cmd, &opts, "demo/quickstart.png", "")

	return cmd
}

// demoGridCommand creates the "demo grid" subcommand.
func (c *CLI) demoGridCommand() *cobra.Command {
	var (
		opts demoOptions
		rows int
		cols int
	)

	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Render a subplot grid with a shared legend",
		Long: `Render a grid of subplots sharing one figure-level legend.

Every cell plots the same three power curves; only the first cell
labels them, so the legend carries three entries regardless of grid
size. Panels are annotated (a), (b), ... and the outer row and column
get axis labels.`,
		Example: `  pplot demo grid

  # A 3x2 grid saved as PNG and PDF
  pplot demo grid --rows 3 --cols 2 -o out/grid.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDemoGrid(cmd.Context(), opts, rows, cols)
		},
	}

	addDemoFlags(cmd, &opts, "demo/grid_demo.png", "png,pdf")
	cmd.Flags().IntVar(&rows, "rows", 2, "grid rows")
	cmd.Flags().IntVar(&cols, "cols", 3, "grid columns")

	return cmd
}

// addDemoFlags registers the flags every demo subcommand shares.
func addDemoFlags(cmd *cobra.Command, o *demoOptions, defaultOut, defaultFormats string) {
	cmd.Flags().StringVarP(&o.preset, "preset", "p", "", "style preset (see pplot presets)")
	cmd.Flags().StringVar(&o.style, "style", "", "style sheet name (see pplot styles)")
	cmd.Flags().StringVarP(&o.out, "out", "o", defaultOut, "output path")
	cmd.Flags().StringVar(&o.formats, "formats", defaultFormats, "comma-separated save formats (empty: from path extension)")
	cmd.Flags().StringVar(&o.theme, "theme", "", "terminal theme: dark, light, mono")
	cmd.Flags().BoolVar(&o.elapsed, "elapsed", false, "show a live elapsed-time status line")
}

// styleSelection maps the demo flags onto style options, falling back
// to the subcommand's default when neither flag is set. Setting both
// flags is passed through so SetStyle reports the conflict.
func styleSelection(o demoOptions, fallback session.StyleOptions) session.StyleOptions {
	if o.preset == "" && o.style == "" {
		return fallback
	}
	return session.StyleOptions{Style: o.style, Preset: o.preset}
}

// =============================================================================
// Quickstart
// =============================================================================

func (c *CLI) runDemoQuickstart(ctx context.Context, o demoOptions) error {
	opts, err := c.sessionOptions(o.theme, o.elapsed)
	if err != nil {
		return err
	}

	probe := watchFontCache()
	defer observability.Reset()

	s := session.New()
	defer s.Close()

	var paths []string
	runner := pipeline.NewRunner(loggerFromContext(ctx))
	report, err := runner.Run(ctx,
		pipeline.New("initialize", func(context.Context) error {
			return s.Initialize(opts)
		}),
		pipeline.New("set style", func(context.Context) error {
			return s.SetStyle(styleSelection(o, session.StyleOptions{Style: "IEEE"}))
		}),
		pipeline.New("draw", func(context.Context) error {
			_, err := s.Draw(figure.Config{}, drawQuickstart)
			return err
		}),
		pipeline.New("save", func(context.Context) error {
			var err error
			paths, err = s.Save(o.out, figure.SaveOptions{Formats: parseFormats(o.formats)})
			return err
		}),
	)
	if err != nil {
		return err
	}

	printSuccess("Rendered quickstart demo (%s)", report.Total.Round(time.Millisecond))
	for _, p := range paths {
		printFile(p)
	}
	printStats(1, 1, probe.cached())
	return nil
}

// drawQuickstart populates the single quickstart plot.
func drawQuickstart(ax *figure.Axes) error {
	pts := plotter.XYs{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 0}}
	if _, err := ax.Line("Example", pts); err != nil {
		return err
	}
	ax.Title.Text = "Title"
	ax.X.Label.Text = "X"
	ax.Y.Label.Text = "Y"
	return nil
}

// =============================================================================
// Grid
// =============================================================================

func (c *CLI) runDemoGrid(ctx context.Context, o demoOptions, rows, cols int) error {
	opts, err := c.sessionOptions(o.theme, o.elapsed)
	if err != nil {
		return err
	}

	probe := watchFontCache()
	defer observability.Reset()

	s := session.New()
	defer s.Close()

	cfg := figure.Config{
		Rows:   rows,
		Cols:   cols,
		Titles: panelTitles(rows * cols),
		Legend: &figure.LegendConfig{Anchor: figure.AnchorLowerCenter},
	}

	var (
		paths  []string
		curves int
	)
	runner := pipeline.NewRunner(loggerFromContext(ctx))
	report, err := runner.Run(ctx,
		pipeline.New("initialize", func(context.Context) error {
			return s.Initialize(opts)
		}),
		pipeline.New("set style", func(context.Context) error {
			return s.SetStyle(styleSelection(o, session.StyleOptions{Preset: "ieee-modern"}))
		}),
		pipeline.New("draw", func(context.Context) error {
			fig, err := s.DrawGrid(cfg, gridCell(rows, cols))
			if err != nil {
				return err
			}
			curves = len(fig.Entries())
			return nil
		}),
		pipeline.New("save", func(context.Context) error {
			var err error
			paths, err = s.Save(o.out, figure.SaveOptions{Formats: parseFormats(o.formats)})
			return err
		}),
	)
	if err != nil {
		return err
	}

	printSuccess("Rendered %dx%d grid demo (%s)", rows, cols, report.Total.Round(time.Millisecond))
	for _, p := range paths {
		printFile(p)
	}
	printStats(rows*cols, curves, probe.cached())
	return nil
}

// gridCell returns the cell callback for the grid demo. Every cell
// plots x, x^1.2, and x^1.5 over x = 0..19; only the first cell labels
// them so the shared legend stays at three entries.
func gridCell(rows, cols int) figure.CellFunc {
	return func(ax *figure.Axes, row, col, idx int) error {
		labels := []string{"_nolegend_", "_nolegend_", "_nolegend_"}
		if idx == 0 {
			labels = []string{"a", "b", "c"}
		}
		for k, exp := range []float64{1.0, 1.2, 1.5} {
			pts := make(plotter.XYs, 20)
			for i := range pts {
				x := float64(i)
				pts[i].X = x
				pts[i].Y = math.Pow(x, exp)
			}
			if _, err := ax.Line(labels[k], pts); err != nil {
				return err
			}
		}
		if row == rows-1 {
			ax.X.Label.Text = fmt.Sprintf("x_%d", col+1)
		}
		if col == 0 {
			ax.Y.Label.Text = fmt.Sprintf("y_%d", row+1)
		}
		return nil
	}
}

// panelTitles builds "(a)", "(b)", ... annotations, falling back to
// numbers past "(z)".
func panelTitles(n int) []string {
	titles := make([]string, n)
	for i := range titles {
		if i < 26 {
			titles[i] = fmt.Sprintf("(%c)", 'a'+i)
		} else {
			titles[i] = fmt.Sprintf("(%d)", i+1)
		}
	}
	return titles
}

// =============================================================================
// Font Cache Probe
// =============================================================================

// cacheProbe counts font discovery cache activity during one run.
type cacheProbe struct {
	observability.NoopCacheHooks

	mu     sync.Mutex
	hits   int
	misses int
}

// watchFontCache installs a probe as the process cache hook and
// returns it. Callers should observability.Reset() when done.
func watchFontCache() *cacheProbe {
	p := &cacheProbe{}
	observability.SetCacheHooks(p)
	return p
}

func (p *cacheProbe) OnCacheHit(context.Context, string) {
	p.mu.Lock()
	p.hits++
	p.mu.Unlock()
}

func (p *cacheProbe) OnCacheMiss(context.Context, string) {
	p.mu.Lock()
	p.misses++
	p.mu.Unlock()
}

// cached reports whether every discovery was served from the cache.
func (p *cacheProbe) cached() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.misses == 0 && p.hits > 0
}
