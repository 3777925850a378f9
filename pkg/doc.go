// Package pkg provides the core libraries for pplot publication figures.
//
// # Overview
//
// pplot renders publication-quality scientific figures with consistent
// journal styling. The pkg directory is organized into four main areas:
//
//  1. [session] - Lifecycle gate (initialize → style → draw → save → close)
//  2. [style], [colorset], [preset] - Styling (TOML sheets, color cycles)
//  3. [figure] - Plotting (axes grids, legend band, format encoders)
//  4. [fonts], [cache], [console], [media] - Supporting infrastructure
//
// # Architecture
//
// The typical data flow through pplot:
//
//	session.Init (logger + console theme)
//	         ↓
//	    [style] package (sheet from search path or preset)
//	         ↓
//	    [figure] package (draw callbacks onto styled axes)
//	         ↓
//	    PNG/PDF/SVG/EPS/JPG/TIF output
//
// # Quick Start
//
// Render a styled figure through a complete session:
//
//	import (
//	    "gonum.org/v1/plot/plotter"
//
//	    "github.com/pplot/pplot/pkg/figure"
//	    "github.com/pplot/pplot/pkg/session"
//	)
//
//	// 1. Open a session
//	s, _ := session.Init(session.Options{})
//	defer s.Close()
//
//	// 2. Pick a style sheet and color cycle
//	_ = s.SetStyle(session.StyleOptions{Preset: "ieee-modern"})
//
//	// 3. Draw
//	fig, _ := s.Draw(figure.Config{}, func(ax *figure.Axes) error {
//	    _, err := ax.Line("Example", plotter.XYs{{X: 0, Y: 0}, {X: 1, Y: 1}})
//	    return err
//	})
//
//	// 4. Save
//	paths, _ := s.Save("out/result", figure.SaveOptions{Formats: []string{"png", "pdf"}})
//
// # Main Packages
//
// ## Lifecycle
//
// [session] - The ordered five-phase lifecycle every figure passes through.
// Calls made out of order fail with a structured sequencing error naming the
// allowed phases; Close is idempotent and replays cleanly.
//
// ## Styling
//
// [style] - TOML style sheets resolved across a search path (project dirs,
// working-dir styles/, user config dir, bundled IEEE and GB sheets) and
// applied per plot.
//
// [colorset] - Named eight-color sets with grayscale discriminability
// checks (Rec.709 luma deltas) and swatch-strip previews.
//
// [preset] - Fixed pairings of a style sheet and a color set under one
// name (ieee-modern, gb-okabe, ...).
//
// ## Plotting
//
// [figure] - Axes grids over gonum/plot with shared axes, per-cell titles,
// a figure-level legend band (column-packed, height reserved from the
// content rect), and multi-format save.
//
// ## Infrastructure
//
// [fonts] - Typeface registry seeded with the bundled Liberation collection
// plus host discovery for CJK faces. Lookups cache through [cache].
//
// [cache] - TTL file cache with hash-sharded paths, used for font
// discovery results.
//
// [console] - Themed terminal styler (dark, light, mono) and the elapsed
// status timer.
//
// [media] - GIF assembly from rendered frames, image save, and frame-rate
// helpers.
//
// [pipeline] - Named-step runner with per-step timing logs, used by the
// CLI demos.
//
// [errors] - Error codes, wrapping, and the sequencing error type shared
// by every package.
//
// [observability] - Hook registries for cache, render, and session events.
//
// # Common Workflows
//
// Load a sheet directly and inspect it:
//
//	finder := style.NewFinder()
//	st, _ := finder.Load("IEEE")
//	fmt.Println(st.Figure.WidthSingle)
//
// Check a color set survives grayscale printing:
//
//	set, _ := colorset.Get("Okabe-Ito")
//	ok := colorset.GrayscaleDiscriminable(set, colorset.DefaultMinLumaDelta)
//
// Assemble an animation from saved frames:
//
//	path, _ := media.Animate("out/anim.gif", frames, media.DefaultFPS)
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/figure/...       # Specific package
//	go test -run Example           # Examples only
//
// [session]: https://pkg.go.dev/github.com/pplot/pplot/pkg/session
// [style]: https://pkg.go.dev/github.com/pplot/pplot/pkg/style
// [colorset]: https://pkg.go.dev/github.com/pplot/pplot/pkg/colorset
// [preset]: https://pkg.go.dev/github.com/pplot/pplot/pkg/preset
// [figure]: https://pkg.go.dev/github.com/pplot/pplot/pkg/figure
// [fonts]: https://pkg.go.dev/github.com/pplot/pplot/pkg/fonts
// [cache]: https://pkg.go.dev/github.com/pplot/pplot/pkg/cache
// [console]: https://pkg.go.dev/github.com/pplot/pplot/pkg/console
// [media]: https://pkg.go.dev/github.com/pplot/pplot/pkg/media
// [pipeline]: https://pkg.go.dev/github.com/pplot/pplot/pkg/pipeline
// [errors]: https://pkg.go.dev/github.com/pplot/pplot/pkg/errors
// [observability]: https://pkg.go.dev/github.com/pplot/pplot/pkg/observability
package pkg
