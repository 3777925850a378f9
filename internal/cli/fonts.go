package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pplot/pplot/pkg/fonts"
	"github.com/pplot/pplot/pkg/observability"
)

// fontsCommand creates the font inspection command group.
func (c *CLI) fontsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fonts",
		Short: "Inspect and refresh font discovery",
	}

	cmd.AddCommand(c.fontsListCommand())
	cmd.AddCommand(c.fontsLocateCommand())
	cmd.AddCommand(c.fontsRefreshCommand())

	return cmd
}

// fontsListCommand creates the "fonts list" subcommand.
func (c *CLI) fontsListCommand() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List bundled faces and, with --all, every host font file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := fonts.NewRegistry(nil)
			names := reg.Known()
			printInfo("Bundled faces (%d)", len(names))
			for _, n := range names {
				printDetail("%s", n)
			}

			if all {
				files := fonts.List()
				printNewline()
				printInfo("Host font files (%d found)", len(files))
				for _, f := range files {
					printDetail("%s", f)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "also list every font file visible on this host")

	return cmd
}

// fontsLocateCommand creates the "fonts locate" subcommand.
func (c *CLI) fontsLocateCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "locate NAME",
		Short: "Discover a font by name and report the result",
		Long: `Discover the named font on this host, exactly the way figure text
rendering would: known alias patterns are tried in order against the
host font directories, and the result is persisted in the discovery
cache.

With --file, the given font file is parsed and registered under NAME
instead, verifying it is usable before pointing a style sheet at it.`,
		Example: `  pplot fonts locate "Times New Roman"

  pplot fonts locate SimSun

  # Verify a downloaded font file parses
  pplot fonts locate MyFace --file ./fonts/myface.ttf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFontLocate(cmd.Context(), args[0], file)
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "register this font file instead of discovering")

	return cmd
}

func (c *CLI) runFontLocate(ctx context.Context, name, file string) error {
	fc, err := fonts.DefaultCache()
	if err != nil {
		c.Logger.Debug("discovery cache unavailable", "err", err)
	}
	defer fc.Close()
	reg := fonts.NewRegistry(fc)

	if file != "" {
		if err := reg.RegisterFile(name, file); err != nil {
			return err
		}
		printSuccess("Registered %s", name)
		printFile(file)
		return nil
	}

	probe := watchFontCache()
	defer observability.Reset()

	sp := newSpinnerWithContext(ctx, fmt.Sprintf("Locating %s...", name))
	sp.Start()
	tf, err := reg.Ensure(ctx, name)
	if err != nil {
		sp.StopWithError(fmt.Sprintf("Font %q not found", name))
		return err
	}
	sp.StopWithSuccess(fmt.Sprintf("Located %s", name))

	printKeyValue("typeface", string(tf))
	discovery := "fresh"
	if probe.cached() {
		discovery = "cached"
	}
	printKeyValue("discovery", discovery)
	return nil
}

// fontsRefreshCommand creates the "fonts refresh" subcommand.
func (c *CLI) fontsRefreshCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh NAME...",
		Short: "Drop cached discovery results and discover again",
		Long: `Drop the persisted discovery results for each named font and run
discovery again. Use after installing a font the cache still records
as missing.`,
		Example: `  pplot fonts refresh SimSun

  pplot fonts refresh "Times New Roman" SimSun`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFontRefresh(cmd.Context(), args)
		},
	}
}

func (c *CLI) runFontRefresh(ctx context.Context, names []string) error {
	fc, err := fonts.DefaultCache()
	if err != nil {
		c.Logger.Debug("discovery cache unavailable", "err", err)
	}
	defer fc.Close()
	reg := fonts.NewRegistry(fc)

	failed := 0
	for _, name := range names {
		tf, err := reg.Refresh(ctx, name)
		if err != nil {
			printError("%s: %v", name, err)
			failed++
			continue
		}
		printSuccess("Refreshed %s (typeface %s)", name, tf)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d fonts not found", failed, len(names))
	}
	return nil
}
