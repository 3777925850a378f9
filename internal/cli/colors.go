package cli

import (
	"fmt"
	"math"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pplot/pplot/pkg/colorset"
	"github.com/pplot/pplot/pkg/media"
)

// colorsCommand creates the color set inspection command.
func (c *CLI) colorsCommand() *cobra.Command {
	var (
		check    bool
		minDelta float64
		preview  string
		setName  string
	)

	cmd := &cobra.Command{
		Use:   "colors",
		Short: "Inspect the built-in color sets",
		Long: `Show the built-in color sets as terminal swatches.

With --check, each set is tested for grayscale discriminability: every
pair of adjacent colors, ordered by luminance, must differ by at least
the --min-delta gap so the cycle survives black-and-white printing.

With --preview, a swatch sheet image is written instead.`,
		Example: `  # Terminal swatches for every set
  pplot colors

  # Grayscale-printing report
  pplot colors --check

  # One set only
  pplot colors --set Okabe-Ito --check

  # Render a swatch sheet
  pplot colors --preview swatches.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sets, err := selectSets(setName)
			if err != nil {
				return err
			}
			if preview != "" {
				return runColorPreview(sets, preview)
			}
			if check {
				runColorCheck(sets, minDelta)
				return nil
			}
			runColorList(sets)
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "report grayscale discriminability")
	cmd.Flags().Float64Var(&minDelta, "min-delta", colorset.DefaultMinLumaDelta, "minimum adjacent luminance gap for --check")
	cmd.Flags().StringVar(&preview, "preview", "", "write a swatch sheet image to this path")
	cmd.Flags().StringVar(&setName, "set", "", "limit output to one color set")

	return cmd
}

// selectSets resolves the --set flag to a list of sets, defaulting to
// all of them in presentation order.
func selectSets(name string) ([]colorset.Set, error) {
	if name != "" {
		s, err := colorset.Get(name)
		if err != nil {
			return nil, err
		}
		return []colorset.Set{s}, nil
	}
	names := colorset.Names()
	sets := make([]colorset.Set, 0, len(names))
	for _, n := range names {
		s, err := colorset.Get(n)
		if err != nil {
			continue
		}
		sets = append(sets, s)
	}
	return sets, nil
}

// runColorList prints each set as a row of terminal swatches.
func runColorList(sets []colorset.Set) {
	printInfo("Color sets (%d found)", len(sets))
	for _, s := range sets {
		strip := ""
		for _, hex := range s.Hex {
			strip += swatch(hex)
		}
		fmt.Printf("  %-22s %s\n", s.Name, strip)
	}
	printNewline()
	printNextStep("Check grayscale safety", "pplot colors --check")
}

// runColorCheck reports whether each set survives grayscale printing.
func runColorCheck(sets []colorset.Set, minDelta float64) {
	printInfo("Grayscale check (min gap %.1f)", minDelta)
	for _, s := range sets {
		gap := minLumaGap(s)
		if colorset.GrayscaleDiscriminable(s, minDelta) {
			printSuccess("%-22s min gap %.1f", s.Name, gap)
		} else {
			printWarning("%-22s min gap %.1f", s.Name, gap)
		}
	}
}

// runColorPreview writes a swatch sheet image covering the given sets.
func runColorPreview(sets []colorset.Set, path string) error {
	img := colorset.RenderSwatches(sets, colorset.SwatchOptions{})
	if err := media.SaveImage(img, path); err != nil {
		return err
	}
	printSuccess("Rendered %d sets", len(sets))
	printFile(path)
	return nil
}

// minLumaGap returns the smallest adjacent luminance gap in s after
// sorting by luminance. Sets with fewer than two colors report 0.
func minLumaGap(s colorset.Set) float64 {
	ys := colorset.Lumas(s)
	sort.Float64s(ys)
	gap := math.Inf(1)
	for i := 1; i < len(ys); i++ {
		if d := ys[i] - ys[i-1]; d < gap {
			gap = d
		}
	}
	if math.IsInf(gap, 1) {
		return 0
	}
	return gap
}
