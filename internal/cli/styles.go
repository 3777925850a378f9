package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pplot/pplot/pkg/style"
)

// stylesCommand creates the style sheet inspection command.
func (c *CLI) stylesCommand() *cobra.Command {
	var (
		show string
		dirs []string
	)

	cmd := &cobra.Command{
		Use:   "styles",
		Short: "List style sheets on the search path",
		Long: `List every style sheet visible on the search path.

The search path covers explicit --dir directories, the project styles/
directory, the user config directory, and the built-in sheets. Earlier
entries shadow later ones, so a project sheet named IEEE.toml replaces
the shipped one.`,
		Example: `  # List all visible sheets
  pplot styles

  # Print the resolved settings of one sheet
  pplot styles --show IEEE

  # Include a custom sheet directory (a sample ships in examples/styles)
  pplot styles --dir examples/styles --show Poster`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			finder := style.NewFinder(dirs...)
			if show != "" {
				return runShowStyle(finder, show)
			}
			return runListStyles(finder)
		},
	}

	cmd.Flags().StringVar(&show, "show", "", "print the resolved settings of one sheet")
	cmd.Flags().StringSliceVar(&dirs, "dir", nil, "extra sheet directories to search (repeatable)")

	return cmd
}

// runListStyles prints every visible sheet with its origin.
func runListStyles(finder *style.Finder) error {
	sheets := finder.Sheets()
	printInfo("Style sheets (%d found)", len(sheets))
	for _, s := range sheets {
		line := fmt.Sprintf("%-14s %-8s", s.Name, s.Origin)
		if s.Path != "" {
			line += " " + s.Path
		}
		printDetail("%s", line)
	}
	if len(sheets) > 0 {
		printNewline()
		printNextStep("Inspect a sheet", "pplot styles --show "+sheets[0].Name)
	}
	return nil
}

// runShowStyle loads one sheet and prints its resolved settings.
func runShowStyle(finder *style.Finder, name string) error {
	s, err := finder.Load(name)
	if err != nil {
		return err
	}

	printInfo("%s (%s)", s.Name, s.Origin)
	printNewline()
	printKeyValue("width", fmt.Sprintf("%.2f in single, %.2f in double", s.Figure.WidthSingle, s.Figure.WidthDouble))
	printKeyValue("height", fmt.Sprintf("%.2f in per row", s.Figure.BaseHeight))
	printKeyValue("dpi", strconv.FormatFloat(s.Figure.DPI, 'f', -1, 64))
	printKeyValue("family", s.Font.Family)
	printKeyValue("serif", s.Font.Serif)
	if s.Font.CJK != "" {
		printKeyValue("cjk", s.Font.CJK)
	}
	printKeyValue("font sizes", fmt.Sprintf("%.1f pt base, %.1f label, %.1f tick, %.1f legend",
		s.Font.Size, s.Font.LabelSize, s.Font.TickSize, s.Font.LegendSize))
	printKeyValue("line width", fmt.Sprintf("%.2f pt", s.Lines.Width))
	printKeyValue("markers", fmt.Sprintf("%.1f pt", s.Lines.MarkerSize))
	printKeyValue("grid", strconv.FormatBool(s.Axes.Grid))
	printKeyValue("legend", fmt.Sprintf("%.3f in entries, %.2f in rows, frame %v",
		s.Legend.EntryWidth, s.Legend.RowHeight, s.Legend.Frame))
	return nil
}
