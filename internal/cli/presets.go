package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/pplot/pplot/pkg/colorset"
	"github.com/pplot/pplot/pkg/preset"
)

// presetsCommand creates the preset table command.
func (c *CLI) presetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "Show the style sheet and color set pairings",
		Long: `Show the preset table.

A preset names a style sheet plus a color set, so one flag picks a
complete look. Preset lookups are case-insensitive.`,
		Example: `  pplot presets

  # Use one with the demo
  pplot demo quickstart --preset ieee-okabe`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(renderPresetTable(preset.All()))
			printNewline()
			printNextStep("Try one", "pplot demo quickstart --preset ieee-okabe")
			return nil
		},
	}
}

// renderPresetTable lays out the preset table with swatch strips for
// each color cycle.
func renderPresetTable(presets []preset.Preset) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := [][]string{}
	for _, p := range presets {
		strip := ""
		if s, err := colorset.Get(p.ColorSet); err == nil {
			for _, hex := range s.Hex {
				strip += swatch(hex)
			}
		}
		rows = append(rows, []string{p.Name, p.Style, p.ColorSet, strip})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Preset", "Style", "Color Set", "Cycle").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			switch col {
			case 0:
				return lipgloss.NewStyle().Foreground(colorCyan)
			case 1:
				return lipgloss.NewStyle().Foreground(colorWhite)
			default:
				return lipgloss.NewStyle()
			}
		})

	return t.Render()
}
