package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pplot/pplot/pkg/session"
)

// debugCommand creates the debug command group.
func (c *CLI) debugCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "debug",
		Short: "Developer tools",
	}

	cmd.AddCommand(c.debugLifecycleCommand())

	return cmd
}

// debugLifecycleCommand creates the "debug lifecycle" subcommand.
func (c *CLI) debugLifecycleCommand() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "lifecycle",
		Short: "Render the session phase machine (debug tool)",
		Long: `Render the session phase machine as Graphviz DOT or SVG.

The graph shows every phase, the operations that move between them,
and the close edges back to uninitialized.`,
		Example: `  # DOT source on stdout
  pplot debug lifecycle

  # Rendered SVG
  pplot debug lifecycle --format svg -o lifecycle.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case "dot":
				return writeOutput([]byte(session.TransitionDOT()), output)
			case "svg":
				svg, err := session.RenderTransitionSVG(cmd.Context())
				if err != nil {
					return fmt.Errorf("render lifecycle: %w", err)
				}
				if err := writeOutput(svg, output); err != nil {
					return err
				}
				if output != "" {
					printSuccess("Lifecycle graph rendered")
					printFile(output)
				}
				return nil
			default:
				return fmt.Errorf("unknown format %q (supported: dot, svg)", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "dot", "output format: dot, svg")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}

// writeOutput writes data to path, or stdout when path is empty.
func writeOutput(data []byte, path string) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return os.WriteFile(path, data, 0644)
}
