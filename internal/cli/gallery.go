package cli

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pplot/pplot/pkg/figure"
	"github.com/pplot/pplot/pkg/preset"
	"github.com/pplot/pplot/pkg/session"
)

// galleryCommand creates the interactive preset gallery command.
func (c *CLI) galleryCommand() *cobra.Command {
	var (
		outDir  string
		formats string
	)

	cmd := &cobra.Command{
		Use:   "gallery",
		Short: "Browse presets and render samples interactively",
		Long: `Browse the preset table interactively and render a sample figure
with the selected preset. Grayscale-safe color cycles are marked.`,
		Example: `  pplot gallery

  # Samples as PDFs in a custom directory
  pplot gallery -o samples --formats pdf`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGallery(outDir, parseFormats(formats))
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "gallery", "output directory for rendered samples")
	cmd.Flags().StringVar(&formats, "formats", "png", "comma-separated save formats")

	return cmd
}

func (c *CLI) runGallery(outDir string, formats []string) error {
	model := NewPresetListModel(preset.All())
	prog := tea.NewProgram(model)

	final, err := prog.Run()
	if err != nil {
		return fmt.Errorf("run gallery: %w", err)
	}

	m, ok := final.(PresetListModel)
	if !ok || m.Selected == nil {
		printInfo("No preset selected")
		return nil
	}

	name := m.Selected.Preset.Name
	paths, err := c.renderSample(name, filepath.Join(outDir, name+".png"), formats)
	if err != nil {
		return err
	}

	printSuccess("Rendered sample with %s", name)
	for _, p := range paths {
		printFile(p)
	}
	printNextStep("Compare another preset", "pplot gallery")
	return nil
}

// renderSample walks one full session: the quickstart figure drawn and
// saved with the named preset.
func (c *CLI) renderSample(presetName, out string, formats []string) ([]string, error) {
	opts, err := c.sessionOptions("", false)
	if err != nil {
		return nil, err
	}

	s := session.New()
	defer s.Close()

	if err := s.Initialize(opts); err != nil {
		return nil, err
	}
	if err := s.SetStyle(session.StyleOptions{Preset: presetName}); err != nil {
		return nil, err
	}
	if _, err := s.Draw(figure.Config{}, drawQuickstart); err != nil {
		return nil, err
	}
	return s.Save(out, figure.SaveOptions{Formats: formats})
}
