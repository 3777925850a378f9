package cli

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pplot/pplot/pkg/buildinfo"
	"github.com/pplot/pplot/pkg/console"
	"github.com/pplot/pplot/pkg/fonts"
	"github.com/pplot/pplot/pkg/session"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "pplot"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "pplot",
		Short:        "pplot renders publication-quality scientific figures",
		Long:         `pplot builds scientific figures with journal style sheets, curated color sets, and multi-format export, driven by a strict draw-then-save session lifecycle.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Commands read the logger back with loggerFromContext.
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.stylesCommand())
	root.AddCommand(c.colorsCommand())
	root.AddCommand(c.presetsCommand())
	root.AddCommand(c.galleryCommand())
	root.AddCommand(c.demoCommand())
	root.AddCommand(c.animateCommand())
	root.AddCommand(c.fontsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.debugCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Session Factory
// =============================================================================

// sessionOptions builds session options from common command flags. An
// empty theme name keeps the session default.
func (c *CLI) sessionOptions(themeName string, showElapsed bool) (session.Options, error) {
	opts := session.Options{
		Logger:      c.Logger,
		ShowElapsed: showElapsed,
	}
	if themeName != "" {
		theme, err := console.ParseTheme(themeName)
		if err != nil {
			return session.Options{}, err
		}
		opts.Theme = theme
	}
	return opts, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the directory holding persisted font discovery results.
func cacheDir() (string, error) {
	return fonts.DefaultCacheDir()
}

// =============================================================================
// Flag Helpers
// =============================================================================

// parseFormats splits a comma-separated format list. Empty input stays
// empty so saving can derive the format from the path extension.
func parseFormats(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	formats := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			formats = append(formats, p)
		}
	}
	return formats
}
