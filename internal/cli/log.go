// Package cli implements the pplot command tree.
//
// Rendering commands (demo, gallery) walk a full session lifecycle:
// initialize, set a style, draw, save. Inspection commands (styles,
// colors, presets, fonts, cache) report on the resources those renders
// draw from; animate encodes saved frames and debug exposes the
// lifecycle itself. Command output goes to stdout through the helpers
// in ui.go, structured logs go to stderr through charmbracelet/log,
// and the root command raises the level to debug under --verbose.
//
// The root command attaches its logger to the command context, so
// nested code retrieves it with loggerFromContext instead of threading
// a logger parameter through every call.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger writing to w at the given level, with
// sub-second timestamps ("14:32:01.45") so repeated renders are easy to
// tell apart in verbose output.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress measures one operation from construction to done. Single
// goroutine use only.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time appended, e.g. "Saved 2 files (1.234s)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// loggerKey is the context key the root command stores its logger under.
type loggerKey struct{}

// withLogger attaches l to the context for loggerFromContext to find.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the logger attached to ctx, or the package
// default when a command runs outside the root command's setup.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
