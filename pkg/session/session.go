// Package session gates the drawing lifecycle of a pplot session.
//
// A Session is an explicit object, not package-global state: every figure,
// style, and font registry hangs off one Session value, and two sessions
// never share mutable state. The lifecycle runs through five phases:
//
//	uninitialized -> initialized -> style_set -> drawn -> saved
//
// Each operation names the phases it may be called from; calling it
// anywhere else returns a structured sequencing error naming the
// operation, the current phase, and the allowed set, and leaves the
// session untouched. Close tears the session down from any phase and is
// idempotent.
//
// # Usage
//
//	sess, err := session.Init(session.Options{Theme: console.ThemeDark})
//	if err != nil {
//	    return err
//	}
//	defer sess.Close()
//
//	if err := sess.SetStyle(session.StyleOptions{Preset: "ieee-okabe"}); err != nil {
//	    return err
//	}
//	_, err = sess.Draw(figure.Config{}, func(ax *figure.Axes) error {
//	    _, err := ax.Line("measured", pts)
//	    return err
//	})
//	if err != nil {
//	    return err
//	}
//	paths, err := sess.Save("out/fig", figure.SaveOptions{Formats: []string{"png", "pdf"}})
package session

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/pplot/pplot/pkg/colorset"
	"github.com/pplot/pplot/pkg/console"
	"github.com/pplot/pplot/pkg/errors"
	"github.com/pplot/pplot/pkg/figure"
	"github.com/pplot/pplot/pkg/fonts"
	"github.com/pplot/pplot/pkg/observability"
	"github.com/pplot/pplot/pkg/preset"
	"github.com/pplot/pplot/pkg/style"
)

// =============================================================================
// Phases
// =============================================================================

// Phase is a lifecycle state of a session.
type Phase int

// Lifecycle phases, in forward order.
const (
	PhaseUninitialized Phase = iota
	PhaseInitialized
	PhaseStyleSet
	PhaseDrawn
	PhaseSaved
)

var phaseNames = [...]string{
	"uninitialized",
	"initialized",
	"style_set",
	"drawn",
	"saved",
}

// String returns the lowercase phase name used in errors and diagrams.
func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("phase(%d)", int(p))
	}
	return phaseNames[p]
}

// Operation names as they appear in sequencing errors.
const (
	opInitialize = "initialize"
	opSetStyle   = "set_style"
	opDraw       = "draw"
	opSave       = "save"
	opClose      = "close"
)

// allowedPhases is the lifecycle gate: for each operation, the phases it
// may be called from. Close is absent because it is allowed everywhere.
var allowedPhases = map[string][]Phase{
	opInitialize: {PhaseUninitialized},
	opSetStyle:   {PhaseInitialized, PhaseStyleSet, PhaseDrawn, PhaseSaved},
	opDraw:       {PhaseStyleSet, PhaseDrawn, PhaseSaved},
	opSave:       {PhaseDrawn, PhaseSaved},
}

// Allowed returns the phases op may be called from. It backs the
// lifecycle diagram and error messages; unknown ops return nil.
func Allowed(op string) []Phase {
	phases := allowedPhases[op]
	out := make([]Phase, len(phases))
	copy(out, phases)
	return out
}

// =============================================================================
// Options
// =============================================================================

// Options configure a session at initialization.
type Options struct {
	// Theme selects the terminal palette for status output. Empty means
	// the default dark theme. Unknown themes fail Initialize.
	Theme console.Theme

	// LogLevel filters session log output. The zero value is info.
	LogLevel log.Level

	// LogTimestamps prefixes log lines with wall-clock timestamps.
	LogTimestamps bool

	// ShowElapsed paints a live elapsed-time status line on Writer until
	// the session closes.
	ShowElapsed bool

	// Writer receives log output and the status line. Default os.Stderr.
	Writer io.Writer

	// Logger overrides the constructed logger entirely.
	Logger *log.Logger

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults checks the options and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Theme == "" {
		o.Theme = console.DefaultTheme
	}
	if !console.ValidThemes[o.Theme] {
		return errors.New(errors.ErrCodeUnknownTheme,
			"unknown theme %q (supported: dark, light, mono)", o.Theme)
	}
	if o.Writer == nil {
		o.Writer = os.Stderr
	}
	o.validated = true
	return nil
}

// StyleOptions select the style sheet for SetStyle. Exactly one of
// Style or Preset must be set.
type StyleOptions struct {
	// Style names a sheet on the style search path ("IEEE", "GB", or a
	// user sheet). The color cycle stays at the default set.
	Style string

	// Preset names a style plus color set pairing ("ieee-okabe", ...).
	Preset string
}

// =============================================================================
// Session
// =============================================================================

// Session carries one figure-drawing lifecycle. Construct with New or
// Init; the zero value is not usable. Methods are serialized by an
// internal mutex, though concurrent figure drawing is not a supported
// pattern.
type Session struct {
	id string

	mu       sync.Mutex
	phase    Phase
	opts     Options
	logger   *log.Logger
	styler   *console.Styler
	sheet    *style.Style
	palette  colorset.Set
	registry *fonts.Registry
	fig      *figure.Figure
	cleanups []func()
	timer    *console.StatusTimer
}

// New creates a session in the uninitialized phase.
func New() *Session {
	return &Session{id: uuid.NewString(), phase: PhaseUninitialized}
}

// Init is the convenience path: New plus Initialize.
func Init(opts Options) (*Session, error) {
	s := New()
	if err := s.Initialize(opts); err != nil {
		return nil, err
	}
	return s, nil
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Style returns the active style sheet, nil before SetStyle.
func (s *Session) Style() *style.Style {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sheet
}

// Palette returns the active color set.
func (s *Session) Palette() colorset.Set {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.palette
}

// Figure returns the last drawn figure, nil before Draw.
func (s *Session) Figure() *figure.Figure {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fig
}

// Logger returns the session logger, nil before Initialize.
func (s *Session) Logger() *log.Logger {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logger
}

// Styler returns the themed console styler, nil before Initialize.
func (s *Session) Styler() *console.Styler {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.styler
}

// Registry returns the session's font registry, nil before Initialize.
func (s *Session) Registry() *fonts.Registry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry
}

// require returns a sequencing error when the current phase does not
// admit op. Callers hold the mutex.
func (s *Session) require(op string) error {
	phases := allowedPhases[op]
	for _, p := range phases {
		if s.phase == p {
			return nil
		}
	}
	allowed := make([]string, len(phases))
	for i, p := range phases {
		allowed[i] = p.String()
	}
	return &errors.SequenceError{Op: op, State: s.phase.String(), Allowed: allowed}
}

// transition moves the session to a new phase and fans the change out
// to the registered hooks. Callers hold the mutex.
func (s *Session) transition(op string, to Phase) {
	from := s.phase
	s.phase = to
	observability.Session().OnTransition(context.Background(), s.id, op, from.String(), to.String())
}

// =============================================================================
// Lifecycle Operations
// =============================================================================

// Initialize builds the session's logger, console styler, and font
// registry from opts and moves to the initialized phase. It is allowed
// only on an uninitialized session; initializing twice is a sequencing
// error.
func (s *Session) Initialize(opts Options) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.require(opInitialize); err != nil {
		return err
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	styler, err := console.NewStyler(opts.Theme)
	if err != nil {
		return err
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(opts.Writer, log.Options{
			ReportTimestamp: opts.LogTimestamps,
			TimeFormat:      "15:04:05.00",
			Level:           opts.LogLevel,
		})
	}

	files, err := fonts.DefaultCache()
	if err != nil {
		logger.Debug("font cache unavailable, discovery will not persist", "err", err)
	}

	s.opts = opts
	s.styler = styler
	s.logger = logger
	s.registry = fonts.NewRegistry(files)

	if opts.ShowElapsed {
		s.timer = console.NewStatusTimer(styler, "session active",
			console.WithTimerOutput(opts.Writer))
		s.timer.Start(context.Background())
	}

	s.transition(opInitialize, PhaseInitialized)
	s.logger.Debug("session initialized", "id", s.id, "theme", opts.Theme)
	return nil
}

// SetStyle loads a style sheet and color cycle for subsequent draws.
// Exactly one of opts.Style and opts.Preset must be set; naming both or
// neither is a configuration error. A preset resolves to its sheet and
// color set; a plain style keeps the default color set.
//
// When the sheet names a CJK face, the face is resolved on the host and
// registered; failure to find one degrades to the bundled fallback with
// a warning rather than failing the call.
func (s *Session) SetStyle(opts StyleOptions) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.require(opSetStyle); err != nil {
		return err
	}
	if (opts.Style == "") == (opts.Preset == "") {
		return errors.New(errors.ErrCodeStyleConflict,
			"set exactly one of Style or Preset")
	}

	name := opts.Style
	pal := colorset.Default()
	if opts.Preset != "" {
		p, err := preset.Get(opts.Preset)
		if err != nil {
			return err
		}
		name = p.Style
		set, err := colorset.Get(p.ColorSet)
		if err != nil {
			return err
		}
		pal = set
	}

	sheet, err := style.Load(name)
	if err != nil {
		return err
	}

	if sheet.Font.CJK != "" {
		if _, err := s.registry.Ensure(context.Background(), sheet.Font.CJK); err != nil {
			s.logger.Warn("CJK face unavailable, using bundled fallback",
				"face", sheet.Font.CJK, "err", err)
		}
	}

	s.sheet = sheet
	s.palette = pal
	s.transition(opSetStyle, PhaseStyleSet)
	s.logger.Info(s.styler.Emphasize(
		fmt.Sprintf("style ~<%s>~ with color set ~<%s>~", sheet.Name, pal.Name)))
	return nil
}

// Draw builds a single-plot figure with the session's style and records
// it as the session's current figure. A callback error aborts the draw:
// no figure is recorded and the phase does not change.
func (s *Session) Draw(cfg figure.Config, fn figure.DrawFunc) (*figure.Figure, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.require(opDraw); err != nil {
		return nil, err
	}
	s.prepare(&cfg)

	fig, err := figure.Draw(cfg, fn)
	if err != nil {
		return nil, err
	}
	s.finishDraw(fig)
	return fig, nil
}

// DrawGrid builds a subplot grid with the session's style and records
// it as the session's current figure.
func (s *Session) DrawGrid(cfg figure.Config, cell figure.CellFunc) (*figure.Figure, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.require(opDraw); err != nil {
		return nil, err
	}
	s.prepare(&cfg)

	fig, err := figure.DrawGrid(cfg, cell)
	if err != nil {
		return nil, err
	}
	s.finishDraw(fig)
	return fig, nil
}

// prepare injects the session's sheet, palette, and font registry into
// a figure config, keeping any explicit caller overrides.
func (s *Session) prepare(cfg *figure.Config) {
	if cfg.Style == nil {
		cfg.Style = s.sheet
	}
	if cfg.Registry == nil {
		cfg.Registry = s.registry
	}
	if len(cfg.Palette.Hex) == 0 {
		cfg.Palette = s.palette
	}
}

func (s *Session) finishDraw(fig *figure.Figure) {
	s.fig = fig
	s.transition(opDraw, PhaseDrawn)
	w, h := fig.Size()
	s.logger.Debug("figure drawn", "width", w, "height", h)
}

// Save writes the session's current figure to disk and returns the
// written paths in order. It requires a prior successful Draw; see
// figure.Save for the path and format rules.
func (s *Session) Save(path string, opts figure.SaveOptions) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.require(opSave); err != nil {
		return nil, err
	}
	if s.fig == nil {
		return nil, errors.New(errors.ErrCodeNoFigure, "no figure to save; draw one first")
	}

	start := time.Now()
	var timer *console.StatusTimer
	if s.opts.ShowElapsed {
		timer = console.NewStatusTimer(s.styler, "saving",
			console.WithTimerOutput(s.opts.Writer))
		timer.Start(context.Background())
	}
	paths, err := s.fig.Save(path, opts)
	if timer != nil {
		timer.Stop()
	}
	if err != nil {
		return paths, err
	}

	s.transition(opSave, PhaseSaved)
	observability.Session().OnSave(context.Background(), s.id, paths, time.Since(start))
	s.logger.Info(s.styler.Emphasize(
		fmt.Sprintf("saved ~<%s>~", strings.Join(paths, ">~, ~<"))))
	return paths, nil
}

// OnClose registers fn to run during Close. Callbacks run in
// registration order, exactly once. A nil fn is ignored.
func (s *Session) OnClose(fn func()) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cleanups = append(s.cleanups, fn)
}

// Close tears the session down: the status line stops, cleanup
// callbacks run in registration order, and all held state is released.
// Close is allowed from any phase and is idempotent; a second call runs
// no callbacks and returns nil. After Close the session is
// uninitialized and can be initialized again.
func (s *Session) Close() error {
	s.mu.Lock()
	cleanups := s.cleanups
	s.cleanups = nil
	timer := s.timer
	s.timer = nil
	logger := s.logger
	from := s.phase
	s.phase = PhaseUninitialized
	s.fig = nil
	s.sheet = nil
	s.palette = colorset.Set{}
	s.logger = nil
	s.styler = nil
	s.registry = nil
	s.opts = Options{}
	s.mu.Unlock()

	if timer != nil {
		timer.Stop()
	}
	// Callbacks run outside the lock so they may touch the session.
	for _, fn := range cleanups {
		fn()
	}

	if from != PhaseUninitialized {
		observability.Session().OnTransition(context.Background(), s.id, opClose,
			from.String(), PhaseUninitialized.String())
		if logger != nil {
			logger.Debug("session closed", "id", s.id)
		}
	}
	return nil
}
