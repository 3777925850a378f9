package session

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"gonum.org/v1/plot/vg"

	"github.com/pplot/pplot/pkg/errors"
	"github.com/pplot/pplot/pkg/figure"
	"github.com/pplot/pplot/pkg/observability"
)

// isolate redirects the user config and cache directories into a temp
// dir so sessions never touch the real home directory.
func isolate(t *testing.T) {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)
	t.Setenv("XDG_CACHE_HOME", tmp)
	t.Setenv("XDG_CONFIG_HOME", tmp)
}

func testOptions() Options {
	return Options{Writer: io.Discard}
}

func smallConfig() figure.Config {
	return figure.Config{Width: vg.Inch, Height: vg.Inch}
}

// advanceTo drives a fresh session to the given phase.
func advanceTo(t *testing.T, phase Phase) *Session {
	t.Helper()
	s := New()
	t.Cleanup(func() { s.Close() })

	steps := []func() error{
		func() error { return s.Initialize(testOptions()) },
		func() error { return s.SetStyle(StyleOptions{Style: "IEEE"}) },
		func() error { _, err := s.Draw(smallConfig(), nil); return err },
		func() error {
			_, err := s.Save(filepath.Join(t.TempDir(), "fig.svg"), figure.SaveOptions{})
			return err
		},
	}
	for i := 0; i < int(phase); i++ {
		if err := steps[i](); err != nil {
			t.Fatalf("advance to %v: step %d failed: %v", phase, i, err)
		}
	}
	if got := s.Phase(); got != phase {
		t.Fatalf("advance to %v landed in %v", phase, got)
	}
	return s
}

// invoke runs one lifecycle operation with benign inputs.
func invoke(t *testing.T, s *Session, op string) error {
	t.Helper()
	switch op {
	case opInitialize:
		return s.Initialize(testOptions())
	case opSetStyle:
		return s.SetStyle(StyleOptions{Style: "IEEE"})
	case opDraw:
		_, err := s.Draw(smallConfig(), nil)
		return err
	case opSave:
		_, err := s.Save(filepath.Join(t.TempDir(), "fig.svg"), figure.SaveOptions{})
		return err
	}
	t.Fatalf("unknown op %q", op)
	return nil
}

func TestLifecycleGate(t *testing.T) {
	isolate(t)

	ops := []string{opInitialize, opSetStyle, opDraw, opSave}
	tests := []struct {
		phase   Phase
		allowed map[string]bool
	}{
		{PhaseUninitialized, map[string]bool{opInitialize: true}},
		{PhaseInitialized, map[string]bool{opSetStyle: true}},
		{PhaseStyleSet, map[string]bool{opSetStyle: true, opDraw: true}},
		{PhaseDrawn, map[string]bool{opSetStyle: true, opDraw: true, opSave: true}},
		{PhaseSaved, map[string]bool{opSetStyle: true, opDraw: true, opSave: true}},
	}

	for _, tt := range tests {
		for _, op := range ops {
			t.Run(tt.phase.String()+"/"+op, func(t *testing.T) {
				s := advanceTo(t, tt.phase)
				err := invoke(t, s, op)

				if tt.allowed[op] {
					if err != nil {
						t.Fatalf("%s in %v failed: %v", op, tt.phase, err)
					}
					return
				}

				if err == nil {
					t.Fatalf("%s in %v did not fail", op, tt.phase)
				}
				if !errors.Is(err, errors.ErrCodeInvalidCallOrder) {
					t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidCallOrder)
				}
				if !errors.IsSequencing(err) {
					t.Error("IsSequencing = false, want true")
				}
				// Failed calls leave the phase unchanged.
				if got := s.Phase(); got != tt.phase {
					t.Errorf("phase after rejected %s = %v, want %v", op, got, tt.phase)
				}
			})
		}
	}
}

func TestSequenceErrorShape(t *testing.T) {
	isolate(t)
	s := advanceTo(t, PhaseInitialized)

	_, err := s.Draw(smallConfig(), nil)
	if err == nil {
		t.Fatal("Draw before SetStyle did not fail")
	}

	var seq *errors.SequenceError
	if !stderrors.As(err, &seq) {
		t.Fatalf("error %T is not a SequenceError", err)
	}
	if seq.Op != opDraw {
		t.Errorf("Op = %q, want %q", seq.Op, opDraw)
	}
	if seq.State != "initialized" {
		t.Errorf("State = %q, want %q", seq.State, "initialized")
	}
	want := []string{"style_set", "drawn", "saved"}
	if len(seq.Allowed) != len(want) {
		t.Fatalf("Allowed = %v, want %v", seq.Allowed, want)
	}
	for i := range want {
		if seq.Allowed[i] != want[i] {
			t.Errorf("Allowed[%d] = %q, want %q", i, seq.Allowed[i], want[i])
		}
	}
	for _, part := range []string{"draw", "initialized", "style_set, drawn, saved"} {
		if !strings.Contains(err.Error(), part) {
			t.Errorf("error %q does not mention %q", err, part)
		}
	}
}

func TestInitializeUnknownTheme(t *testing.T) {
	isolate(t)
	s := New()

	err := s.Initialize(Options{Theme: "neon", Writer: io.Discard})
	if err == nil {
		t.Fatal("Initialize with unknown theme did not fail")
	}
	if !errors.Is(err, errors.ErrCodeUnknownTheme) {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeUnknownTheme)
	}
	if !errors.IsConfiguration(err) {
		t.Error("IsConfiguration = false, want true")
	}
	if got := s.Phase(); got != PhaseUninitialized {
		t.Errorf("phase after failed init = %v, want %v", got, PhaseUninitialized)
	}
}

func TestSetStyleConflicts(t *testing.T) {
	isolate(t)

	tests := []struct {
		name string
		opts StyleOptions
	}{
		{"neither", StyleOptions{}},
		{"both", StyleOptions{Style: "IEEE", Preset: "ieee-okabe"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := advanceTo(t, PhaseInitialized)
			err := s.SetStyle(tt.opts)
			if err == nil {
				t.Fatal("SetStyle did not fail")
			}
			if !errors.Is(err, errors.ErrCodeStyleConflict) {
				t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeStyleConflict)
			}
			if got := s.Phase(); got != PhaseInitialized {
				t.Errorf("phase = %v, want %v", got, PhaseInitialized)
			}
		})
	}
}

func TestSetStylePreset(t *testing.T) {
	isolate(t)
	s := advanceTo(t, PhaseInitialized)

	if err := s.SetStyle(StyleOptions{Preset: "ieee-okabe"}); err != nil {
		t.Fatalf("SetStyle() error = %v", err)
	}
	if got := s.Style().Name; got != "IEEE" {
		t.Errorf("style = %q, want %q", got, "IEEE")
	}
	if got := s.Palette().Name; got != "Okabe-Ito" {
		t.Errorf("palette = %q, want %q", got, "Okabe-Ito")
	}
}

func TestSetStyleUnknownLeavesPhase(t *testing.T) {
	isolate(t)
	s := advanceTo(t, PhaseStyleSet)

	err := s.SetStyle(StyleOptions{Style: "nope"})
	if err == nil {
		t.Fatal("SetStyle with unknown sheet did not fail")
	}
	if !errors.Is(err, errors.ErrCodeUnknownStyle) {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeUnknownStyle)
	}
	if got := s.Phase(); got != PhaseStyleSet {
		t.Errorf("phase = %v, want %v", got, PhaseStyleSet)
	}
	if s.Style() == nil {
		t.Error("previous style was dropped on failed SetStyle")
	}
}

func TestDrawCallbackErrorLeavesState(t *testing.T) {
	isolate(t)
	s := advanceTo(t, PhaseStyleSet)

	_, err := s.Draw(smallConfig(), func(ax *figure.Axes) error {
		return fmt.Errorf("synthetic failure")
	})
	if err == nil {
		t.Fatal("Draw with failing callback did not fail")
	}
	if !errors.Is(err, errors.ErrCodeDrawFailed) {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeDrawFailed)
	}
	if got := s.Phase(); got != PhaseStyleSet {
		t.Errorf("phase = %v, want %v", got, PhaseStyleSet)
	}
	if s.Figure() != nil {
		t.Error("failed draw recorded a figure")
	}
}

func TestSaveWritesAndAdvances(t *testing.T) {
	isolate(t)
	s := advanceTo(t, PhaseDrawn)
	base := filepath.Join(t.TempDir(), "fig")

	paths, err := s.Save(base, figure.SaveOptions{Formats: []string{"svg", "eps"}})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	want := []string{base + ".svg", base + ".eps"}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
	if got := s.Phase(); got != PhaseSaved {
		t.Errorf("phase = %v, want %v", got, PhaseSaved)
	}

	// Saved sessions can draw and save again.
	if _, err := s.Draw(smallConfig(), nil); err != nil {
		t.Fatalf("Draw after save failed: %v", err)
	}
	if _, err := s.Save(filepath.Join(t.TempDir(), "fig2.svg"), figure.SaveOptions{}); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}
}

func TestCloseRunsCallbacksInOrder(t *testing.T) {
	isolate(t)
	s := advanceTo(t, PhaseDrawn)

	var order []string
	s.OnClose(func() { order = append(order, "first") })
	s.OnClose(func() { order = append(order, "second") })
	s.OnClose(nil)

	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("callback order = %v, want [first second]", order)
	}
	if got := s.Phase(); got != PhaseUninitialized {
		t.Errorf("phase after close = %v, want %v", got, PhaseUninitialized)
	}
	if s.Figure() != nil || s.Style() != nil {
		t.Error("Close did not release figure and style")
	}

	// Close is idempotent: callbacks never run twice.
	if err := s.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
	if len(order) != 2 {
		t.Errorf("callbacks ran %d times after double close, want 2", len(order))
	}
}

func TestCloseAllowsReplay(t *testing.T) {
	isolate(t)
	s := advanceTo(t, PhaseSaved)

	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := s.Initialize(testOptions()); err != nil {
		t.Fatalf("Initialize after Close failed: %v", err)
	}
	if err := s.SetStyle(StyleOptions{Style: "IEEE"}); err != nil {
		t.Fatalf("SetStyle after replay failed: %v", err)
	}
	if got := s.Phase(); got != PhaseStyleSet {
		t.Errorf("phase = %v, want %v", got, PhaseStyleSet)
	}
}

func TestShowElapsedStatusLine(t *testing.T) {
	isolate(t)

	var buf bytes.Buffer
	s := New()
	opts := testOptions()
	opts.ShowElapsed = true
	opts.Writer = &buf
	if err := s.Initialize(opts); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	// Wait for at least one repaint, then stop. Close waits for the
	// repaint goroutine to exit, so reading buf afterwards is safe.
	time.Sleep(300 * time.Millisecond)
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !strings.Contains(buf.String(), "session active") {
		t.Error("status line was never painted")
	}
}

// recordingHooks captures transition events for inspection.
type recordingHooks struct {
	observability.NoopSessionHooks

	mu    sync.Mutex
	ops   []string
	saves [][]string
}

func (h *recordingHooks) OnTransition(_ context.Context, _, op, _, _ string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ops = append(h.ops, op)
}

func (h *recordingHooks) OnSave(_ context.Context, _ string, paths []string, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.saves = append(h.saves, paths)
}

func TestTransitionsFanOutToHooks(t *testing.T) {
	isolate(t)

	hooks := &recordingHooks{}
	observability.SetSessionHooks(hooks)
	t.Cleanup(observability.Reset)

	s := advanceTo(t, PhaseSaved)
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	want := []string{opInitialize, opSetStyle, opDraw, opSave, opClose}
	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	if len(hooks.ops) != len(want) {
		t.Fatalf("hook ops = %v, want %v", hooks.ops, want)
	}
	for i := range want {
		if hooks.ops[i] != want[i] {
			t.Errorf("ops[%d] = %q, want %q", i, hooks.ops[i], want[i])
		}
	}
	if len(hooks.saves) != 1 || len(hooks.saves[0]) != 1 {
		t.Errorf("save events = %v, want one event with one path", hooks.saves)
	}
}

func TestPhaseString(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
	}{
		{PhaseUninitialized, "uninitialized"},
		{PhaseInitialized, "initialized"},
		{PhaseStyleSet, "style_set"},
		{PhaseDrawn, "drawn"},
		{PhaseSaved, "saved"},
		{Phase(9), "phase(9)"},
	}
	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.want {
			t.Errorf("Phase(%d).String() = %q, want %q", int(tt.phase), got, tt.want)
		}
	}
}

func TestAllowedReturnsCopy(t *testing.T) {
	first := Allowed(opDraw)
	if len(first) != 3 {
		t.Fatalf("Allowed(draw) = %v, want 3 phases", first)
	}
	first[0] = PhaseSaved
	if second := Allowed(opDraw); second[0] != PhaseStyleSet {
		t.Error("Allowed returns a shared slice")
	}
}

func TestTransitionDOT(t *testing.T) {
	dot := TransitionDOT()

	if !strings.HasPrefix(dot, "digraph lifecycle {") {
		t.Error("DOT output missing digraph header")
	}
	for p := PhaseUninitialized; p <= PhaseSaved; p++ {
		if !strings.Contains(dot, fmt.Sprintf("%q", p.String())) {
			t.Errorf("DOT output missing phase %q", p.String())
		}
	}
	for _, op := range []string{opInitialize, opSetStyle, opDraw, opSave, opClose} {
		if !strings.Contains(dot, fmt.Sprintf("label=%q", op)) {
			t.Errorf("DOT output missing operation %q", op)
		}
	}
	// Every phase past uninitialized can close back down.
	if got := strings.Count(dot, "style=dashed"); got != 4 {
		t.Errorf("close edges = %d, want 4", got)
	}
}
