package media

import (
	"math"
	"testing"
	"time"
)

func TestFPSTrackerEMA(t *testing.T) {
	tr := NewFPSTracker()
	base := time.Unix(1000, 0)

	if got := tr.step(base); got != 0 {
		t.Errorf("first step = %v, want 0", got)
	}
	if got := tr.FPS(); got != 0 {
		t.Errorf("FPS before samples = %v, want 0", got)
	}

	// Steady 100ms frames settle at 10 FPS.
	if got := tr.step(base.Add(100 * time.Millisecond)); math.Abs(got-10) > 1e-6 {
		t.Errorf("step = %v, want 10", got)
	}
	if got := tr.step(base.Add(200 * time.Millisecond)); math.Abs(got-10) > 1e-6 {
		t.Errorf("step = %v, want 10", got)
	}

	// One slow 200ms frame moves the estimate only slightly.
	got := tr.step(base.Add(400 * time.Millisecond))
	want := 1 / (emaAlpha*0.1 + (1-emaAlpha)*0.2)
	if math.Abs(got-want) > 1e-6 {
		t.Errorf("step after slow frame = %v, want %v", got, want)
	}
	if got < 9 || got > 10 {
		t.Errorf("estimate %v left the expected band (9, 10)", got)
	}
}

func TestRateCadence(t *testing.T) {
	r := NewRate(100)
	start := time.Now()
	for i := 0; i < 5; i++ {
		r.Sleep()
	}
	// Five ticks at 100Hz take at least ~50ms; allow scheduler slack.
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Errorf("5 ticks at 100Hz took %v, want >= 40ms", elapsed)
	}
}

func TestRateDisabled(t *testing.T) {
	r := NewRate(0)
	start := time.Now()
	for i := 0; i < 100; i++ {
		r.Sleep()
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("disabled rate slept for %v", elapsed)
	}
}
