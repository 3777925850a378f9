package media

import "time"

// Rate keeps a loop running at a target frequency. Each Sleep blocks
// just long enough to hold the cadence; iterations that already overran
// the interval return immediately.
type Rate struct {
	interval time.Duration
	last     time.Time
}

// NewRate returns a governor for the given frequency in Hz. A
// non-positive frequency disables sleeping entirely.
func NewRate(hz float64) *Rate {
	r := &Rate{last: time.Now()}
	if hz > 0 {
		r.interval = time.Duration(float64(time.Second) / hz)
	}
	return r
}

// Sleep blocks until the next tick of the cadence.
func (r *Rate) Sleep() {
	if r.interval > 0 {
		if d := r.interval - time.Since(r.last); d > 0 {
			time.Sleep(d)
		}
	}
	r.last = time.Now()
}

// emaAlpha weights the previous estimate when smoothing frame times.
const emaAlpha = 0.95

// FPSTracker estimates the frame rate of a loop with an exponential
// moving average over inter-frame intervals.
type FPSTracker struct {
	last time.Time
	ema  float64 // seconds per frame
}

// NewFPSTracker returns a tracker with no samples yet.
func NewFPSTracker() *FPSTracker {
	return &FPSTracker{}
}

// Step records one frame and returns the current estimate. The first
// call only seeds the clock and returns 0.
func (t *FPSTracker) Step() float64 {
	return t.step(time.Now())
}

func (t *FPSTracker) step(now time.Time) float64 {
	if t.last.IsZero() {
		t.last = now
		return 0
	}
	dt := now.Sub(t.last).Seconds()
	t.last = now
	if t.ema == 0 {
		t.ema = dt
	} else {
		t.ema = emaAlpha*t.ema + (1-emaAlpha)*dt
	}
	return t.FPS()
}

// FPS returns the smoothed frames-per-second estimate, or 0 before two
// frames have been recorded.
func (t *FPSTracker) FPS() float64 {
	if t.ema == 0 {
		return 0
	}
	return 1 / t.ema
}
