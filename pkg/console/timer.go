package console

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// defaultTimerInterval is how often the status line is repainted.
const defaultTimerInterval = 250 * time.Millisecond

// StatusTimer writes a periodically refreshed elapsed-time line to a
// terminal while a long-running session is active. It is an explicit task
// handle: Start launches the repaint goroutine and Stop cancels it and
// waits until the goroutine has fully exited before returning.
type StatusTimer struct {
	message  string
	interval time.Duration
	out      io.Writer
	styler   *Styler

	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	stopped chan struct{}
	start   time.Time

	mu       sync.Mutex
	stopOnce sync.Once
}

// TimerOption configures a StatusTimer.
type TimerOption func(*StatusTimer)

// WithTimerInterval sets the repaint interval.
func WithTimerInterval(d time.Duration) TimerOption {
	return func(t *StatusTimer) {
		if d > 0 {
			t.interval = d
		}
	}
}

// WithTimerOutput redirects the status line (default os.Stderr).
func WithTimerOutput(w io.Writer) TimerOption {
	return func(t *StatusTimer) { t.out = w }
}

// NewStatusTimer creates a timer that repaints message with the elapsed
// time since Start. The styler may be nil, in which case output is plain.
func NewStatusTimer(styler *Styler, message string, opts ...TimerOption) *StatusTimer {
	t := &StatusTimer{
		message:  message,
		interval: defaultTimerInterval,
		out:      os.Stderr,
		styler:   styler,
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start begins repainting the status line. The timer stops on its own if
// ctx is cancelled. Start must be called at most once.
func (t *StatusTimer) Start(ctx context.Context) {
	t.ctx, t.cancel = context.WithCancel(ctx)
	t.start = time.Now()

	go func() {
		defer close(t.stopped)
		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()

		for {
			select {
			case <-t.ctx.Done():
				t.clearLine()
				return
			case <-t.done:
				return
			case <-ticker.C:
				t.paint()
			}
		}
	}()
}

// Stop cancels the repaint task, waits for it to exit, clears the status
// line, and returns the total elapsed time. Stop is safe to call more
// than once and from a different goroutine than Start.
func (t *StatusTimer) Stop() time.Duration {
	t.stopOnce.Do(func() {
		if t.cancel != nil {
			t.cancel()
		}
		close(t.done)
		if t.ctx != nil {
			<-t.stopped
		}
		t.clearLine()
	})
	if t.start.IsZero() {
		return 0
	}
	return time.Since(t.start)
}

// Elapsed returns the time since Start without stopping the task.
func (t *StatusTimer) Elapsed() time.Duration {
	if t.start.IsZero() {
		return 0
	}
	return time.Since(t.start)
}

func (t *StatusTimer) paint() {
	elapsed := time.Since(t.start).Round(100 * time.Millisecond)
	line := fmt.Sprintf("%s (%s)", t.message, elapsed)
	if t.styler != nil {
		line = t.styler.Dim(line)
	}
	t.mu.Lock()
	fmt.Fprintf(t.out, "\r%s", line)
	t.mu.Unlock()
}

func (t *StatusTimer) clearLine() {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, "\r%s\r", strings.Repeat(" ", len(t.message)+12))
}
