package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestSpinnerPaintsFrames(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner("Rendering...")
	s.SetOutput(&buf)
	s.Start()
	time.Sleep(4 * spinnerInterval)
	s.Stop()

	// Stop waits for the goroutine, so reading the buffer is safe here.
	out := buf.String()
	if !strings.Contains(out, "Rendering...") {
		t.Errorf("output missing message: %q", out)
	}
	if !strings.Contains(out, "\r") {
		t.Errorf("output missing carriage returns: %q", out)
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinner("working")
	s.SetOutput(new(bytes.Buffer))
	s.Start()
	for i := 0; i < 3; i++ {
		s.Stop()
	}
}

func TestSpinnerImmediateStop(t *testing.T) {
	s := newSpinner("quick")
	s.SetOutput(new(bytes.Buffer))
	s.Start()
	s.Stop()
}

func TestSpinnerFollowsContext(t *testing.T) {
	t.Run("explicit cancel", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		s := newSpinnerWithContext(ctx, "waiting")
		s.SetOutput(new(bytes.Buffer))
		s.Start()

		cancel()
		time.Sleep(2 * spinnerInterval)

		if !s.Cancelled() {
			t.Error("Cancelled() = false after context cancel")
		}
		s.Stop()
	})

	t.Run("deadline", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), spinnerInterval/2)
		defer cancel()
		s := newSpinnerWithContext(ctx, "waiting")
		s.SetOutput(new(bytes.Buffer))
		s.Start()

		time.Sleep(2 * spinnerInterval)

		if !s.Cancelled() {
			t.Error("Cancelled() = false after context deadline")
		}
		s.Stop()
	})
}

func TestSpinnerStopMessages(t *testing.T) {
	s := newSpinner("encode")
	s.SetOutput(new(bytes.Buffer))
	s.Start()
	s.StopWithSuccess("Encoded 12 frames")

	s = newSpinner("encode")
	s.SetOutput(new(bytes.Buffer))
	s.Start()
	s.StopWithError("Encoding failed")
}
