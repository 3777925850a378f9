package cli

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLoggerTimestamps(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	logger.Info("saving figure")

	out := buf.String()
	if !strings.Contains(out, "saving figure") {
		t.Errorf("output missing message: %q", out)
	}
	if ok, _ := regexp.MatchString(`\d{2}:\d{2}:\d{2}\.\d{2}`, out); !ok {
		t.Errorf("output missing HH:MM:SS.cc timestamp: %q", out)
	}
}

func TestNewLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug message leaked at info level: %q", buf.String())
	}

	logger.Info("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("info message missing: %q", buf.String())
	}

	buf.Reset()
	logger.SetLevel(log.DebugLevel)
	logger.Debug("now visible")
	if !strings.Contains(buf.String(), "now visible") {
		t.Errorf("debug message missing at debug level: %q", buf.String())
	}
}

func TestProgressReportsElapsed(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	p := newProgress(logger)
	time.Sleep(5 * time.Millisecond)
	p.done("saved 2 files")

	out := buf.String()
	if !strings.Contains(out, "saved 2 files") {
		t.Errorf("done() output missing message: %q", out)
	}
	// The elapsed duration is appended in parentheses, e.g. "(5ms)".
	if !strings.Contains(out, "s)") {
		t.Errorf("done() output missing elapsed time: %q", out)
	}
}

func TestContextLoggerRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.DebugLevel)

	ctx := withLogger(context.Background(), logger)
	if got := loggerFromContext(ctx); got != logger {
		t.Error("loggerFromContext() did not return the attached logger")
	}

	got := loggerFromContext(context.Background())
	if got == nil {
		t.Fatal("loggerFromContext() on a bare context returned nil")
	}
	if got == logger {
		t.Error("loggerFromContext() on a bare context returned an attached logger")
	}
}
