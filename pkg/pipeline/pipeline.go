// Package pipeline sequences named steps of work with per-step timing
// and logging. Demo and batch commands compose their stages (configure,
// draw, save) as steps so failures carry the stage name and reports
// show where the time went.
//
// # Usage
//
// Create a Runner and execute steps in order:
//
//	runner := pipeline.NewRunner(logger)
//	report, err := runner.Run(ctx,
//	    pipeline.New("draw", drawFigure),
//	    pipeline.New("save", saveFigure),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, s := range report.Steps {
//	    fmt.Println(s.Name, s.Duration)
//	}
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// Step is one named unit of work. Run receives the pipeline context
// and reports failure through its error.
type Step struct {
	Name string
	Run  func(ctx context.Context) error
}

// New returns a step wrapping fn under the given name.
func New(name string, fn func(ctx context.Context) error) Step {
	return Step{Name: name, Run: fn}
}

// StepReport records the outcome of one executed step.
type StepReport struct {
	Name     string
	Duration time.Duration
	Err      error
}

// Report collects the outcomes of one Run call. Steps holds an entry
// for every step that started, in execution order.
type Report struct {
	Steps []StepReport
	Total time.Duration
}

// Failed returns the report entry of the step that aborted the run,
// or nil when every executed step succeeded.
func (r Report) Failed() *StepReport {
	if n := len(r.Steps); n > 0 && r.Steps[n-1].Err != nil {
		return &r.Steps[n-1]
	}
	return nil
}

// Runner executes steps in order. The Runner is stateless except for
// the logger; multiple goroutines can share one Runner.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger falls back to the package
// default logger.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Run executes the steps in order and returns a report of everything
// that ran. The first failing step aborts the run with its error
// wrapped under the step name. Cancellation is checked between steps;
// a canceled context aborts before the next step starts.
func (r *Runner) Run(ctx context.Context, steps ...Step) (Report, error) {
	var report Report
	start := time.Now()

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			report.Total = time.Since(start)
			return report, fmt.Errorf("pipeline: %w", err)
		}
		if step.Run == nil {
			report.Total = time.Since(start)
			return report, fmt.Errorf("step %q has no run function", step.Name)
		}

		r.Logger.Debug("step started", "step", step.Name)
		stepStart := time.Now()
		err := step.Run(ctx)
		elapsed := time.Since(stepStart)
		report.Steps = append(report.Steps, StepReport{
			Name:     step.Name,
			Duration: elapsed,
			Err:      err,
		})

		if err != nil {
			report.Total = time.Since(start)
			return report, fmt.Errorf("%s: %w", step.Name, err)
		}
		r.Logger.Info("step completed", "step", step.Name, "duration", elapsed)
	}

	report.Total = time.Since(start)
	return report, nil
}
