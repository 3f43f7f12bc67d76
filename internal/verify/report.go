package verify

import (
	"fmt"
	"strings"
	"time"

	"github.com/kuitang/studio-verify/internal/errs"
)

// Status is the outcome of a single scenario.
type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// ScenarioResult records one scenario's outcome. A failure in scenario N
// leaves N+1.. recorded as skipped, so partial success is visible instead of
// being indistinguishable from an immediate failure.
type ScenarioResult struct {
	Name       string        `json:"name"`
	Slug       string        `json:"slug"`
	Status     Status        `json:"status"`
	Screenshot string        `json:"screenshot,omitempty"`
	Duration   time.Duration `json:"duration_ns"`
	Error      string        `json:"error,omitempty"`
	Code       errs.Code     `json:"code,omitempty"`
}

// Report is the full outcome of a verification run.
type Report struct {
	RunID           string           `json:"run_id"`
	BaseURL         string           `json:"base_url"`
	StartedAt       time.Time        `json:"started_at"`
	FinishedAt      time.Time        `json:"finished_at"`
	Scenarios       []ScenarioResult `json:"scenarios"`
	ErrorScreenshot string           `json:"error_screenshot,omitempty"`
}

// Passed reports whether every scenario passed.
func (r *Report) Passed() bool {
	if len(r.Scenarios) == 0 {
		return false
	}
	for _, s := range r.Scenarios {
		if s.Status != StatusPassed {
			return false
		}
	}
	return true
}

// FirstFailure returns the first failed scenario result, if any.
func (r *Report) FirstFailure() (ScenarioResult, bool) {
	for _, s := range r.Scenarios {
		if s.Status == StatusFailed {
			return s, true
		}
	}
	return ScenarioResult{}, false
}

// ExitCode returns the process exit status for this run: 0 when everything
// passed, otherwise the exit code of the failing scenario's error class.
func (r *Report) ExitCode() int {
	if r.Passed() {
		return 0
	}
	if failure, ok := r.FirstFailure(); ok {
		return errs.ExitCode(failure.Code)
	}
	return errs.ExitCode(errs.Internal)
}

// Summary renders a one-line-per-scenario human-readable summary.
func (r *Report) Summary() string {
	var b strings.Builder
	for _, s := range r.Scenarios {
		switch s.Status {
		case StatusPassed:
			fmt.Fprintf(&b, "PASS  %-20s %s (%s)\n", s.Slug, s.Screenshot, s.Duration.Round(time.Millisecond))
		case StatusFailed:
			fmt.Fprintf(&b, "FAIL  %-20s [%s] %s\n", s.Slug, s.Code, s.Error)
		case StatusSkipped:
			fmt.Fprintf(&b, "SKIP  %-20s\n", s.Slug)
		}
	}
	return b.String()
}
