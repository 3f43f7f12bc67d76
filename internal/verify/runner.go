// Package verify implements the verification runner: one headless browser,
// one page, four sequential UI scenarios against a running studio instance,
// a screenshot per scenario, and a classified failure with an error capture
// when anything goes wrong.
package verify

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/playwright-community/playwright-go"

	"github.com/kuitang/studio-verify/internal/artifacts"
	"github.com/kuitang/studio-verify/internal/config"
	"github.com/kuitang/studio-verify/internal/contract"
	"github.com/kuitang/studio-verify/internal/errs"
	"github.com/kuitang/studio-verify/internal/obs"
	"github.com/kuitang/studio-verify/internal/urlutil"
)

// Runner drives the four verification scenarios on a single page. It owns
// the Playwright instance and browser exclusively; neither is reused after
// Close.
type Runner struct {
	cfg   *config.Config
	ct    *contract.Contract
	store *artifacts.Store

	pw      *playwright.Playwright
	browser playwright.Browser
	page    playwright.Page
}

// New creates a runner. Call Start before Run and Close when done.
func New(cfg *config.Config, ct *contract.Contract, store *artifacts.Store) *Runner {
	return &Runner{
		cfg:   cfg,
		ct:    ct,
		store: store,
	}
}

// Page exposes the underlying page for tests that assert on DOM state after
// a scenario runs. Nil before Start.
func (r *Runner) Page() playwright.Page {
	return r.page
}

// NewRunID returns a fresh run identifier for artifact keys and correlation.
func NewRunID() string {
	return uuid.NewString()
}

// Start launches Playwright and a Chromium instance with a single page.
func (r *Runner) Start() error {
	pw, err := playwright.Run()
	if err != nil {
		return errs.Wrap(errs.LaunchFailed, "start playwright driver", err)
	}
	r.pw = pw

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(!r.cfg.Headed),
	})
	if err != nil {
		_ = pw.Stop()
		r.pw = nil
		return errs.Wrap(errs.LaunchFailed, "launch chromium", err)
	}
	r.browser = browser

	page, err := browser.NewPage()
	if err != nil {
		_ = browser.Close()
		_ = pw.Stop()
		r.browser = nil
		r.pw = nil
		return errs.Wrap(errs.LaunchFailed, "create page", err)
	}
	page.SetDefaultTimeout(float64(r.cfg.DefaultTimeout.Milliseconds()))
	page.SetDefaultNavigationTimeout(float64(r.cfg.DefaultTimeout.Milliseconds()))
	r.page = page

	return nil
}

// Close releases page, browser, and driver. Safe to call on every exit path,
// including after a failed Start.
func (r *Runner) Close() {
	if r.page != nil {
		_ = r.page.Close()
		r.page = nil
	}
	if r.browser != nil {
		_ = r.browser.Close()
		r.browser = nil
	}
	if r.pw != nil {
		_ = r.pw.Stop()
		r.pw = nil
	}
}

// Scenario is one named verification step with its success screenshot.
type Scenario struct {
	Name       string
	Slug       string
	Screenshot string
	Run        func(ctx context.Context) error
}

// Scenarios returns the fixed scenario sequence. Order matters: each step's
// success is a precondition for the next.
func (r *Runner) Scenarios() []Scenario {
	return []Scenario{
		{
			Name:       "Brand Kit configuration",
			Slug:       "brand_kit",
			Screenshot: artifacts.SettingsScreenshot,
			Run:        r.RunBrandKit,
		},
		{
			Name:       "Visual generation",
			Slug:       "visual_generation",
			Screenshot: artifacts.StudioScreenshot,
			Run:        r.RunVisualGeneration,
		},
		{
			Name:       "Multi-platform preview",
			Slug:       "preview_grid",
			Screenshot: artifacts.PreviewScreenshot,
			Run:        r.RunPreviewGrid,
		},
		{
			Name:       "Scheduling",
			Slug:       "schedule",
			Screenshot: artifacts.ScheduleScreenshot,
			Run:        r.RunSchedule,
		},
	}
}

// Run executes the scenario sequence in order. The first failure stops the
// run: the failing scenario is recorded with its error class, an error
// screenshot is captured best-effort, and the remaining scenarios are marked
// skipped. A report is always produced and persisted.
func (r *Runner) Run(ctx context.Context) *Report {
	report := &Report{
		RunID:     r.store.RunID(),
		BaseURL:   r.cfg.BaseURL,
		StartedAt: time.Now().UTC(),
	}
	ctx = obs.WithRun(ctx, report.RunID)

	scenarios := r.Scenarios()
	failed := false
	for _, s := range scenarios {
		if failed {
			report.Scenarios = append(report.Scenarios, ScenarioResult{
				Name:   s.Name,
				Slug:   s.Slug,
				Status: StatusSkipped,
			})
			continue
		}

		sctx := obs.WithScenario(ctx, s.Slug)
		obs.From(sctx).Info("scenario starting", "name", s.Name)
		start := time.Now()
		err := s.Run(sctx)
		elapsed := time.Since(start)

		if err == nil {
			obs.From(sctx).Info("scenario passed", "duration", elapsed.String())
			report.Scenarios = append(report.Scenarios, ScenarioResult{
				Name:       s.Name,
				Slug:       s.Slug,
				Status:     StatusPassed,
				Screenshot: s.Screenshot,
				Duration:   elapsed,
			})
			continue
		}

		failed = true
		code := errs.CodeOf(err)
		obs.From(sctx).Error("scenario failed", "code", string(code), "error", err.Error())
		report.Scenarios = append(report.Scenarios, ScenarioResult{
			Name:     s.Name,
			Slug:     s.Slug,
			Status:   StatusFailed,
			Duration: elapsed,
			Error:    err.Error(),
			Code:     code,
		})
		// Best effort: the capture's own failure must not mask the scenario error.
		if path := r.captureErrorScreenshot(sctx); path != "" {
			report.ErrorScreenshot = artifacts.ErrorScreenshot
		}
	}

	report.FinishedAt = time.Now().UTC()
	if _, err := r.store.SaveReport(ctx, artifacts.ReportName, report); err != nil {
		obs.From(ctx).Error("failed to persist run report", "error", err.Error())
	}
	return report
}

func (r *Runner) captureErrorScreenshot(ctx context.Context) string {
	if r.page == nil {
		return ""
	}
	png, err := r.page.Screenshot(playwright.PageScreenshotOptions{
		FullPage: playwright.Bool(true),
	})
	if err != nil {
		obs.From(ctx).Error("failed to capture error screenshot", "error", err.Error())
		return ""
	}
	path, err := r.store.SaveScreenshot(ctx, artifacts.ErrorScreenshot, png)
	if err != nil {
		obs.From(ctx).Error("failed to save error screenshot", "error", err.Error())
		return ""
	}
	return path
}

// navigate opens a path on the target and waits for DOMContentLoaded.
func (r *Runner) navigate(ctx context.Context, path string) error {
	url := urlutil.BuildAbsolute(r.cfg.BaseURL, path)
	obs.From(ctx).Debug("navigating", "url", url)
	_, err := r.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	})
	if err != nil {
		return errs.Classify(err, fmt.Sprintf("navigate to %s", path), errs.NavigationFailed)
	}
	return nil
}

// waitForHeading waits for the page's h2 readiness heading to be visible.
func (r *Runner) waitForHeading(heading string) error {
	selector := fmt.Sprintf("h2:has-text(%q)", heading)
	locator := r.page.Locator(selector).First()
	err := locator.WaitFor(playwright.LocatorWaitForOptions{
		State: playwright.WaitForSelectorStateVisible,
	})
	if err != nil {
		return errs.Classify(err, fmt.Sprintf("wait for heading %q", heading), errs.AssertionFailed)
	}
	return nil
}

// fillLabeled fills the form control with the given accessible label.
func (r *Runner) fillLabeled(label, value string) error {
	if err := r.page.GetByLabel(label).Fill(value); err != nil {
		return errs.Classify(err, fmt.Sprintf("fill field %q", label), errs.AssertionFailed)
	}
	return nil
}

// clickButton clicks the button with the given visible name.
func (r *Runner) clickButton(name string) error {
	selector := fmt.Sprintf("button:has-text(%q)", name)
	if err := r.page.Locator(selector).Click(); err != nil {
		return errs.Classify(err, fmt.Sprintf("click button %q", name), errs.AssertionFailed)
	}
	return nil
}

// waitForText waits for the exact text to become visible anywhere on the page.
func (r *Runner) waitForText(text string) error {
	locator := r.page.Locator("text=" + text).First()
	err := locator.WaitFor(playwright.LocatorWaitForOptions{
		State: playwright.WaitForSelectorStateVisible,
	})
	if err != nil {
		return errs.Classify(err, fmt.Sprintf("wait for text %q", text), errs.AssertionFailed)
	}
	return nil
}

// waitForImageAlt waits for an image whose alt attribute contains fragment.
func (r *Runner) waitForImageAlt(fragment string, timeout time.Duration) error {
	selector := fmt.Sprintf("img[alt*=%q]", fragment)
	locator := r.page.Locator(selector).First()
	err := locator.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
	if err != nil {
		return errs.Classify(err, fmt.Sprintf("wait for image alt*=%q", fragment), errs.AssertionFailed)
	}
	return nil
}

// waitForValueChange polls the locator until its value differs from original.
// It succeeds as soon as the value changes and fails at the deadline, so a
// fast refinement does not pay the full timeout.
func (r *Runner) waitForValueChange(ctx context.Context, locator playwright.Locator, original string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	ticker := time.NewTicker(r.cfg.PollInterval)
	defer ticker.Stop()

	for {
		value, err := locator.InputValue()
		if err != nil {
			return errs.Classify(err, "read field value", errs.AssertionFailed)
		}
		if value != original {
			return nil
		}
		if time.Now().After(deadline) {
			return errs.New(errs.AssertionTimeout,
				fmt.Sprintf("value still %q after %s", original, timeout))
		}
		select {
		case <-ctx.Done():
			return errs.Wrap(errs.Internal, "value-change wait cancelled", ctx.Err())
		case <-ticker.C:
		}
	}
}

// screenshot captures a full-page screenshot into the artifact store.
func (r *Runner) screenshot(ctx context.Context, name string) error {
	png, err := r.page.Screenshot(playwright.PageScreenshotOptions{
		FullPage: playwright.Bool(true),
	})
	if err != nil {
		return errs.Classify(err, fmt.Sprintf("capture screenshot %s", name), errs.Internal)
	}
	if _, err := r.store.SaveScreenshot(ctx, name, png); err != nil {
		return err
	}
	return nil
}
