package browser

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kuitang/studio-verify/internal/artifacts"
	"github.com/kuitang/studio-verify/internal/errs"
	"github.com/kuitang/studio-verify/internal/verify"
)

func TestRun_AllScenariosPass(t *testing.T) {
	env := SetupStudioTestEnv(t, StubOptions{})
	cfg := NewTestConfig(t, env)
	r := NewTestRunner(t, cfg)
	StartRunner(t, r)

	report := r.Run(context.Background())

	if !report.Passed() {
		t.Fatalf("run failed:\n%s", report.Summary())
	}
	if got := report.ExitCode(); got != 0 {
		t.Fatalf("ExitCode = %d, want 0", got)
	}
	if len(report.Scenarios) != 4 {
		t.Fatalf("got %d scenario results, want 4", len(report.Scenarios))
	}

	for _, name := range []string{
		artifacts.SettingsScreenshot,
		artifacts.StudioScreenshot,
		artifacts.PreviewScreenshot,
		artifacts.ScheduleScreenshot,
		artifacts.ReportName,
	} {
		if _, err := os.Stat(filepath.Join(cfg.ArtifactsDir, name)); err != nil {
			t.Errorf("artifact %s missing: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(cfg.ArtifactsDir, artifacts.ErrorScreenshot)); !os.IsNotExist(err) {
		t.Error("error screenshot present on a passing run")
	}

	data, err := os.ReadFile(filepath.Join(cfg.ArtifactsDir, artifacts.ReportName))
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	var persisted verify.Report
	if err := json.Unmarshal(data, &persisted); err != nil {
		t.Fatalf("parse report: %v", err)
	}
	if persisted.RunID != report.RunID {
		t.Errorf("persisted run ID %q, want %q", persisted.RunID, report.RunID)
	}
	if len(persisted.Scenarios) != 4 {
		t.Errorf("persisted report has %d scenarios, want 4", len(persisted.Scenarios))
	}
}

func TestRun_FirstFailureSkipsRestAndCapturesError(t *testing.T) {
	env := SetupStudioTestEnv(t, StubOptions{DisableSaveConfirmation: true})
	cfg := NewTestConfig(t, env)
	cfg.DefaultTimeout = 2 * time.Second
	r := NewTestRunner(t, cfg)
	StartRunner(t, r)

	report := r.Run(context.Background())

	if report.Passed() {
		t.Fatal("run must fail when the brand kit save is never confirmed")
	}
	failure, ok := report.FirstFailure()
	if !ok {
		t.Fatal("no failing scenario recorded")
	}
	if failure.Slug != "brand_kit" {
		t.Fatalf("failing scenario = %q, want brand_kit", failure.Slug)
	}
	if failure.Code != errs.AssertionTimeout {
		t.Fatalf("failure code = %s, want %s", failure.Code, errs.AssertionTimeout)
	}
	if got, want := report.ExitCode(), errs.ExitCode(errs.AssertionTimeout); got != want {
		t.Fatalf("ExitCode = %d, want %d", got, want)
	}

	for _, s := range report.Scenarios[1:] {
		if s.Status != verify.StatusSkipped {
			t.Errorf("scenario %s status = %s, want %s", s.Slug, s.Status, verify.StatusSkipped)
		}
	}

	if report.ErrorScreenshot != artifacts.ErrorScreenshot {
		t.Errorf("report.ErrorScreenshot = %q, want %q", report.ErrorScreenshot, artifacts.ErrorScreenshot)
	}
	if _, err := os.Stat(filepath.Join(cfg.ArtifactsDir, artifacts.ErrorScreenshot)); err != nil {
		t.Errorf("error screenshot missing: %v", err)
	}
}

func TestRun_UnreachableTargetIsNavigationFailure(t *testing.T) {
	env := SetupStudioTestEnv(t, StubOptions{})
	cfg := NewTestConfig(t, env)
	env.Server.Close()

	r := NewTestRunner(t, cfg)
	StartRunner(t, r)

	report := r.Run(context.Background())

	failure, ok := report.FirstFailure()
	if !ok {
		t.Fatal("run against a closed server must record a failure")
	}
	if failure.Code != errs.NavigationFailed {
		t.Fatalf("failure code = %s, want %s (error: %s)", failure.Code, errs.NavigationFailed, failure.Error)
	}
	if got, want := report.ExitCode(), errs.ExitCode(errs.NavigationFailed); got != want {
		t.Fatalf("ExitCode = %d, want %d", got, want)
	}
}

func TestRun_RerunsOverwriteWithoutAccumulating(t *testing.T) {
	env := SetupStudioTestEnv(t, StubOptions{})
	cfg := NewTestConfig(t, env)

	for i := 0; i < 2; i++ {
		r := NewTestRunner(t, cfg)
		StartRunner(t, r)
		if report := r.Run(context.Background()); !report.Passed() {
			t.Fatalf("run %d failed:\n%s", i, report.Summary())
		}
		r.Close()
	}

	entries, err := os.ReadDir(cfg.ArtifactsDir)
	if err != nil {
		t.Fatalf("read artifacts dir: %v", err)
	}
	if len(entries) != 5 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("artifacts dir has %d entries %v, want exactly 5", len(entries), names)
	}
}
