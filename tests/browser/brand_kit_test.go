package browser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kuitang/studio-verify/internal/artifacts"
	"github.com/kuitang/studio-verify/internal/errs"
)

func TestBrandKit_FillsAndSaves(t *testing.T) {
	env := SetupStudioTestEnv(t, StubOptions{})
	cfg := NewTestConfig(t, env)
	r := NewTestRunner(t, cfg)
	StartRunner(t, r)

	if err := r.RunBrandKit(context.Background()); err != nil {
		t.Fatalf("brand kit scenario failed: %v", err)
	}

	// Browsers normalize color input values to lowercase hex.
	wantColors := []string{"#ff0000", "#00ff00", "#0000ff"}
	for i, want := range wantColors {
		selector := fmt.Sprintf("input#color-%d", i)
		got, err := r.Page().Locator(selector).InputValue()
		if err != nil {
			t.Fatalf("read %s value: %v", selector, err)
		}
		if !strings.EqualFold(got, want) {
			t.Errorf("%s value = %q, want %q", selector, got, want)
		}
	}

	// The injected value must fire real input and change events, or the
	// app's state management would never see the new colors.
	for i := 0; i < 3; i++ {
		script := fmt.Sprintf(
			`() => { const el = document.querySelector('input#color-%d'); return [el.dataset.inputEvents, el.dataset.changeEvents]; }`, i)
		result, err := r.Page().Evaluate(script)
		if err != nil {
			t.Fatalf("read event counters for color-%d: %v", i, err)
		}
		counts, ok := result.([]interface{})
		if !ok || len(counts) != 2 {
			t.Fatalf("unexpected evaluate result for color-%d: %#v", i, result)
		}
		for j, c := range counts {
			if c != "1" {
				t.Errorf("color-%d event counter %d = %v, want \"1\"", i, j, c)
			}
		}
	}

	shot := filepath.Join(cfg.ArtifactsDir, artifacts.SettingsScreenshot)
	if _, err := os.Stat(shot); err != nil {
		t.Errorf("settings screenshot missing: %v", err)
	}
}

func TestBrandKit_MissingConfirmationTimesOut(t *testing.T) {
	env := SetupStudioTestEnv(t, StubOptions{DisableSaveConfirmation: true})
	cfg := NewTestConfig(t, env)
	cfg.DefaultTimeout = 2 * time.Second // fail fast: the confirmation never comes
	r := NewTestRunner(t, cfg)
	StartRunner(t, r)

	err := r.RunBrandKit(context.Background())
	if err == nil {
		t.Fatal("expected failure when the save confirmation never appears")
	}
	if code := errs.CodeOf(err); code != errs.AssertionTimeout {
		t.Fatalf("error code = %s, want %s (error: %v)", code, errs.AssertionTimeout, err)
	}
}
