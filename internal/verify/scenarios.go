package verify

import (
	"context"

	"github.com/kuitang/studio-verify/internal/artifacts"
	"github.com/kuitang/studio-verify/internal/errs"
	"github.com/kuitang/studio-verify/internal/obs"
)

// RunBrandKit configures the brand kit on the settings page: three colors,
// typography mood, and image keywords, then saves and waits for the success
// confirmation. The screenshot is taken before saving so the filled form is
// what the artifact shows.
func (r *Runner) RunBrandKit(ctx context.Context) error {
	if err := r.navigate(ctx, r.ct.Routes.Settings); err != nil {
		return err
	}
	if err := r.waitForHeading(r.ct.Headings.Settings); err != nil {
		return err
	}

	for i, selector := range r.ct.ColorSelectors {
		if err := r.SetColorValue(selector, r.ct.Inputs.Colors[i]); err != nil {
			return err
		}
	}

	if err := r.fillLabeled(r.ct.Labels.TypographyMood, r.ct.Inputs.TypographyMood); err != nil {
		return err
	}
	if err := r.fillLabeled(r.ct.Labels.Keywords, r.ct.Inputs.Keywords); err != nil {
		return err
	}

	if err := r.screenshot(ctx, artifacts.SettingsScreenshot); err != nil {
		return err
	}

	if err := r.clickButton(r.ct.Buttons.SaveBrandKit); err != nil {
		return err
	}
	return r.waitForText(r.ct.SaveSuccess)
}

// RunVisualGeneration drives the studio's AI flow: seed the base prompt,
// refine it (the field's value must change away from the seed within the
// refine timeout), then generate and wait for the generated image.
func (r *Runner) RunVisualGeneration(ctx context.Context) error {
	if err := r.navigate(ctx, r.ct.Routes.Studio); err != nil {
		return err
	}
	if err := r.waitForHeading(r.ct.Headings.Studio); err != nil {
		return err
	}

	prompt := r.page.GetByLabel(r.ct.Labels.BasePrompt)
	if err := r.fillLabeled(r.ct.Labels.BasePrompt, r.ct.Inputs.BasePrompt); err != nil {
		return err
	}

	if err := r.clickButton(r.ct.Buttons.RefinePrompt); err != nil {
		return err
	}
	if err := r.waitForValueChange(ctx, prompt, r.ct.Inputs.BasePrompt, r.cfg.RefineTimeout); err != nil {
		return errs.Wrap(errs.AssertionTimeout, "prompt was not refined", err)
	}
	obs.From(ctx).Debug("prompt refined")

	if err := r.clickButton(r.ct.Buttons.GenerateVisual); err != nil {
		return err
	}
	// Generation is slow; this wait gets its own generous bound.
	if err := r.waitForImageAlt(r.ct.AltFragments.Generated, r.cfg.GenerateTimeout); err != nil {
		return err
	}

	return r.screenshot(ctx, artifacts.StudioScreenshot)
}

// RunPreviewGrid verifies at least one platform preview image is rendered.
func (r *Runner) RunPreviewGrid(ctx context.Context) error {
	if err := r.navigate(ctx, r.ct.Routes.Preview); err != nil {
		return err
	}
	if err := r.waitForHeading(r.ct.Headings.Preview); err != nil {
		return err
	}
	if err := r.waitForImageAlt(r.ct.AltFragments.Preview, r.cfg.DefaultTimeout); err != nil {
		return err
	}
	return r.screenshot(ctx, artifacts.PreviewScreenshot)
}

// RunSchedule verifies the scheduled-content image is visible.
func (r *Runner) RunSchedule(ctx context.Context) error {
	if err := r.navigate(ctx, r.ct.Routes.Schedule); err != nil {
		return err
	}
	if err := r.waitForHeading(r.ct.Headings.Schedule); err != nil {
		return err
	}
	if err := r.waitForImageAlt(r.ct.AltFragments.Scheduled, r.cfg.DefaultTimeout); err != nil {
		return err
	}
	return r.screenshot(ctx, artifacts.ScheduleScreenshot)
}
