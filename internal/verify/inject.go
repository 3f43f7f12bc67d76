package verify

import (
	"fmt"
	"regexp"

	"github.com/kuitang/studio-verify/internal/errs"
)

var hexColorRE = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// setColorValueScript assigns a control's value directly and dispatches the
// two change-notification events any reactive UI listens for.
const setColorValueScript = `(args) => {
	const el = document.querySelector(args.selector);
	if (!el) {
		throw new Error('no element matches ' + args.selector);
	}
	el.value = args.value;
	el.dispatchEvent(new Event('input', { bubbles: true }));
	el.dispatchEvent(new Event('change', { bubbles: true }));
}`

// SetColorValue sets a color input's value by direct DOM assignment.
//
// This is a narrowly-scoped escape hatch, not a general interaction
// primitive: native color-picker widgets cannot be driven through simulated
// pointer/keyboard input in headless automation, so the value is injected
// and the "input"/"change" events dispatched by hand. Keep its use limited
// to <input type=color> controls so real UI regressions elsewhere are not
// masked.
func (r *Runner) SetColorValue(selector, color string) error {
	if !hexColorRE.MatchString(color) {
		return errs.New(errs.AssertionFailed, fmt.Sprintf("color %q is not #RRGGBB", color))
	}
	_, err := r.page.Evaluate(setColorValueScript, map[string]any{
		"selector": selector,
		"value":    color,
	})
	if err != nil {
		return errs.Classify(err, fmt.Sprintf("set color input %s", selector), errs.AssertionFailed)
	}
	return nil
}
