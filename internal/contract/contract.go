// Package contract defines the UI contract the verification runner depends
// on: routes, heading texts, selectors, field labels, button names, and the
// seed inputs it types into the application. The contract is configuration,
// not embedded literals, so the target application can move to dedicated test
// identifiers without a code change here. Defaults match the studio app's
// current user-facing copy.
package contract

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Routes are the application paths the runner visits, in scenario order.
type Routes struct {
	Settings string `toml:"settings" validate:"required,startswith=/"`
	Studio   string `toml:"studio" validate:"required,startswith=/"`
	Preview  string `toml:"preview" validate:"required,startswith=/"`
	Schedule string `toml:"schedule" validate:"required,startswith=/"`
}

// Headings are the exact h2 texts used as per-page readiness signals.
type Headings struct {
	Settings string `toml:"settings" validate:"required"`
	Studio   string `toml:"studio" validate:"required"`
	Preview  string `toml:"preview" validate:"required"`
	Schedule string `toml:"schedule" validate:"required"`
}

// Labels are the accessible labels of the form fields the runner fills.
type Labels struct {
	TypographyMood string `toml:"typography_mood" validate:"required"`
	Keywords       string `toml:"keywords" validate:"required"`
	BasePrompt     string `toml:"base_prompt" validate:"required"`
}

// Buttons are the accessible names of the actions the runner triggers.
type Buttons struct {
	SaveBrandKit   string `toml:"save_brand_kit" validate:"required"`
	RefinePrompt   string `toml:"refine_prompt" validate:"required"`
	GenerateVisual string `toml:"generate_visual" validate:"required"`
}

// AltFragments are partial img alt texts used to find rendered images.
type AltFragments struct {
	Generated string `toml:"generated" validate:"required"`
	Preview   string `toml:"preview" validate:"required"`
	Scheduled string `toml:"scheduled" validate:"required"`
}

// Inputs are the fixed values the runner types into the application.
type Inputs struct {
	Colors         []string `toml:"colors" validate:"required,len=3,dive,hexcolor"`
	TypographyMood string   `toml:"typography_mood" validate:"required"`
	Keywords       string   `toml:"keywords" validate:"required"`
	BasePrompt     string   `toml:"base_prompt" validate:"required"`
}

// Contract is the full DOM contract between the runner and the target app.
type Contract struct {
	Routes         Routes       `toml:"routes"`
	Headings       Headings     `toml:"headings"`
	ColorSelectors []string     `toml:"color_selectors" validate:"required,len=3,dive,required"`
	Labels         Labels       `toml:"labels"`
	Buttons        Buttons      `toml:"buttons"`
	SaveSuccess    string       `toml:"save_success" validate:"required"`
	AltFragments   AltFragments `toml:"alt_fragments"`
	Inputs         Inputs       `toml:"inputs"`
}

// Default returns the built-in contract matching the studio app's current UI.
func Default() *Contract {
	return &Contract{
		Routes: Routes{
			Settings: "/settings",
			Studio:   "/",
			Preview:  "/preview",
			Schedule: "/schedule",
		},
		Headings: Headings{
			Settings: "Brand Kit & User Settings",
			Studio:   "Create Your Visual",
			Preview:  "Multi-Platform Preview",
			Schedule: "Schedule Deployment",
		},
		ColorSelectors: []string{"input#color-0", "input#color-1", "input#color-2"},
		Labels: Labels{
			TypographyMood: "Describe the mood and style of your typography",
			Keywords:       "Keywords to guide AI image generation",
			BasePrompt:     "Base Prompt",
		},
		Buttons: Buttons{
			SaveBrandKit:   "Save Brand Kit",
			RefinePrompt:   "Refine with Brand AI",
			GenerateVisual: "Generate Visual",
		},
		SaveSuccess: "Brand Kit saved successfully!",
		AltFragments: AltFragments{
			Generated: "AI generated visual",
			Preview:   "Preview for",
			Scheduled: "Scheduled content",
		},
		Inputs: Inputs{
			Colors:         []string{"#FF0000", "#00FF00", "#0000FF"},
			TypographyMood: "Modern, clean, sans-serif",
			Keywords:       "vibrant, abstract, futuristic",
			BasePrompt:     "A robot painting a masterpiece",
		},
	}
}

// Load returns the default contract overlaid with the TOML file at path.
// An empty path returns the defaults unchanged.
func Load(path string) (*Contract, error) {
	ct := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("contract: read %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, ct); err != nil {
			return nil, fmt.Errorf("contract: parse %s: %w", path, err)
		}
	}
	if err := ct.Validate(); err != nil {
		return nil, err
	}
	return ct, nil
}

// Validate checks the contract for missing or malformed fields.
func (c *Contract) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("contract: invalid: %w", err)
	}
	return nil
}
