// Package browser provides Playwright tests for the verification runner
// against an in-process stub of the studio application. The stub implements
// exactly the DOM contract the runner depends on: routes, headings, color
// inputs, labeled fields, buttons, success text, and image alt fragments.
package browser

import (
	"html/template"
	"net/http"
	"time"
)

// onePixelPNG is a 1x1 PNG data URI so stub images render without assets.
const onePixelPNG = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

// StubOptions injects failures and timing into the stub app so the runner's
// failure paths are testable.
type StubOptions struct {
	// DisableSaveConfirmation suppresses the brand-kit success message.
	DisableSaveConfirmation bool
	// DisableRefine makes the refine button a no-op, so the prompt value
	// never changes.
	DisableRefine bool
	// DisableGenerate makes the generate button a no-op, so no generated
	// image ever appears.
	DisableGenerate bool
	// RefineDelay is how long refinement takes (default 100ms).
	RefineDelay time.Duration
	// GenerateDelay is how long generation takes (default 300ms).
	GenerateDelay time.Duration
}

func (o StubOptions) refineDelayMS() int64 {
	if o.RefineDelay <= 0 {
		return 100
	}
	return o.RefineDelay.Milliseconds()
}

func (o StubOptions) generateDelayMS() int64 {
	if o.GenerateDelay <= 0 {
		return 300
	}
	return o.GenerateDelay.Milliseconds()
}

var stubTemplates = template.Must(template.New("stub").Parse(`
{{define "layout"}}<!DOCTYPE html>
<html>
<head><title>Studio</title></head>
<body>
<nav><a href="/settings">Settings</a> <a href="/">Studio</a> <a href="/preview">Preview</a> <a href="/schedule">Schedule</a></nav>
{{template "content" .}}
</body>
</html>{{end}}
`))

const settingsPage = `
{{define "content"}}
<h2>Brand Kit &amp; User Settings</h2>
<form id="brand-kit-form">
  <label for="color-0">Primary brand color</label>
  <input type="color" id="color-0" value="#000000">
  <label for="color-1">Secondary brand color</label>
  <input type="color" id="color-1" value="#000000">
  <label for="color-2">Accent brand color</label>
  <input type="color" id="color-2" value="#000000">

  <label for="typography-mood">Describe the mood and style of your typography</label>
  <textarea id="typography-mood"></textarea>

  <label for="keywords">Keywords to guide AI image generation</label>
  <input type="text" id="keywords">

  <button type="submit">Save Brand Kit</button>
</form>
<p id="save-status" hidden></p>
<script>
  for (const input of document.querySelectorAll('input[type=color]')) {
    input.addEventListener('input', () => {
      input.dataset.inputEvents = String(Number(input.dataset.inputEvents || 0) + 1);
    });
    input.addEventListener('change', () => {
      input.dataset.changeEvents = String(Number(input.dataset.changeEvents || 0) + 1);
    });
  }
  document.getElementById('brand-kit-form').addEventListener('submit', (e) => {
    e.preventDefault();
    {{if not .Opts.DisableSaveConfirmation}}
    const status = document.getElementById('save-status');
    status.textContent = 'Brand Kit saved successfully!';
    status.hidden = false;
    {{end}}
  });
</script>
{{end}}
`

const studioPage = `
{{define "content"}}
<h2>Create Your Visual</h2>
<label for="base-prompt">Base Prompt</label>
<textarea id="base-prompt"></textarea>
<button type="button" id="refine-btn">Refine with Brand AI</button>
<button type="button" id="generate-btn">Generate Visual</button>
<div id="canvas"></div>
<script>
  document.getElementById('refine-btn').addEventListener('click', () => {
    {{if not .Opts.DisableRefine}}
    setTimeout(() => {
      const el = document.getElementById('base-prompt');
      el.value = el.value + ', rendered in the brand palette with vibrant abstract lighting';
    }, {{.RefineDelayMS}});
    {{end}}
  });
  document.getElementById('generate-btn').addEventListener('click', () => {
    {{if not .Opts.DisableGenerate}}
    setTimeout(() => {
      const img = document.createElement('img');
      img.alt = 'AI generated visual for your brand';
      img.src = {{.PixelSrc}};
      img.width = 320;
      img.height = 180;
      document.getElementById('canvas').appendChild(img);
    }, {{.GenerateDelayMS}});
    {{end}}
  });
</script>
{{end}}
`

const previewPage = `
{{define "content"}}
<h2>Multi-Platform Preview</h2>
<div class="grid">
  <img alt="Preview for Instagram" src="{{.PixelSrc}}" width="200" height="200">
  <img alt="Preview for X" src="{{.PixelSrc}}" width="200" height="112">
  <img alt="Preview for LinkedIn" src="{{.PixelSrc}}" width="200" height="104">
</div>
{{end}}
`

const schedulePage = `
{{define "content"}}
<h2>Schedule Deployment</h2>
<img alt="Scheduled content for launch week" src="{{.PixelSrc}}" width="320" height="180">
<input type="datetime-local" id="publish-at">
<button type="button">Confirm Schedule</button>
{{end}}
`

type stubPageData struct {
	Opts StubOptions
	// template.URL keeps html/template from sanitizing the data: URI.
	PixelSrc        template.URL
	RefineDelayMS   int64
	GenerateDelayMS int64
}

// NewStubApp returns an http.Handler implementing the studio DOM contract.
func NewStubApp(opts StubOptions) http.Handler {
	data := stubPageData{
		Opts:            opts,
		PixelSrc:        template.URL(onePixelPNG),
		RefineDelayMS:   opts.refineDelayMS(),
		GenerateDelayMS: opts.generateDelayMS(),
	}

	pages := map[string]string{
		"/settings": settingsPage,
		"/":         studioPage,
		"/preview":  previewPage,
		"/schedule": schedulePage,
	}

	mux := http.NewServeMux()
	for route, content := range pages {
		tmpl := template.Must(template.Must(stubTemplates.Clone()).Parse(content))
		route := route
		mux.HandleFunc("GET "+route, func(w http.ResponseWriter, r *http.Request) {
			if route == "/" && r.URL.Path != "/" {
				http.NotFound(w, r)
				return
			}
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
		})
	}
	return mux
}
