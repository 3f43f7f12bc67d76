// Package artifacts owns the output files of a verification run: one PNG per
// scenario, an error capture on failure, and a JSON run report. Artifacts are
// written to a local directory under fixed names (re-runs overwrite, never
// accumulate) and optionally mirrored to S3 under a per-run prefix.
package artifacts

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kuitang/studio-verify/internal/errs"
	"github.com/kuitang/studio-verify/internal/obs"
	"github.com/kuitang/studio-verify/internal/s3client"
)

// Fixed artifact names, one per scenario plus the failure capture and report.
const (
	SettingsScreenshot = "01_settings_page.png"
	StudioScreenshot   = "02_studio_page_with_image.png"
	PreviewScreenshot  = "03_preview_page.png"
	ScheduleScreenshot = "04_schedule_page.png"
	ErrorScreenshot    = "error.png"
	ReportName         = "report.json"
)

// Store writes run artifacts to a local directory and, when an S3 client is
// configured, uploads each artifact under runs/<run-id>/.
type Store struct {
	dir   string
	runID string
	s3    *s3client.Client
}

// New creates a store rooted at dir. s3 may be nil to disable upload.
func New(dir, runID string, s3 *s3client.Client) *Store {
	return &Store{
		dir:   dir,
		runID: runID,
		s3:    s3,
	}
}

// Dir returns the local artifact directory.
func (s *Store) Dir() string {
	return s.dir
}

// RunID returns the run identifier used for S3 key prefixes.
func (s *Store) RunID() string {
	return s.runID
}

// SaveScreenshot writes png bytes under the given artifact name, overwriting
// any previous run's file, and mirrors it to S3 when configured.
// Returns the local path.
func (s *Store) SaveScreenshot(ctx context.Context, name string, png []byte) (string, error) {
	return s.save(ctx, name, png, "image/png")
}

// SaveReport marshals v as indented JSON and stores it like a screenshot.
func (s *Store) SaveReport(ctx context.Context, name string, v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", errs.Wrap(errs.ArtifactWriteError, fmt.Sprintf("marshal report %s", name), err)
	}
	return s.save(ctx, name, append(data, '\n'), "application/json")
}

func (s *Store) save(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	name = SanitizeName(name)

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", errs.Wrap(errs.ArtifactWriteError, fmt.Sprintf("create artifact dir %s", s.dir), err)
	}
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", errs.Wrap(errs.ArtifactWriteError, fmt.Sprintf("write artifact %s", name), err)
	}

	if s.s3 != nil {
		key := s.Key(name)
		if err := s.s3.PutObject(ctx, key, data, contentType); err != nil {
			return "", errs.Wrap(errs.ArtifactWriteError, fmt.Sprintf("upload artifact %s", key), err)
		}
		obs.From(ctx).Info("artifact uploaded", "key", key, "url", s.s3.GetPublicURL(key))
	}
	return path, nil
}

// Key returns the S3 object key for an artifact name.
func (s *Store) Key(name string) string {
	return "runs/" + s.runID + "/" + SanitizeName(name)
}

// SanitizeName maps an arbitrary string to a safe artifact filename:
// lowercase, restricted to [a-z0-9._-], no path separators, never empty, and
// never a dot-only name.
func SanitizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	out := b.String()
	if strings.Trim(out, "._-") == "" {
		return "artifact"
	}
	return out
}
