package artifacts

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/kuitang/studio-verify/internal/errs"
	"github.com/kuitang/studio-verify/internal/s3client"
)

func TestSaveScreenshot_WritesAndOverwrites(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "verification")
	store := New(dir, "run-1", nil)
	ctx := context.Background()

	path, err := store.SaveScreenshot(ctx, SettingsScreenshot, []byte("first"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, SettingsScreenshot), path)

	// Re-running overwrites the same filename instead of accumulating.
	_, err = store.SaveScreenshot(ctx, SettingsScreenshot, []byte("second"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), data)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSaveScreenshot_UploadsToS3UnderRunPrefix(t *testing.T) {
	t.Parallel()
	client := s3client.TestClient(t, "verify-artifacts")
	store := New(t.TempDir(), "run-abc", client)
	ctx := context.Background()

	_, err := store.SaveScreenshot(ctx, ErrorScreenshot, []byte("png-bytes"))
	require.NoError(t, err)

	got, err := client.GetObject(ctx, "runs/run-abc/error.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), got)
}

func TestSaveReport_WritesIndentedJSON(t *testing.T) {
	t.Parallel()
	store := New(t.TempDir(), "run-1", nil)

	path, err := store.SaveReport(context.Background(), ReportName, map[string]string{"status": "passed"})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "passed", decoded["status"])
}

func TestSave_ErrorIsCodedArtifactWrite(t *testing.T) {
	t.Parallel()
	// A file where the directory should be forces MkdirAll to fail.
	base := t.TempDir()
	blocked := filepath.Join(base, "occupied")
	require.NoError(t, os.WriteFile(blocked, []byte("x"), 0o644))

	store := New(filepath.Join(blocked, "sub"), "run-1", nil)
	_, err := store.SaveScreenshot(context.Background(), SettingsScreenshot, []byte("png"))
	require.Error(t, err)
	assert.Equal(t, errs.ArtifactWriteError, errs.CodeOf(err))
}

func testSanitizeName_AlwaysSafe(t *rapid.T) {
	name := rapid.String().Draw(t, "name")
	got := SanitizeName(name)

	if got == "" {
		t.Fatalf("SanitizeName(%q) returned empty string", name)
	}
	if strings.Trim(got, "._-") == "" {
		t.Fatalf("SanitizeName(%q) = %q is dot/dash only", name, got)
	}
	if strings.ContainsAny(got, "/\\") {
		t.Fatalf("SanitizeName(%q) = %q contains path separator", name, got)
	}
	for _, r := range got {
		valid := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '.' || r == '_' || r == '-'
		if !valid {
			t.Fatalf("SanitizeName(%q) = %q contains invalid rune %q", name, got, r)
		}
	}
	// Sanitizing is idempotent.
	if again := SanitizeName(got); again != got {
		t.Fatalf("SanitizeName not idempotent: %q -> %q", got, again)
	}
}

func TestSanitizeName_AlwaysSafe(t *testing.T) {
	t.Parallel()
	rapid.Check(t, testSanitizeName_AlwaysSafe)
}

func TestSanitizeName_KeepsCanonicalArtifactNames(t *testing.T) {
	t.Parallel()
	for _, name := range []string{
		SettingsScreenshot,
		StudioScreenshot,
		PreviewScreenshot,
		ScheduleScreenshot,
		ErrorScreenshot,
		ReportName,
	} {
		assert.Equal(t, name, SanitizeName(name))
	}
}
