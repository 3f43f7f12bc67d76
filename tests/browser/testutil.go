package browser

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kuitang/studio-verify/internal/artifacts"
	"github.com/kuitang/studio-verify/internal/config"
	"github.com/kuitang/studio-verify/internal/contract"
	"github.com/kuitang/studio-verify/internal/verify"
)

// browserMaxTimeout bounds every wait in tests. Stub pages respond in
// milliseconds, so anything longer is a real failure, not slowness.
const browserMaxTimeout = 5 * time.Second

// StudioTestEnv is an in-process stub studio app serving the DOM contract.
type StudioTestEnv struct {
	Server  *httptest.Server
	BaseURL string
}

// SetupStudioTestEnv starts a stub studio server with the given failure
// injection and registers its shutdown with t.Cleanup.
func SetupStudioTestEnv(t *testing.T, opts StubOptions) *StudioTestEnv {
	t.Helper()
	server := httptest.NewServer(NewStubApp(opts))
	t.Cleanup(server.Close)
	return &StudioTestEnv{Server: server, BaseURL: server.URL}
}

// NewTestConfig returns a runner config pointed at the test env, with short
// timeouts and a temp artifacts dir.
func NewTestConfig(t *testing.T, env *StudioTestEnv) *config.Config {
	t.Helper()
	return &config.Config{
		BaseURL:         env.BaseURL,
		ArtifactsDir:    t.TempDir(),
		DefaultTimeout:  browserMaxTimeout,
		RefineTimeout:   browserMaxTimeout,
		GenerateTimeout: 2 * browserMaxTimeout,
		PollInterval:    50 * time.Millisecond,
	}
}

// NewTestRunner builds a runner over the default contract and a local
// artifact store rooted in the config's artifacts dir.
func NewTestRunner(t *testing.T, cfg *config.Config) *verify.Runner {
	t.Helper()
	store := artifacts.New(cfg.ArtifactsDir, verify.NewRunID(), nil)
	return verify.New(cfg, contract.Default(), store)
}

// StartRunner launches the browser, skipping the test when Playwright or its
// browsers are not installed on this machine.
func StartRunner(t *testing.T, r *verify.Runner) {
	t.Helper()
	if err := r.Start(); err != nil {
		t.Skipf("Playwright not available: %v", err)
	}
	t.Cleanup(r.Close)
}
