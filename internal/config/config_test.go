package config

import (
	"strings"
	"testing"
	"time"
)

func validTestConfig() Config {
	return Config{
		BaseURL:         "http://localhost:3000",
		ArtifactsDir:    "verification",
		DefaultTimeout:  30 * time.Second,
		RefineTimeout:   10 * time.Second,
		GenerateTimeout: 60 * time.Second,
		PollInterval:    250 * time.Millisecond,
	}
}

func TestValidate_MinimalConfigPasses(t *testing.T) {
	cfg := validTestConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid minimal config, got error: %v", err)
	}
}

func TestValidate_RejectsBadBaseURL(t *testing.T) {
	for _, bad := range []string{"", "localhost:3000", "ftp://host", "http://"} {
		cfg := validTestConfig()
		cfg.BaseURL = bad
		if err := cfg.Validate(); err == nil {
			t.Errorf("BaseURL %q should fail validation", bad)
		}
	}
}

func TestValidate_RejectsNonPositiveTimeouts(t *testing.T) {
	cfg := validTestConfig()
	cfg.RefineTimeout = 0
	cfg.GenerateTimeout = -time.Second
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation failure")
	}
	msg := err.Error()
	if !strings.Contains(msg, "VERIFY_REFINE_TIMEOUT") || !strings.Contains(msg, "VERIFY_GENERATE_TIMEOUT") {
		t.Fatalf("validation error should name every bad field, got: %v", msg)
	}
}

func TestValidate_UploadRequiresAWSEnv(t *testing.T) {
	cfg := validTestConfig()
	cfg.Upload = true
	err := cfg.Validate()
	if err == nil {
		t.Fatal("upload without AWS env should fail validation")
	}
	for _, want := range []string{"AWS_ENDPOINT_URL_S3", "BUCKET_NAME", "AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("validation error missing %s: %v", want, err)
		}
	}

	cfg.AWSEndpointS3 = "https://fly.storage.tigris.dev"
	cfg.AWSBucketName = "verify-artifacts"
	cfg.AWSAccessKeyID = "key"
	cfg.AWSSecretAccessKey = "secret"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("upload config with AWS env should pass: %v", err)
	}
}

func TestLoadConfig_FlagOverridesEnv(t *testing.T) {
	t.Setenv("VERIFY_BASE_URL", "http://env-host:3000")
	t.Setenv("VERIFY_ARTIFACTS_DIR", "env-artifacts")

	cfg, err := LoadConfig("http://flag-host:4000/", "", "", false, false)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.BaseURL != "http://flag-host:4000" {
		t.Errorf("BaseURL = %q, want flag value with trailing slash trimmed", cfg.BaseURL)
	}
	if cfg.ArtifactsDir != "env-artifacts" {
		t.Errorf("ArtifactsDir = %q, want env value", cfg.ArtifactsDir)
	}
}

func TestLoadConfig_TimeoutDefaultsAndEnvParsing(t *testing.T) {
	t.Setenv("VERIFY_REFINE_TIMEOUT", "5s")
	t.Setenv("VERIFY_GENERATE_TIMEOUT", "not-a-duration")

	cfg, err := LoadConfig("", "", "", false, false)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.RefineTimeout != 5*time.Second {
		t.Errorf("RefineTimeout = %v, want 5s from env", cfg.RefineTimeout)
	}
	if cfg.GenerateTimeout != 60*time.Second {
		t.Errorf("GenerateTimeout = %v, want 60s default on parse failure", cfg.GenerateTimeout)
	}
	if cfg.DefaultTimeout != 30*time.Second {
		t.Errorf("DefaultTimeout = %v, want 30s default", cfg.DefaultTimeout)
	}
}

func TestLoadConfig_DerivesPublicURL(t *testing.T) {
	t.Setenv("AWS_ENDPOINT_URL_S3", "https://fly.storage.tigris.dev/")
	t.Setenv("BUCKET_NAME", "verify-artifacts")

	cfg, err := LoadConfig("", "", "", false, false)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	want := "https://fly.storage.tigris.dev/verify-artifacts"
	if cfg.AWSPublicURL != want {
		t.Errorf("AWSPublicURL = %q, want %q", cfg.AWSPublicURL, want)
	}
}
