// Package config provides centralized configuration for the verification
// runner. It loads configuration from CLI flags and environment variables,
// validates required fields, and provides sensible defaults.
//
// CLI flags control run behavior (-base-url, -contract, -artifacts-dir,
// -headed, -upload). Environment variables provide timeouts and S3
// credentials.
package config

import (
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
)

// Config holds all runner configuration.
type Config struct {
	// Target application
	BaseURL string

	// UI contract overlay file (TOML); empty means built-in defaults.
	ContractPath string

	// Artifact output
	ArtifactsDir string

	// Browser settings
	Headed bool // If true, launch a visible browser instead of headless.

	// Wait bounds
	DefaultTimeout  time.Duration // selector/navigation waits
	RefineTimeout   time.Duration // prompt refinement value-change poll
	GenerateTimeout time.Duration // generated-image visibility wait
	PollInterval    time.Duration // value-change poll interval

	// Artifact upload (S3, uses AWS_ env vars)
	Upload             bool
	AWSEndpointS3      string // AWS_ENDPOINT_URL_S3
	AWSRegion          string // AWS_REGION
	AWSAccessKeyID     string // AWS_ACCESS_KEY_ID
	AWSSecretAccessKey string // AWS_SECRET_ACCESS_KEY
	AWSBucketName      string // BUCKET_NAME
	AWSPublicURL       string // S3_PUBLIC_URL
}

// ValidationError represents a configuration validation error with multiple issues.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("configuration validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// ParseFlags parses CLI flags and returns them. Call before LoadConfig.
func ParseFlags() (baseURL, contractPath, artifactsDir string, headed, upload bool) {
	flag.StringVar(&baseURL, "base-url", "", "Target application base URL (default http://localhost:3000, overrides VERIFY_BASE_URL)")
	flag.StringVar(&contractPath, "contract", "", "Path to a TOML UI-contract overlay (default: built-in contract)")
	flag.StringVar(&artifactsDir, "artifacts-dir", "", "Directory for screenshots and the run report (default ./verification)")
	flag.BoolVar(&headed, "headed", false, "Launch a visible browser instead of headless (for debugging)")
	flag.BoolVar(&upload, "upload", false, "Upload artifacts to S3 (requires AWS_* env vars)")
	flag.Parse()

	return baseURL, contractPath, artifactsDir, headed, upload
}

// LoadConfig loads configuration from environment variables and CLI flag
// values. Non-empty flag values override the corresponding env vars.
func LoadConfig(baseURL, contractPath, artifactsDir string, headed, upload bool) (*Config, error) {
	cfg := &Config{}

	cfg.BaseURL = getEnvOrDefault("VERIFY_BASE_URL", "http://localhost:3000")
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	cfg.ContractPath = os.Getenv("VERIFY_CONTRACT")
	if contractPath != "" {
		cfg.ContractPath = contractPath
	}

	cfg.ArtifactsDir = getEnvOrDefault("VERIFY_ARTIFACTS_DIR", "verification")
	if artifactsDir != "" {
		cfg.ArtifactsDir = artifactsDir
	}

	cfg.Headed = headed

	cfg.DefaultTimeout = parseDurationOrDefault("VERIFY_DEFAULT_TIMEOUT", 30*time.Second)
	cfg.RefineTimeout = parseDurationOrDefault("VERIFY_REFINE_TIMEOUT", 10*time.Second)
	cfg.GenerateTimeout = parseDurationOrDefault("VERIFY_GENERATE_TIMEOUT", 60*time.Second)
	cfg.PollInterval = parseDurationOrDefault("VERIFY_POLL_INTERVAL", 250*time.Millisecond)

	// S3 upload (AWS_ env vars, same names the storage provider sets)
	cfg.Upload = upload
	cfg.AWSEndpointS3 = strings.TrimSpace(os.Getenv("AWS_ENDPOINT_URL_S3"))
	cfg.AWSRegion = getEnvOrDefault("AWS_REGION", "auto")
	cfg.AWSAccessKeyID = strings.TrimSpace(os.Getenv("AWS_ACCESS_KEY_ID"))
	cfg.AWSSecretAccessKey = strings.TrimSpace(os.Getenv("AWS_SECRET_ACCESS_KEY"))
	cfg.AWSBucketName = strings.TrimSpace(os.Getenv("BUCKET_NAME"))
	cfg.AWSPublicURL = strings.TrimSpace(os.Getenv("S3_PUBLIC_URL"))
	if cfg.AWSPublicURL == "" && cfg.AWSEndpointS3 != "" && cfg.AWSBucketName != "" {
		cfg.AWSPublicURL = strings.TrimRight(cfg.AWSEndpointS3, "/") + "/" + cfg.AWSBucketName
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that all required configuration is present and valid.
// S3 credentials are required only when -upload is set.
func (c *Config) Validate() error {
	var errs []string

	if c.BaseURL == "" {
		errs = append(errs, "base URL is required (set -base-url or VERIFY_BASE_URL)")
	} else if u, err := url.Parse(c.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Sprintf("base URL %q must be an absolute http(s) URL", c.BaseURL))
	}

	if c.ArtifactsDir == "" {
		errs = append(errs, "artifacts directory is required (set -artifacts-dir or VERIFY_ARTIFACTS_DIR)")
	}

	if c.DefaultTimeout <= 0 {
		errs = append(errs, "VERIFY_DEFAULT_TIMEOUT must be positive")
	}
	if c.RefineTimeout <= 0 {
		errs = append(errs, "VERIFY_REFINE_TIMEOUT must be positive")
	}
	if c.GenerateTimeout <= 0 {
		errs = append(errs, "VERIFY_GENERATE_TIMEOUT must be positive")
	}
	if c.PollInterval <= 0 {
		errs = append(errs, "VERIFY_POLL_INTERVAL must be positive")
	}

	if c.Upload {
		if c.AWSEndpointS3 == "" {
			errs = append(errs, "AWS_ENDPOINT_URL_S3 is required with -upload")
		}
		if c.AWSBucketName == "" {
			errs = append(errs, "BUCKET_NAME is required with -upload")
		}
		if c.AWSAccessKeyID == "" {
			errs = append(errs, "AWS_ACCESS_KEY_ID is required with -upload")
		}
		if c.AWSSecretAccessKey == "" {
			errs = append(errs, "AWS_SECRET_ACCESS_KEY is required with -upload")
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}

	return nil
}

// PrintStartupSummary prints a human-readable summary of the configuration to
// stderr. Secrets are named, never printed.
func (c *Config) PrintStartupSummary() {
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "studio-verify starting...")
	fmt.Fprintf(os.Stderr, "  Target:    %s\n", c.BaseURL)
	if c.ContractPath != "" {
		fmt.Fprintf(os.Stderr, "  Contract:  %s\n", c.ContractPath)
	} else {
		fmt.Fprintln(os.Stderr, "  Contract:  built-in defaults")
	}
	fmt.Fprintf(os.Stderr, "  Artifacts: %s\n", c.ArtifactsDir)
	if c.Headed {
		fmt.Fprintln(os.Stderr, "  Browser:   Chromium (headed)")
	} else {
		fmt.Fprintln(os.Stderr, "  Browser:   Chromium (headless)")
	}
	if c.Upload {
		fmt.Fprintf(os.Stderr, "  Upload:    S3 (endpoint: %s, bucket: %s)\n", c.AWSEndpointS3, c.AWSBucketName)
	} else {
		fmt.Fprintln(os.Stderr, "  Upload:    disabled")
	}
	fmt.Fprintf(os.Stderr, "  Timeouts:  default %s, refine %s, generate %s\n",
		c.DefaultTimeout, c.RefineTimeout, c.GenerateTimeout)
	fmt.Fprintln(os.Stderr, "")
}

// Helper functions for parsing environment variables

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// MustLoadConfig loads configuration and panics if validation fails.
// Use this in main() when the run should fail fast on bad config.
func MustLoadConfig(baseURL, contractPath, artifactsDir string, headed, upload bool) *Config {
	cfg, err := LoadConfig(baseURL, contractPath, artifactsDir, headed, upload)
	if err != nil {
		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			panic(fmt.Sprintf("Configuration validation failed:\n  - %s", strings.Join(validationErr.Errors, "\n  - ")))
		}
		panic(fmt.Sprintf("Failed to load configuration: %v", err))
	}
	return cfg
}
