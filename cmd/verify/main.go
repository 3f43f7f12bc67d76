// studio-verify drives a headless browser through the studio application's
// pages (settings, studio, preview, schedule), exercising the brand-kit
// configuration flow, the AI visual-generation flow, and the two read-only
// views, capturing a screenshot per step. The exit status classifies the
// outcome so CI can tell a navigation failure from an assertion timeout.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/kuitang/studio-verify/internal/artifacts"
	"github.com/kuitang/studio-verify/internal/config"
	"github.com/kuitang/studio-verify/internal/contract"
	"github.com/kuitang/studio-verify/internal/errs"
	"github.com/kuitang/studio-verify/internal/obs"
	"github.com/kuitang/studio-verify/internal/s3client"
	"github.com/kuitang/studio-verify/internal/verify"
)

func main() {
	os.Exit(run())
}

func run() int {
	obs.Init()
	cfg := config.MustLoadConfig(config.ParseFlags())
	cfg.PrintStartupSummary()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ct, err := contract.Load(cfg.ContractPath)
	if err != nil {
		log.Printf("contract: %v", err)
		return errs.ExitCode(errs.Internal)
	}

	var s3 *s3client.Client
	if cfg.Upload {
		s3, err = s3client.New(ctx, s3client.Config{
			Endpoint:        cfg.AWSEndpointS3,
			Region:          cfg.AWSRegion,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
			BucketName:      cfg.AWSBucketName,
			PublicURL:       cfg.AWSPublicURL,
		})
		if err != nil {
			log.Printf("s3: %v", err)
			return errs.ExitCode(errs.ArtifactWriteError)
		}
	}

	runID := verify.NewRunID()
	store := artifacts.New(cfg.ArtifactsDir, runID, s3)
	runner := verify.New(cfg, ct, store)
	defer runner.Close()

	if err := runner.Start(); err != nil {
		log.Printf("browser: %v", err)
		return errs.ExitCode(errs.CodeOf(err))
	}

	report := runner.Run(ctx)

	fmt.Print(report.Summary())
	if report.Passed() {
		fmt.Printf("Verification run %s completed successfully. Artifacts in %s\n", runID, cfg.ArtifactsDir)
	} else if failure, ok := report.FirstFailure(); ok {
		fmt.Printf("Verification run %s failed at %s [%s]: %s\n", runID, failure.Slug, failure.Code, failure.Error)
	}
	return report.ExitCode()
}
