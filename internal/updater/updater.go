// Package updater runs the fetch, transform, push pipeline once.
package updater

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mitchlabeetch/specsync/internal/appspec"
)

// Platform is the remote side of the pipeline.
type Platform interface {
	GetApp(ctx context.Context, appID string) (*appspec.Spec, error)
	UpdateApp(ctx context.Context, appID string, spec *appspec.Spec) error
}

type Updater struct {
	platform Platform
	target   string
	dryRun   bool
	logger   *slog.Logger
}

func New(platform Platform, target string, dryRun bool) *Updater {
	return &Updater{
		platform: platform,
		target:   target,
		dryRun:   dryRun,
		logger:   slog.Default().With("service", target),
	}
}

// Run fetches the app spec, merges the desired entries into the target
// service's env list, and pushes the spec back. A missing target service is
// not an error; the spec is pushed unchanged, matching a plain re-deploy.
func (u *Updater) Run(ctx context.Context, appID string, desired []appspec.EnvEntry) error {
	u.logger.InfoContext(ctx, "fetching current app spec", "app_id", appID)
	spec, err := u.platform.GetApp(ctx, appID)
	if err != nil {
		return fmt.Errorf("fetch app spec: %w", err)
	}

	matched := false
	for _, svc := range spec.Services {
		if svc.Name != u.target {
			continue
		}
		matched = true
		report := appspec.MergeEnvs(svc, desired)
		for _, key := range report.Added {
			u.logger.InfoContext(ctx, "adding env var", "key", key)
		}
		for _, key := range report.Existing {
			u.logger.InfoContext(ctx, "env var already present", "key", key)
		}
		for _, key := range report.Removed {
			u.logger.InfoContext(ctx, "removing hardcoded env var", "key", key)
		}
		u.logger.InfoContext(ctx, "env list rebuilt", "total", report.Total)
	}
	if !matched {
		u.logger.WarnContext(ctx, "service not found in app spec, pushing spec unchanged")
	}

	if u.dryRun {
		u.logger.InfoContext(ctx, "dry run, skipping update")
		return nil
	}

	u.logger.InfoContext(ctx, "applying update", "app_id", appID)
	if err := u.platform.UpdateApp(ctx, appID, spec); err != nil {
		return fmt.Errorf("apply app spec: %w", err)
	}
	u.logger.InfoContext(ctx, "env vars updated, a new deployment will start automatically")
	return nil
}
