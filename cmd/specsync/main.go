package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/mitchlabeetch/specsync/internal/appplatform"
	"github.com/mitchlabeetch/specsync/internal/aws"
	"github.com/mitchlabeetch/specsync/internal/config"
	"github.com/mitchlabeetch/specsync/internal/manifest"
	"github.com/mitchlabeetch/specsync/internal/updater"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		fmt.Fprintln(os.Stderr, "Set DO_TOKEN and DO_APP_ID, or pass -token and -app-id")
		os.Exit(1)
	}

	logLevel := slog.LevelInfo
	if cfg.Debug {
		logLevel = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: logLevel}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, opts)))

	m := manifest.Default()
	if cfg.ManifestPath != "" {
		m, err = manifest.Load(cfg.ManifestPath)
		if err != nil {
			slog.Error("failed to load env manifest", "path", cfg.ManifestPath, "error", err)
			os.Exit(1)
		}
	}

	target := cfg.Service
	if target == "" {
		target = m.Service
	}
	if target == "" {
		slog.Error("no target service, set -service or the manifest's service field")
		os.Exit(1)
	}

	var secrets manifest.SecretFetcher
	if m.HasSecretRefs() {
		awsCfg, err := aws.LoadConfig(ctx)
		if err != nil {
			slog.Error("failed to load aws config", "error", err)
			os.Exit(1)
		}
		secrets = aws.NewSecretsManagerClient(awsCfg)
	}

	desired, err := manifest.NewResolver(secrets).Resolve(ctx, m)
	if err != nil {
		slog.Error("failed to resolve env entries", "error", err)
		os.Exit(1)
	}

	client := appplatform.NewClient(cfg.Token,
		appplatform.WithBaseURL(cfg.BaseURL),
		appplatform.WithTimeout(cfg.Timeout),
	)

	if err := updater.New(client, target, cfg.DryRun).Run(ctx, cfg.AppID, desired); err != nil {
		slog.Error("sync failed", "error", err)
		os.Exit(1)
	}
}
