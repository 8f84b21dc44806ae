package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"

	"github.com/dmitrijs2005/backupsync/internal/backup"
	"github.com/dmitrijs2005/backupsync/internal/cli"
	"github.com/dmitrijs2005/backupsync/internal/config"
	"github.com/dmitrijs2005/backupsync/internal/logging"
	"github.com/dmitrijs2005/backupsync/internal/remote/s3store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "backupsync: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.LoadConfig()

	log := logging.NewSlogLogger(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: time.Kitchen,
	})))

	if cfg.S3SecretKey == "" {
		secret, err := cli.GetSecretKey(os.Stderr)
		if err != nil {
			return fmt.Errorf("reading secret key: %w", err)
		}
		cfg.S3SecretKey = secret
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store, err := s3store.New(ctx, s3store.Options{
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		Bucket:    cfg.S3Bucket,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		KeyPrefix: cfg.KeyPrefix,
	}, log)
	if err != nil {
		return fmt.Errorf("connecting to record store: %w", err)
	}

	client := backup.NewClient(store, log)
	app := cli.NewApp(cfg, client, log, os.Stdout)
	return app.Run(ctx, cli.Positional(os.Args[1:]))
}
