package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"NewsIngestor/internal/app"
	"NewsIngestor/internal/config"
	"NewsIngestor/internal/logging"
)

var errNothingCreated = errors.New("no posts created")

func main() {
	var configPath string

	root := &cobra.Command{
		Use:           "newsingestor",
		Short:         "Ingest RSS feeds into published posts",
		Long:          "Reads configured feeds, extracts article text, composes posts and writes them to the shared content store.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), configPath, false)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML config (default $NEWSINGESTOR_CONFIG)")

	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Apply the bundled schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), configPath, true)
		},
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := root.ExecuteContext(ctx)
	stop()

	if err != nil {
		if !errors.Is(err, errNothingCreated) {
			fmt.Fprintln(os.Stderr, "newsingestor:", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string, migrateOnly bool) error {
	cfg := config.Load(configPath)

	logger, closeLog, err := logging.Open(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	logger = logger.With("run_id", uuid.NewString())

	if migrateOnly {
		if err := app.Migrate(ctx, cfg, logger); err != nil {
			logger.Error("migration failed", "error", err)
			return err
		}
		return nil
	}

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		return err
	}
	defer func() {
		if err := application.Close(); err != nil {
			logger.Warn("close store", "error", err)
		}
	}()

	report, err := application.Run(ctx)
	if err != nil {
		logger.Warn("run stopped early", "error", err)
	}
	if report.Created == 0 {
		logger.Warn("no posts created", "report", report)
		return errNothingCreated
	}

	logger.Info("ingestion complete", "created", report.Created, "total_posts", report.TotalPosts)
	return nil
}
