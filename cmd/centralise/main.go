// cmd/centralise/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Akih1k0/Multinational-Retail-Data-Centralisation/pkg/clean"
	"github.com/Akih1k0/Multinational-Retail-Data-Centralisation/pkg/config"
	"github.com/Akih1k0/Multinational-Retail-Data-Centralisation/pkg/extract"
	"github.com/Akih1k0/Multinational-Retail-Data-Centralisation/pkg/load"
	"github.com/Akih1k0/Multinational-Retail-Data-Centralisation/pkg/pipeline"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "centralise:", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is fine, the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := buildLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rds, err := extract.NewRDSReader(ctx, cfg.Source)
	if err != nil {
		return fmt.Errorf("failed to connect to source database: %w", err)
	}
	defer rds.Close()

	tables, err := rds.ListTables(ctx)
	if err != nil {
		return fmt.Errorf("failed to list source tables: %w", err)
	}
	logger.Info("Connected to source database", zap.Strings("tables", tables))

	s3, err := extract.NewS3Fetcher(ctx, cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to create object storage client: %w", err)
	}

	loader, err := load.NewLoader(ctx, cfg.Local)
	if err != nil {
		return fmt.Errorf("failed to connect to local database: %w", err)
	}
	defer loader.Close()

	cleaner, err := clean.NewCleaner(logger)
	if err != nil {
		return fmt.Errorf("failed to create cleaner: %w", err)
	}

	p, err := pipeline.NewPipeline(
		rds,
		extract.NewPDFExtractor(),
		extract.NewStoreAPI(cfg.API),
		s3,
		cleaner,
		loader,
		cfg,
		logger,
	)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}

	summary, err := p.Run(ctx)
	if summary != nil {
		logger.Info("Run finished",
			zap.String("summary", summary.String()),
			zap.Strings("failedEntities", summary.FailedJobs))
	}
	if err != nil {
		return err
	}

	return nil
}

// buildLogger constructs the process logger from the configured level
// and format ("json" or "console").
func buildLogger(level, format string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var cfg zap.Config
	if format == "console" {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	return cfg.Build()
}
