package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aevon-lab/stationstats/internal/core/aggregation"
	corecfg "github.com/aevon-lab/stationstats/internal/core/config"
	"github.com/aevon-lab/stationstats/internal/core/storage"
	"github.com/aevon-lab/stationstats/internal/core/storage/postgres"
	"github.com/aevon-lab/stationstats/internal/ingestion"
	"github.com/aevon-lab/stationstats/internal/migrations"
	"github.com/aevon-lab/stationstats/internal/projection"
	"github.com/aevon-lab/stationstats/internal/report"
	"github.com/aevon-lab/stationstats/internal/server"
	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file (optional)")
	inputPath := flag.String("input", "", "Measurements file; overrides input.path")
	flag.Parse()
	if *inputPath == "" && flag.NArg() > 0 {
		*inputPath = flag.Arg(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, *configPath, *inputPath, os.Stdout)
	stop()
	if err != nil {
		var openErr *ingestion.OpenError
		if errors.As(err, &openErr) {
			slog.Error("Failed to open measurements", "path", openErr.Path, "kind", openErr.Kind(), "error", openErr.Err)
		} else {
			slog.Error("stationstats failed", "error", err)
		}
		os.Exit(1)
	}
}

// run executes one aggregation pass and, when configured, persists the run and
// serves the query API until ctx is cancelled. The report goes to stdout unless
// report.output names a file.
func run(ctx context.Context, configPath, inputPath string, stdout io.Writer) error {
	// 1. Load Configuration
	cfg, err := corecfg.Load(configPath, inputPath)
	if err != nil {
		return err
	}

	// 2. Initialize Logger
	slog.SetDefault(newLogger(os.Stderr, cfg.Log))
	slog.Debug("Loaded config", "config", cfg)

	format, err := report.ParseFormat(cfg.Report.Format)
	if err != nil {
		return err
	}

	// 3. Open Measurements
	startedAt := time.Now()
	measurements, err := ingestion.FromFileWithOptions(cfg.Input.Path, ingestion.Options{
		BufferSize: cfg.Input.BufferSize(),
	})
	if err != nil {
		return err
	}
	defer measurements.Close()

	// 4. Aggregate
	readErr := measurements.ReadLines()
	summary := measurements.Summary()
	slog.Info("Aggregated measurements",
		"source", measurements.Name(),
		"stations", measurements.Len(),
		"lines_read", summary.LinesRead,
		"lines_skipped", summary.LinesSkipped,
		"complete", readErr == nil,
		"elapsed", time.Since(startedAt))

	// 5. Emit Report
	rep := measurements.Report()
	if err := writeReport(cfg.Report.Output, stdout, format, rep); err != nil {
		return err
	}

	// 6. Persist Run (optional)
	var store storage.ReportStore
	var health server.HealthChecker
	if cfg.Database.Enabled {
		db, err := postgres.Open(cfg.Database.DSN, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns)
		if err != nil {
			return fmt.Errorf("initialize database: %w", err)
		}
		defer db.Close()

		if err := migrations.RunMigrations(db, cfg.Database.AutoMigrate); err != nil {
			return fmt.Errorf("run database migrations: %w", err)
		}
		if err := postgres.ValidateSchema(ctx, db); err != nil {
			return fmt.Errorf("database schema is not ready: %w", err)
		}

		adapter := postgres.NewReportAdapter(db)
		store, health = adapter, adapter

		run := storage.NewRun(measurements.Name(), startedAt)
		run.FinishedAt = time.Now().UTC()
		run.LinesRead = summary.LinesRead
		run.LinesSkipped = summary.LinesSkipped
		run.Complete = readErr == nil
		run.Report = rep
		if err := store.SaveRun(ctx, run); err != nil {
			return fmt.Errorf("persist report run: %w", err)
		}
		slog.Info("Persisted report run", "run_id", run.ID, "complete", run.Complete)
	}

	if readErr != nil {
		return fmt.Errorf("measurements were not fully read: %w", readErr)
	}

	if !cfg.Server.Enabled {
		return nil
	}

	// 7. Serve Query API (optional)
	projectionSvc := projection.NewService(measurements, store)
	srv := server.New(fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port), health, cfg.Server.Mode)
	projectionSvc.RegisterRoutes(srv.Engine)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gctx)
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}

	slog.Info("Shutdown complete")
	return nil
}

func newLogger(w io.Writer, cfg corecfg.LogConfig) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// writeReport encodes rep to path, or to stdout when path is empty.
func writeReport(path string, stdout io.Writer, format report.Format, rep aggregation.Report) error {
	if path == "" {
		return report.Write(stdout, format, rep)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report output: %w", err)
	}
	if err := report.Write(f, format, rep); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
