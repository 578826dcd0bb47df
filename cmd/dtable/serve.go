package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/bklybor/decision-table/pkg/config"
	"github.com/bklybor/decision-table/pkg/journal"
	"github.com/bklybor/decision-table/pkg/logging"
	"github.com/bklybor/decision-table/pkg/metrics"
	"github.com/bklybor/decision-table/pkg/registry"
)

var serveFlags struct {
	tablesDir string
	logLevel  string
	dryRun    bool
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the table service",
	Long: `Run the decision table service.

The service loads every table file from the configured directory,
optionally watches the directory for changes, journals evaluations, and
exposes Prometheus metrics.

Examples:
  # Start with default config
  dtable serve

  # Start with custom config
  dtable serve --config /etc/dtable/config.yaml

  # Override the tables directory
  dtable serve --tables ./tables

  # Validate config without starting
  dtable serve --dry-run`,
	RunE: runService,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveFlags.tablesDir, "tables", "t", "", "override tables directory")
	serveCmd.Flags().StringVar(&serveFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	serveCmd.Flags().BoolVar(&serveFlags.dryRun, "dry-run", false, "validate config without starting")
}

func runService(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadWithEnvOverrides(cfgFile)
	if err != nil {
		return err
	}

	if serveFlags.tablesDir != "" {
		cfg.Tables.Dir = serveFlags.tablesDir
	}
	if serveFlags.logLevel != "" {
		cfg.Logging.Level = serveFlags.logLevel
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}

	if serveFlags.dryRun {
		fmt.Println("✓ Configuration valid")
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var opts []registry.Option

	var m *metrics.DecisionMetrics
	if cfg.Metrics.Enabled {
		m = metrics.New(&metrics.Config{Namespace: cfg.Metrics.Namespace})
		opts = append(opts, registry.WithMetrics(m))
	}

	var (
		storage  journal.Storage
		recorder *journal.Recorder
	)
	if cfg.Journal.Enabled {
		storage, err = openJournalStorage(cfg)
		if err != nil {
			return err
		}
		defer storage.Close()

		recorder = journal.NewRecorder(storage, &journal.RecorderConfig{
			Enabled:      true,
			AsyncBuffer:  cfg.Journal.AsyncBuffer,
			WriteTimeout: cfg.Journal.WriteTimeout,
		}, logger)
		defer recorder.Close()

		opts = append(opts, registry.WithRecorder(recorder))
	}

	reg, err := registry.New(ctx, &registry.Config{
		Dir:              cfg.Tables.Dir,
		DebounceInterval: cfg.Tables.DebounceInterval,
		MaxFileSize:      cfg.Tables.MaxFileSize,
	}, logger, opts...)
	if err != nil {
		return err
	}
	defer reg.Close()

	logger.Info("service started",
		"tables", len(reg.Names()),
		"watch", cfg.Tables.Watch,
		"journal", cfg.Journal.Enabled,
		"metrics", cfg.Metrics.Enabled,
	)

	errCh := make(chan error, 3)

	if cfg.Tables.Watch {
		go func() {
			errCh <- reg.Watch(ctx)
		}()
	}

	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle("/metrics", m.Handler())
		metricsServer = &http.Server{
			Addr:         cfg.Metrics.ListenAddress,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		}
		go func() {
			logger.Info("metrics endpoint listening", "address", cfg.Metrics.ListenAddress)
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errCh <- err
			}
		}()
	}

	if cfg.Journal.Enabled && cfg.Journal.PruneSchedule != "" {
		pruner := journal.NewPruner(storage, &journal.RetentionConfig{
			RetentionDays: cfg.Journal.RetentionDays,
			MaxRecords:    cfg.Journal.MaxRecords,
			PruneSchedule: cfg.Journal.PruneSchedule,
		}, logger)

		scheduler := journal.NewScheduler(pruner)
		if err := scheduler.Start(ctx); err != nil {
			return err
		}
		defer scheduler.Stop()
	}

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-errCh:
		if err != nil {
			logger.Error("service component failed", "error", err)
		}
		stop()
	}

	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("metrics server shutdown failed", "error", err)
		}
	}

	return nil
}

// openJournalStorage opens the configured journal backend.
func openJournalStorage(cfg *config.Config) (journal.Storage, error) {
	switch cfg.Journal.Backend {
	case "memory":
		return journal.NewMemory(), nil
	case "sqlite":
		if err := os.MkdirAll(filepath.Dir(cfg.Journal.SQLitePath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create journal directory: %w", err)
		}
		sqliteCfg := journal.DefaultSQLiteConfig()
		sqliteCfg.Path = cfg.Journal.SQLitePath
		return journal.NewSQLite(sqliteCfg)
	default:
		return nil, fmt.Errorf("unknown journal backend %q", cfg.Journal.Backend)
	}
}
