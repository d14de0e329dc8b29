package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/healthsync/healthsync/internal/config"
	"github.com/healthsync/healthsync/internal/logging"
	"github.com/healthsync/healthsync/internal/selection"
	"github.com/healthsync/healthsync/internal/source"
	"github.com/healthsync/healthsync/internal/sync"
	"github.com/healthsync/healthsync/internal/target"
	"github.com/healthsync/healthsync/internal/typemap"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Synchronize new rows into the destination",
	Long: `Enumerate every table in the source database and, for each table in the
inclusion set, ensure the destination table exists and insert the rows not
already present. A failure in one table never stops the run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// A .env next to the binary is a complete configuration on its own.
		_ = godotenv.Load()

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if logLevel != "" {
			cfg.Logging.Level = logLevel
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger := logging.Setup(cfg.Logging.Level, cfg.Logging.Directory)
		logger = logger.With("run_id", uuid.NewString())

		tm := typemap.Default()
		if cfg.TypeMapPath != "" {
			tm, err = typemap.LoadYAML(config.ExpandHome(cfg.TypeMapPath))
			if err != nil {
				return fmt.Errorf("loading type map: %w", err)
			}
		}

		include := selection.Default()
		if len(cfg.Tables) > 0 {
			include = selection.FromList(cfg.Tables)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		src := source.NewSQLiteReader(config.ExpandHome(cfg.Source.Path))
		if err := src.Connect(ctx); err != nil {
			logger.Error("failed to open source database", "path", cfg.Source.Path, "error", err)
			return err
		}
		defer src.Close()

		dst := target.NewPostgresOperator(&cfg.Destination)
		if err := dst.Connect(ctx); err != nil {
			logger.Error("failed to connect to PostgreSQL", "error", err)
			return err
		}
		defer dst.Close(ctx)

		logger.Info("starting selective table sync",
			"source", cfg.Source.Path, "tables", include.Names())

		driver := sync.NewDriver(sync.NewSynchronizer(src, dst, tm, include, logger), src, logger)
		outcomes, err := driver.Run(ctx)
		if err != nil {
			logger.Error("sync aborted", "error", err)
			return err
		}

		totals := sync.Summarize(outcomes)
		logger.Info("selective table sync complete",
			"tables", totals.Tables,
			"synced", totals.Synced,
			"filtered", totals.Filtered,
			"errored", totals.Errored,
			"inserted", totals.Inserted,
			"already_present", totals.AlreadyPresent,
			"skipped_malformed", totals.SkippedMalformed)

		// Per-table errors are reported through the log only; the run still
		// exits cleanly.
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
