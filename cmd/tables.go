package cmd

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/healthsync/healthsync/internal/config"
	"github.com/healthsync/healthsync/internal/selection"
	"github.com/healthsync/healthsync/internal/source"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List source tables and their inclusion status",
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if cfg.Source.Path == "" {
			return fmt.Errorf("no source database configured (source.path / SQLITE_DB_PATH)")
		}

		include := selection.Default()
		if len(cfg.Tables) > 0 {
			include = selection.FromList(cfg.Tables)
		}

		ctx := context.Background()
		src := source.NewSQLiteReader(config.ExpandHome(cfg.Source.Path))
		if err := src.Connect(ctx); err != nil {
			return fmt.Errorf("opening source database: %w", err)
		}
		defer src.Close()

		tables, err := src.Tables(ctx)
		if err != nil {
			return fmt.Errorf("listing tables: %w", err)
		}

		fmt.Printf("Source tables in %s:\n", cfg.Source.Path)
		for _, t := range tables {
			marker := " "
			if include.Contains(t) {
				marker = "*"
			}
			fmt.Printf("  %s %s\n", marker, t)
		}
		fmt.Println()
		fmt.Println("Tables marked * are in the inclusion set and will be synced.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tablesCmd)
}
