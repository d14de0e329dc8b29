package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	logLevel string
	version  = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "healthsync",
	Short: "Healthsync — one-way SQLite to PostgreSQL table sync",
	Long: `Healthsync copies rows from an exported health-tracking SQLite database
into a PostgreSQL database, inferring the destination schema from the source
and skipping rows that are already present. Re-running it against an updated
export accumulates only the new rows.`,
}

func Execute() {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.healthsync/healthsync.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
}
