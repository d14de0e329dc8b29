package cmd

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/healthsync/healthsync/internal/config"
	"github.com/healthsync/healthsync/internal/selection"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `View and validate the healthsync configuration.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current config (secrets masked)",
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		tables := cfg.Tables
		if len(tables) == 0 {
			tables = selection.DefaultTables
		}

		fmt.Println("Current configuration:")
		fmt.Println()
		fmt.Printf("  Source:\n")
		fmt.Printf("    Path:           %s\n", cfg.Source.Path)
		fmt.Println()
		fmt.Printf("  Destination:\n")
		fmt.Printf("    Host:           %s\n", cfg.Destination.Host)
		fmt.Printf("    Port:           %d\n", cfg.Destination.Port)
		fmt.Printf("    Database:       %s\n", cfg.Destination.Database)
		fmt.Printf("    Username:       %s\n", cfg.Destination.Username)
		fmt.Printf("    Password:       %s\n", maskSecret(cfg.Destination.Password))
		fmt.Println()
		fmt.Printf("  Tables:           %s\n", strings.Join(tables, ", "))
		fmt.Printf("  Logging:          %s, %s\n", cfg.Logging.Level, cfg.Logging.Directory)

		return nil
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("config invalid: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		fmt.Println("Configuration is valid.")
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configValidateCmd)
	rootCmd.AddCommand(configCmd)
}

func maskSecret(s string) string {
	if s == "" {
		return "(not set)"
	}
	if strings.HasPrefix(s, "${ENV:") {
		return s
	}
	return "********"
}
