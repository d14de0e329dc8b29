package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/healthsync/healthsync/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a config file interactively",
	Long:  `Walk through prompts to create a healthsync configuration file at ~/.healthsync/healthsync.yaml.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		reader := bufio.NewReader(os.Stdin)

		fmt.Println("Healthsync Configuration Setup")
		fmt.Println("==============================")
		fmt.Println()

		fmt.Println("Source SQLite Database")
		fmt.Println("----------------------")
		sqlitePath := prompt(reader, "Database file path", "")
		fmt.Println()

		fmt.Println("Destination PostgreSQL")
		fmt.Println("----------------------")
		host := prompt(reader, "Host", "localhost")
		portStr := prompt(reader, "Port", "5432")
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("invalid port: %s", portStr)
		}
		database := prompt(reader, "Database name", "")
		username := prompt(reader, "Username", "")
		password := prompt(reader, "Password (or ${ENV:PGPASSWORD})", "${ENV:PGPASSWORD}")
		fmt.Println()

		cfg := &config.Config{
			Version: config.CurrentVersion,
			Source:  config.SourceConfig{Path: sqlitePath},
			Destination: config.DestinationConfig{
				Host:     host,
				Port:     port,
				Database: database,
				Username: username,
				Password: password,
			},
		}

		cfgPath := config.ExpandHome(config.DefaultPath)
		if cfgFile != "" {
			cfgPath = cfgFile
		}

		if err := cfg.Save(cfgPath); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}

		fmt.Printf("Config written to %s\n", cfgPath)
		fmt.Println()
		fmt.Println("Next steps:")
		fmt.Println("  healthsync tables   — List source tables and inclusion status")
		fmt.Println("  healthsync sync     — Run the synchronization")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func prompt(reader *bufio.Reader, label, defaultVal string) string {
	if defaultVal != "" {
		fmt.Printf("  %s [%s]: ", label, defaultVal)
	} else {
		fmt.Printf("  %s: ", label)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return defaultVal
	}
	return input
}
