package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pantry-backend/internal/platform/config"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "pantry",
	Short: "Food pantry backend: inventory, shelf scanning, volunteer tasks and suggestions",
	Long: `pantry serves the staff dashboard API and the public suggestion form.

Configuration is read from config/config.yaml (override with --config);
secrets come from .env or PANTRY_* environment variables.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "path to config.yaml")

	rootCmd.AddCommand(serveCmd, migrateCmd, accountCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
