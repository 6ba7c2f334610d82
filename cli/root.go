package cli

import (
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "foodify",
	Short: "Foodify shop API",
	Long:  "Foodify serves the catalog, cart and order API and manages its database schema",

	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "foodify.yml", "path to the YAML config file")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}
