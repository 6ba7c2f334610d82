package cli

import (
	"fmt"

	"github.com/XTHN9RF/Foodify-API/config"
	"github.com/XTHN9RF/Foodify-API/database"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("database_url is required")
		}

		db, err := database.Open(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		return database.Migrate(db)
	},
}
