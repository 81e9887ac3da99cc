package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/troovstudio/troov-backend/internal/app"
	"github.com/troovstudio/troov-backend/internal/platform/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := app.LoadConfig(configPath)
		if err != nil {
			return err
		}
		log, err := logger.New(cfg.Log.Mode)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer log.Sync()

		store, err := app.OpenDatabase(log, cfg)
		if err != nil {
			return err
		}
		defer store.Close()
		log.Info("Schema up to date", "driver", store.Driver())
		return nil
	},
}
