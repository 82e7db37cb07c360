package main

import (
	"goaltrack/internal/config"
	"goaltrack/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Open the database and apply pending schema migrations",
	Long: `Creates the database file if it does not exist, applies the base
schema, and runs any pending column migrations. The serve command does
this on startup too; migrate exists for running it ahead of a deploy.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		st, err := store.Open(cfg.Database.Path)
		if err != nil {
			return err
		}
		defer st.Close()

		logger.Info("database ready", zap.String("path", cfg.Database.Path))
		return nil
	},
}
