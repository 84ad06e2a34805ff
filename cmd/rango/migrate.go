package main

import (
	"github.com/spf13/cobra"

	"rango/internal/config"
	"rango/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	db, err := database.Connect(cfg.DBDriver, cfg.DSN())
	if err != nil {
		return err
	}
	defer db.Close()
	return database.Migrate(db, cfg.DBDriver)
}
