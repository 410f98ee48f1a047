package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/rkap/internal/config"
	"github.com/MrJamesThe3rd/rkap/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		if err := database.Migrate(cfg.ConnectionString()); err != nil {
			return err
		}

		slog.Info("database is up to date", "db", cfg.DB.Name)

		return nil
	},
}
