// Package cmd holds the rkapctl maintenance commands.
package cmd

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/rkap/internal/config"
	"github.com/MrJamesThe3rd/rkap/internal/database"
)

var (
	envFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "rkapctl",
	Short: "Maintenance tasks for the RKAP ledger",
	Long: `rkapctl runs administrative tasks against the RKAP database.

Example:
  rkapctl migrate
  rkapctl ledger check
  rkapctl user create --name "Finance Admin" --email admin@example.com --role admin`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if debug {
			level = slog.LevelDebug
		}

		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", envFile, err)
		}

		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "env file to load before reading configuration")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(ledgerCmd)
	rootCmd.AddCommand(userCmd)
}

func openDB() (*sql.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	return database.New(cfg.ConnectionString())
}
