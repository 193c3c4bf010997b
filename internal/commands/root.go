// Package commands implements the bookctl administrative CLI.
package commands

import (
	"database/sql"
	"fmt"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/dmatsui/bookkeeping-service/internal/config"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bookctl",
		Short: "Bookkeeping service administration",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newInitDBCommand())
	rootCmd.AddCommand(newSeedCommand())
	rootCmd.AddCommand(newImportCommand())

	return rootCmd
}

// openDB connects to the configured database.
func openDB() (*sql.DB, error) {
	godotenv.Load()
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return db, nil
}
