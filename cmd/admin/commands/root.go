package commands

import (
	"fmt"
	"os"

	"github.com/nc-news-api/internal/config"
	"github.com/nc-news-api/internal/database"
	"github.com/nc-news-api/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	dbURL   string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "nc-news-admin",
	Short: "Operator tooling for the nc-news API database",
	Long: `nc-news-admin manages the nc-news PostgreSQL schema and data.

Commands:
  migrate up|down|goto   - Manage the schema with the embedded migrations
  seed                   - Truncate all tables and load the bundled dataset

Connection settings come from the same environment variables as the server
(DATABASE_URL or DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME).`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", "", "Database connection URL (overrides DATABASE_URL)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
}

// connect loads configuration, applies flag overrides and opens the database
func connect() (*config.Config, *database.DB, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, zerolog.Nop(), fmt.Errorf("failed to load configuration: %w", err)
	}
	if dbURL != "" {
		cfg.Database.URL = dbURL
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	cfg.Log.Format = "pretty"

	log := logger.NewWithWriter(cfg.Log, os.Stderr)

	db, err := database.New(&cfg.Database, log)
	if err != nil {
		return nil, nil, log, err
	}
	return cfg, db, log, nil
}
