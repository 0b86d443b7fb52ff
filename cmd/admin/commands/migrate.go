package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Run the migrations embedded in the binary.

Subcommands:
  up       - Apply pending migrations
  down     - Roll back the last migration
  goto     - Migrate up or down to a specific version
  version  - Show the current schema version`,
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, _, err := connect()
		if err != nil {
			return err
		}
		defer db.Close()

		return db.RunMigrations()
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the last migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, _, err := connect()
		if err != nil {
			return err
		}
		defer db.Close()

		return db.MigrateDown()
	},
}

var migrateGotoCmd = &cobra.Command{
	Use:   "goto <version>",
	Short: "Migrate to a specific version",
	Long: `Migrate up or down until the schema is at the given version.

Examples:
  nc-news-admin migrate goto 2     # articles exist, comments do not`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		version, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid version %q: %w", args[0], err)
		}

		_, db, _, err := connect()
		if err != nil {
			return err
		}
		defer db.Close()

		return db.MigrateToVersion(uint(version))
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the current schema version",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, _, err := connect()
		if err != nil {
			return err
		}
		defer db.Close()

		version, dirty, err := db.MigrationVersion()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %t)\n", version, dirty)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateGotoCmd, migrateVersionCmd)
}
