package commands

import (
	"fmt"

	"github.com/nc-news-api/internal/repository"
	"github.com/nc-news-api/internal/seed"
	"github.com/spf13/cobra"
)

var skipMigrate bool

// seedCmd reloads the bundled dataset
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Truncate all tables and load the bundled dataset",
	Long: `Truncate topics, users, articles and comments, reset their id sequences
and load the dataset embedded in the binary. Pending migrations are applied
first unless --skip-migrate is set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, log, err := connect()
		if err != nil {
			return err
		}
		defer db.Close()

		if !skipMigrate {
			if err := db.RunMigrations(); err != nil {
				return err
			}
		}

		ds, err := seed.Default()
		if err != nil {
			return err
		}

		result, err := seed.NewSeeder(db, repository.New(db), log).Run(cmd.Context(), ds)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d topics, %d users, %d articles, %d comments\n",
			result.Topics, result.Users, result.Articles, result.Comments)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "Do not apply pending migrations first")
}
