package cmd

import (
	"github.com/marwanedjibo1-droid/facturio/internal/db"
	"github.com/marwanedjibo1-droid/facturio/internal/logger"
	"github.com/spf13/cobra"
)

var useSQLMigrations bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.WithComponent("migrate")

		if useSQLMigrations {
			// Versioned SQL migrations, postgres deployments only.
			if err := db.MigrateSQL(cfg.Database.DSN, cfg.App.MigrationsDir); err != nil {
				return err
			}
			log.Info().Str("dir", cfg.App.MigrationsDir).Msg("sql migrations completed")
			return nil
		}

		conn, err := db.Connect(cfg.Database)
		if err != nil {
			return err
		}
		if err := db.Migrate(conn); err != nil {
			return err
		}
		log.Info().Msg("migrations completed successfully")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed default data and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.WithComponent("seed")

		conn, err := db.Connect(cfg.Database)
		if err != nil {
			return err
		}
		if err := db.Migrate(conn); err != nil {
			return err
		}
		if err := db.Seed(conn); err != nil {
			return err
		}
		log.Info().Msg("seeding completed successfully")
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&useSQLMigrations, "sql", false, "apply versioned SQL migrations via golang-migrate (postgres only)")
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}
