package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vinrisk/vinrisk/internal/platform"
)

func newMigrateCmd() *cobra.Command {
	var databaseURL string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the vehicle_inventory table in Postgres",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if databaseURL == "" {
				databaseURL = os.Getenv("DATABASE_URL")
			}
			if databaseURL == "" {
				return fmt.Errorf("--database-url or DATABASE_URL is required")
			}

			db, err := platform.Open(databaseURL)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := platform.AutoMigrate(db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "Migrations applied.")
			return nil
		},
	}

	cmd.Flags().StringVar(&databaseURL, "database-url", "", "Postgres connection URL (default: $DATABASE_URL)")

	return cmd
}
