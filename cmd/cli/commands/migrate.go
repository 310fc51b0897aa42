package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// MigrateCmd creates the migrate command
func MigrateCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			migrator, ok := app.Database.(Migrator)
			if !ok {
				return fmt.Errorf("database driver %q does not support migrations", app.Cfg.Database.Driver)
			}

			if err := migrator.RunMigrations(app.Ctx); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("\n✓ Database schema is up to date (%s)\n\n", app.Cfg.Database.Driver)
			return nil
		},
	}
}
