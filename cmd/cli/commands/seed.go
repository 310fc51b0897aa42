package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/theatre-roster/pkg/db"
)

// SeedCmd creates the seed command
func SeedCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <fixture.yaml>",
		Short: "Load theatres, lists, staff and staffing records from a YAML fixture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seeder, ok := app.Database.(db.Seeder)
			if !ok {
				return fmt.Errorf("database driver %q does not support seeding", app.Cfg.Database.Driver)
			}

			seed, err := db.LoadSeedData(args[0])
			if err != nil {
				return err
			}

			app.Logger.Debug("seed command",
				zap.String("path", args[0]),
				zap.Int("theatres", len(seed.Theatres)),
				zap.Int("staff", len(seed.Staff)))

			if err := seed.Apply(app.Ctx, seeder); err != nil {
				return fmt.Errorf("failed to seed database: %w", err)
			}

			fmt.Printf("\n✓ Seeded database from %s\n\n", args[0])
			fmt.Printf("Theatres:           %d\n", len(seed.Theatres))
			fmt.Printf("Day configurations: %d\n", len(seed.DayConfigurations))
			fmt.Printf("Theatre lists:      %d\n", len(seed.TheatreLists))
			fmt.Printf("Staff:              %d\n", len(seed.Staff))
			fmt.Printf("Staffing records:   %d\n\n", len(seed.StaffingRecords))
			return nil
		},
	}
}
