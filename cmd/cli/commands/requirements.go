package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/theatre-roster/pkg/core/requirements"
	"github.com/jakechorley/theatre-roster/pkg/core/services"
)

// RequirementsCmd creates the requirements command
func RequirementsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "requirements <date>",
		Short: "Show the staffing requirements for each theatre on a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date := args[0]
			app.Logger.Debug("requirements command", zap.String("date", date))

			locations, err := services.PreviewRequirements(app.Ctx, app.Database, app.Cfg, app.Logger, date)
			if err != nil {
				return err
			}

			fmt.Printf("\n📋 Requirements for %s\n\n", date)
			if len(locations) == 0 {
				fmt.Println("No theatres are staffed on this date.")
				return nil
			}

			for _, location := range locations {
				printLocation(location)
			}

			fmt.Printf("Total requested: %d\n\n", requirements.TotalRequested(locations))
			return nil
		},
	}
}

func printLocation(location requirements.LocationRequirements) {
	header := fmt.Sprintf("%s%s%s (%s)", colorBold, location.Theatre.Name, colorReset, location.Session.SessionType)
	if location.SpecialtyID != "" {
		header += " - " + location.SpecialtyID
	}
	if location.Synthetic {
		header += fmt.Sprintf(" %s[always on]%s", colorDim, colorReset)
	}
	fmt.Println(header)

	if len(location.Procedures) > 0 {
		fmt.Printf("  Procedures: %s\n", strings.Join(location.Procedures, ", "))
	}
	if len(location.Roles) == 0 {
		fmt.Printf("  %sclosed%s\n", colorDim, colorReset)
	}
	for _, role := range location.Roles {
		fmt.Printf("  %-22s %d\n", role.Role, role.Quantity)
	}
	fmt.Println()
}
