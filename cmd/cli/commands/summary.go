package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/theatre-roster/pkg/core/services"
	"github.com/jakechorley/theatre-roster/pkg/core/summary"
)

// SummaryCmd creates the summary command
func SummaryCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary <date>",
		Short: "Show staff totals by role and shift for a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date := args[0]
			asJSON, _ := cmd.Flags().GetBool("json")

			app.Logger.Debug("summary command", zap.String("date", date), zap.Bool("json", asJSON))

			result, err := services.DailySummary(app.Ctx, app.Database, app.Logger, date)
			if err != nil {
				return err
			}

			if asJSON {
				out, err := json.MarshalIndent(result, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to encode summary: %w", err)
				}
				fmt.Println(string(out))
				return nil
			}

			printSummary(result)
			return nil
		},
	}

	cmd.Flags().Bool("json", false, "Print the summary as JSON")

	return cmd
}

func printSummary(s *summary.Summary) {
	fmt.Printf("\n📊 Staffing Summary for %s\n\n", s.Date)

	if len(s.Roles) == 0 {
		fmt.Println("No allocations or staffing records for this date.")
		return
	}

	fmt.Printf("%s%-24s%8s%10s%8s%8s%s\n", colorBold, "Role", "Day", "Long Day", "Night", "Total", colorReset)
	for _, role := range s.Roles {
		fmt.Printf("%-24s%8d%10d%8d%8d\n", role.Role, role.Shifts.Day, role.Shifts.LongDay, role.Shifts.Night, role.Total)
	}
	fmt.Printf("%s%-24s%34d%s\n\n", colorBold, "Total", s.Total, colorReset)
}
