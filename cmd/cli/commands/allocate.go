package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/theatre-roster/pkg/core/services"
)

// AllocateCmd creates the allocate command
func AllocateCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "allocate <start_date> [end_date]",
		Short: "Auto-roster staff into theatre sessions for a date range",
		Long: `Calculate requirements and allocate staff for every date from start to end (inclusive).
Each date is saved before the next is solved; re-running a date replaces its allocations.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start := args[0]
			end := start
			if len(args) > 1 {
				end = args[1]
			}
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			quiet, _ := cmd.Flags().GetBool("quiet")

			app.Logger.Debug("allocate command",
				zap.String("start", start),
				zap.String("end", end),
				zap.Bool("dry_run", dryRun))

			result, err := services.GenerateAutoRoster(
				app.Ctx,
				app.Database,
				app.Cfg,
				app.Logger,
				start,
				end,
				services.AutoRosterOptions{DryRun: dryRun},
			)
			if result != nil {
				printAutoRosterResult(result, quiet)
			}
			if err != nil {
				var persistErr *services.PersistenceError
				if errors.As(err, &persistErr) {
					fmt.Printf("%s❌ Saving %s failed.%s\n", colorRed, persistErr.Date, colorReset)
					if len(persistErr.SucceededDates) > 0 {
						fmt.Printf("Committed before the failure: %s\n", strings.Join(persistErr.SucceededDates, ", "))
					}
					fmt.Println("Re-run from the failed date to continue.")
					fmt.Println()
				}
				return fmt.Errorf("allocation failed: %w", err)
			}

			if dryRun {
				fmt.Println("💡 This was a dry run. Use without --dry-run to save allocations.")
			} else {
				fmt.Println("✅ Allocations have been saved to the database.")
			}
			return nil
		},
	}

	cmd.Flags().Bool("dry-run", false, "Allocate without saving to database")
	cmd.Flags().BoolP("quiet", "q", false, "Only print the per-date totals")

	return cmd
}

func printAutoRosterResult(result *services.AutoRosterResult, quiet bool) {
	fmt.Printf("\n🎯 Auto-Roster Results\n\n")
	fmt.Printf("Run ID:  %s\n", result.RunID)
	fmt.Printf("Range:   %s to %s\n", result.Start, result.End)
	if result.DryRun {
		fmt.Printf("Mode:    🧪 DRY RUN (not saved)\n")
	}
	if len(result.SkippedStaff) > 0 {
		fmt.Printf("%sSkipped staff without a role: %s%s\n", colorYellow, strings.Join(result.SkippedStaff, ", "), colorReset)
	}
	fmt.Println()

	for _, report := range result.Dates {
		color := fillColor(report.Assigned, report.Requested, colorGreen, colorYellow, colorRed)
		fmt.Printf("%s📅 %s%s  %s%d/%d (%s)%s",
			colorBold, report.Date, colorReset,
			color, report.Assigned, report.Requested, formatPercent(report.FillRate), colorReset)
		if report.Persisted {
			fmt.Printf("  saved")
		}
		fmt.Println()

		if !quiet {
			fmt.Println()
			printSessionTable(report.Sessions)
			fmt.Println()
		}

		if len(report.ValidationErrors) > 0 {
			fmt.Printf("⚠️  Validation Errors (%d):\n", len(report.ValidationErrors))
			for _, verr := range report.ValidationErrors {
				fmt.Printf("  • %s %s - %s: %s\n", verr.SessionID, verr.Role, verr.Check, verr.Description)
			}
			fmt.Println()
		}

		if !quiet && len(report.Unfilled) > 0 {
			fmt.Printf("ℹ️  Unfilled places (%d):\n", len(report.Unfilled))
			for _, slot := range report.Unfilled {
				reason := "no candidates"
				if len(slot.Reasons) > 0 {
					reason = strings.Join(slot.Reasons, "; ")
				}
				fmt.Printf("  • %s %s #%d: %s\n", slot.SessionID, slot.Role, slot.Unit+1, reason)
			}
			fmt.Println()
		}
	}

	requested := result.Requested()
	assigned := result.Assigned()
	rate := 1.0
	if requested > 0 {
		rate = float64(assigned) / float64(requested)
	}
	fmt.Printf("Total: %d/%d places filled (%s) across %d dates\n\n", assigned, requested, formatPercent(rate), len(result.Dates))
}
