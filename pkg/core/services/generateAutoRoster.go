package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/jakechorley/theatre-roster/internal/config"
	"github.com/jakechorley/theatre-roster/pkg/core/allocator"
	"github.com/jakechorley/theatre-roster/pkg/core/allocator/criteria"
	"github.com/jakechorley/theatre-roster/pkg/core/model"
	"github.com/jakechorley/theatre-roster/pkg/core/requirements"
	"github.com/jakechorley/theatre-roster/pkg/db"
)

// AutoRosterStore defines the database operations needed for generating an auto-roster
type AutoRosterStore interface {
	db.TheatreStore
	GetStaff(ctx context.Context, hospitalID string) ([]db.Staff, error)
	SaveAutoRosterAllocations(ctx context.Context, date string, allocations []db.AllocationRecord) error
}

// AutoRosterOptions controls a generation run
type AutoRosterOptions struct {
	// DryRun solves every date without writing allocations
	DryRun bool
}

// DateReport is the outcome of one date within a run
type DateReport struct {
	Date             string
	Sessions         []model.SessionAllocation
	Unfilled         []allocator.UnfilledSlot
	ValidationErrors []allocator.AllocationValidationError
	Requested        int
	Assigned         int
	FillRate         float64
	Persisted        bool
}

// AutoRosterResult is the outcome of a generation run
type AutoRosterResult struct {
	RunID  string
	Start  string
	End    string
	DryRun bool
	Dates  []DateReport

	// SkippedStaff lists staff records that could not become candidates
	SkippedStaff []string
}

// PersistedDates returns the dates whose allocations were written, in order
func (r *AutoRosterResult) PersistedDates() []string {
	dates := []string{}
	for _, report := range r.Dates {
		if report.Persisted {
			dates = append(dates, report.Date)
		}
	}
	return dates
}

// Requested returns the total requested headcount across the run
func (r *AutoRosterResult) Requested() int {
	total := 0
	for _, report := range r.Dates {
		total += report.Requested
	}
	return total
}

// Assigned returns the total number of places filled across the run
func (r *AutoRosterResult) Assigned() int {
	total := 0
	for _, report := range r.Dates {
		total += report.Assigned
	}
	return total
}

// PersistenceError reports a failed write part way through a run.
// Dates before Date were written and remain committed; later dates were not attempted.
type PersistenceError struct {
	Date           string
	SucceededDates []string
	Err            error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to persist allocations for %s (%d earlier dates committed): %v", e.Date, len(e.SucceededDates), e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// GenerateAutoRoster allocates staff to every staffable location for each date in
// [start, end]. Each date is solved and then persisted before the next is started,
// so a failure leaves earlier dates committed. On failure the partial result is
// returned together with the error.
func GenerateAutoRoster(
	ctx context.Context,
	store AutoRosterStore,
	cfg *config.Config,
	logger *zap.Logger,
	start, end string,
	opts AutoRosterOptions,
) (*AutoRosterResult, error) {
	logger.Debug("Starting auto-roster generation",
		zap.String("start", start),
		zap.String("end", end),
		zap.Bool("dry_run", opts.DryRun))

	dates, startTime, endTime, err := enumerateDates(start, end)
	if err != nil {
		return nil, err
	}

	calculator, err := buildCalculator(cfg, startTime, endTime, logger)
	if err != nil {
		return nil, err
	}
	if err := calculator.CheckConfigured(); err != nil {
		return nil, fmt.Errorf("cannot generate auto-roster: %w", err)
	}

	settings, err := scoringSettings(cfg)
	if err != nil {
		return nil, err
	}

	staff, err := store.GetStaff(ctx, cfg.HospitalID)
	if err != nil {
		return nil, fmt.Errorf("failed to get staff: %w", err)
	}
	active := filterActiveStaff(staff)
	candidates, skipped := convertStaff(active, calculator.ResolveSpecialty)
	if len(skipped) > 0 {
		logger.Warn("Skipping staff without a recognised role",
			zap.Int("count", len(skipped)),
			zap.Strings("staff", skipped))
	}

	pool, err := allocator.NewStaffPool(candidates)
	if err != nil {
		return nil, fmt.Errorf("failed to build candidate pool: %w", err)
	}
	logger.Debug("Built candidate pool",
		zap.Int("staff", len(staff)),
		zap.Int("active", len(active)),
		zap.Int("candidates", len(candidates)))

	alloc, err := allocator.NewAllocator(allocator.AllocationConfig{
		Pool:     pool,
		Criteria: criteria.Standard(settings),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create allocator: %w", err)
	}

	result := &AutoRosterResult{
		RunID:        uuid.New().String(),
		Start:        start,
		End:          end,
		DryRun:       opts.DryRun,
		Dates:        make([]DateReport, 0, len(dates)),
		SkippedStaff: skipped,
	}
	createdAt := time.Now().UTC()

	for _, date := range dates {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("auto-roster cancelled before %s: %w", date, err)
		}

		locations, err := loadLocations(ctx, store, calculator, cfg.HospitalID, date)
		if err != nil {
			return result, err
		}

		outcome, err := alloc.AllocateDate(date, locations)
		if err != nil {
			return result, fmt.Errorf("failed to allocate %s: %w", date, err)
		}

		report := DateReport{
			Date:             date,
			Sessions:         outcome.Sessions,
			Unfilled:         outcome.Unfilled,
			ValidationErrors: outcome.ValidationErrors,
			Requested:        outcome.Requested(),
			Assigned:         outcome.Assigned(),
			FillRate:         outcome.FillRate(),
		}

		logger.Info("Allocated date",
			zap.String("date", date),
			zap.Int("sessions", len(outcome.Sessions)),
			zap.Int("requested", report.Requested),
			zap.Int("assigned", report.Assigned),
			zap.Int("unfilled", len(outcome.Unfilled)))

		if len(outcome.ValidationErrors) > 0 {
			for _, validationErr := range outcome.ValidationErrors {
				logger.Error("Allocation validation failed",
					zap.String("session_id", validationErr.SessionID),
					zap.String("role", validationErr.Role.String()),
					zap.String("check", validationErr.Check),
					zap.String("description", validationErr.Description))
			}
			result.Dates = append(result.Dates, report)
			return result, fmt.Errorf("allocations for %s failed validation with %d errors", date, len(outcome.ValidationErrors))
		}

		if !opts.DryRun {
			records := make([]db.AllocationRecord, len(outcome.Sessions))
			for i, session := range outcome.Sessions {
				records[i] = db.NewAllocationRecord(session, result.RunID, createdAt)
			}

			if err := store.SaveAutoRosterAllocations(ctx, date, records); err != nil {
				result.Dates = append(result.Dates, report)
				logger.Error("Failed to persist allocations",
					zap.String("date", date),
					zap.Strings("committed_dates", result.PersistedDates()),
					zap.Error(err))
				return result, &PersistenceError{
					Date:           date,
					SucceededDates: result.PersistedDates(),
					Err:            err,
				}
			}
			report.Persisted = true
			logger.Debug("Persisted allocations", zap.String("date", date), zap.Int("sessions", len(records)))
		}

		result.Dates = append(result.Dates, report)
	}

	logger.Info("Auto-roster generation complete",
		zap.String("run_id", result.RunID),
		zap.Int("dates", len(result.Dates)),
		zap.Int("requested", result.Requested()),
		zap.Int("assigned", result.Assigned()),
		zap.Bool("dry_run", opts.DryRun))

	return result, nil
}

// loadLocations reads a date's theatres, calendar and lists and builds its requirement entries
func loadLocations(ctx context.Context, store db.TheatreStore, calculator *requirements.Calculator, hospitalID, date string) ([]requirements.LocationRequirements, error) {
	theatreRecords, err := store.GetTheatres(ctx, hospitalID)
	if err != nil {
		return nil, fmt.Errorf("failed to get theatres: %w", err)
	}
	theatres := convertTheatres(theatreRecords)

	theatreIDs := make([]string, len(theatres))
	for i, t := range theatres {
		theatreIDs[i] = t.ID
	}

	calendar, err := store.LoadCalendarConfigurations(ctx, date, date, theatreIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load calendar for %s: %w", date, err)
	}

	lists, err := store.GetTheatreListsByDateRange(ctx, date, date)
	if err != nil {
		return nil, fmt.Errorf("failed to get theatre lists for %s: %w", date, err)
	}

	locations, err := calculator.BuildLocations(date, theatres, convertCalendar(calendar), convertTheatreLists(lists))
	if err != nil {
		return nil, fmt.Errorf("failed to build requirements for %s: %w", date, err)
	}
	return locations, nil
}

// enumerateDates expands [start, end] into its daily dates
func enumerateDates(start, end string) ([]string, time.Time, time.Time, error) {
	startTime, err := time.Parse(model.DateLayout, start)
	if err != nil {
		return nil, time.Time{}, time.Time{}, fmt.Errorf("invalid start date %q: %w", start, err)
	}
	endTime, err := time.Parse(model.DateLayout, end)
	if err != nil {
		return nil, time.Time{}, time.Time{}, fmt.Errorf("invalid end date %q: %w", end, err)
	}
	if endTime.Before(startTime) {
		return nil, time.Time{}, time.Time{}, fmt.Errorf("end date %s is before start date %s", end, start)
	}

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:    rrule.DAILY,
		Dtstart: startTime,
		Until:   endTime,
	})
	if err != nil {
		return nil, time.Time{}, time.Time{}, fmt.Errorf("failed to build date range: %w", err)
	}

	occurrences := rule.All()
	dates := make([]string, len(occurrences))
	for i, occurrence := range occurrences {
		dates[i] = occurrence.Format(model.DateLayout)
	}
	return dates, startTime, endTime, nil
}
