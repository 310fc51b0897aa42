package db

import (
	"context"
	"errors"
	"fmt"
)

// ErrDateMismatch is returned when an allocation is saved under a different date
var ErrDateMismatch = errors.New("allocation date does not match save date")

// TheatreStore defines the read operations for theatres and their schedules
type TheatreStore interface {
	GetTheatres(ctx context.Context, hospitalID string) ([]Theatre, error)
	LoadCalendarConfigurations(ctx context.Context, start, end string, theatreIDs []string) ([]DayConfiguration, error)
	GetTheatreListsByDateRange(ctx context.Context, start, end string) ([]TheatreList, error)
}

// StaffStore defines the read operations for staff and manual staffing records
type StaffStore interface {
	GetStaff(ctx context.Context, hospitalID string) ([]Staff, error)
	GetStaffingRecords(ctx context.Context, date string) ([]StaffingRecord, error)
}

// AllocationStore defines the persistence operations for auto-roster allocations
type AllocationStore interface {
	// SaveAutoRosterAllocations replaces every allocation stored for date with the given set.
	// The write is atomic: on error the previously stored allocations for date are unchanged.
	SaveAutoRosterAllocations(ctx context.Context, date string, allocations []AllocationRecord) error

	GetAllocationsByDate(ctx context.Context, date string) ([]AllocationRecord, error)
}

// Database defines the interface for all database operations.
// Both postgres.DB and sqlite.DB implement this interface.
type Database interface {
	TheatreStore
	StaffStore
	AllocationStore
	Close() error
}

// CheckAllocationDates returns ErrDateMismatch if any allocation is not dated date
func CheckAllocationDates(date string, allocations []AllocationRecord) error {
	for _, allocation := range allocations {
		if allocation.Date != date {
			return fmt.Errorf("%w: %s is dated %s, expected %s", ErrDateMismatch, allocation.SessionID, allocation.Date, date)
		}
	}
	return nil
}

// Seeder loads reference data into a store
type Seeder interface {
	InsertTheatres(ctx context.Context, theatres []Theatre) error
	InsertDayConfigurations(ctx context.Context, configurations []DayConfiguration) error
	InsertTheatreLists(ctx context.Context, lists []TheatreList) error
	InsertStaff(ctx context.Context, staff []Staff) error
	InsertStaffingRecords(ctx context.Context, records []StaffingRecord) error
}
