package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/theatre-roster/pkg/core/model"
	"github.com/jakechorley/theatre-roster/pkg/db"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	store, err := NewDB(filepath.Join(t.TempDir(), "roster.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	require.NoError(t, store.RunMigrations(context.Background()))
	return store
}

func allocation(theatreID, date string, staffIDs ...string) db.AllocationRecord {
	assigned := make([]model.AssignedStaff, len(staffIDs))
	for i, id := range staffIDs {
		assigned[i] = model.AssignedStaff{StaffID: id, DisplayName: "Staff " + id, Band: 5}
	}
	return db.AllocationRecord{
		SessionID:   model.SessionID(theatreID, date),
		TheatreID:   theatreID,
		Date:        date,
		SessionType: model.SessionDay,
		RunID:       "run-1",
		Roles: []model.RoleAllocation{
			{Role: model.RoleScrubNP, Requested: 2, Assigned: assigned},
		},
	}
}

func TestTheatres_OrderedBySortOrder(t *testing.T) {
	store := newTestDB(t)
	ctx := context.Background()
	lat, lng := 51.5186, -0.0590

	require.NoError(t, store.InsertTheatres(ctx, []db.Theatre{
		{ID: "main-2", HospitalID: "rlh", Name: "Main 2", Type: model.TheatreTypeElective, SortOrder: 2},
		{ID: "emerg", HospitalID: "rlh", Name: "Emergency", Type: model.TheatreTypeEmergency, AlwaysOn: true, SortOrder: 3},
		{ID: "main-1", HospitalID: "rlh", Name: "Main 1", Type: model.TheatreTypeElective, SortOrder: 1, Lat: &lat, Lng: &lng},
		{ID: "other", HospitalID: "whipps", Name: "Other", Type: model.TheatreTypeElective},
	}))

	theatres, err := store.GetTheatres(ctx, "rlh")
	require.NoError(t, err)

	require.Len(t, theatres, 3)
	assert.Equal(t, "main-1", theatres[0].ID)
	assert.Equal(t, "main-2", theatres[1].ID)
	assert.Equal(t, "emerg", theatres[2].ID)
	assert.True(t, theatres[2].AlwaysOn)
	require.NotNil(t, theatres[0].Lat)
	assert.Equal(t, lat, *theatres[0].Lat)
	assert.Nil(t, theatres[1].Lat)
}

func TestCalendarAndLists_FilteredByRange(t *testing.T) {
	store := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, store.InsertDayConfigurations(ctx, []db.DayConfiguration{
		{TheatreID: "main-1", Date: "2025-10-05", SessionType: model.SessionDay},
		{TheatreID: "main-1", Date: "2025-10-06", SessionType: model.SessionLongDay},
		{TheatreID: "main-2", Date: "2025-10-06", SessionType: model.SessionClosed},
		{TheatreID: "main-3", Date: "2025-10-06", SessionType: model.SessionDay},
	}))
	require.NoError(t, store.InsertTheatreLists(ctx, []db.TheatreList{
		{
			TheatreName: "Main 1",
			Date:        "2025-10-06",
			Specialty:   "Orthopaedics",
			Surgeons:    []string{"Mr Jones"},
			Cases:       []db.Case{{ProcedureName: "Total Hip Replacement"}},
		},
		{TheatreName: "Main 1", Date: "2025-10-08", Specialty: "Urology"},
	}))

	calendar, err := store.LoadCalendarConfigurations(ctx, "2025-10-06", "2025-10-07", []string{"main-1", "main-2"})
	require.NoError(t, err)
	assert.Equal(t, []db.DayConfiguration{
		{TheatreID: "main-1", Date: "2025-10-06", SessionType: model.SessionLongDay},
		{TheatreID: "main-2", Date: "2025-10-06", SessionType: model.SessionClosed},
	}, calendar)

	empty, err := store.LoadCalendarConfigurations(ctx, "2025-10-06", "2025-10-07", nil)
	require.NoError(t, err)
	assert.Empty(t, empty)

	lists, err := store.GetTheatreListsByDateRange(ctx, "2025-10-06", "2025-10-07")
	require.NoError(t, err)
	require.Len(t, lists, 1)
	assert.NotEmpty(t, lists[0].ID)
	assert.Equal(t, []string{"Mr Jones"}, lists[0].Surgeons)
	assert.Equal(t, []db.Case{{ProcedureName: "Total Hip Replacement"}}, lists[0].Cases)
}

func TestStaff_RoundTrip(t *testing.T) {
	store := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, store.InsertStaff(ctx, []db.Staff{
		{
			ID:               "s2",
			HospitalID:       "rlh",
			DisplayName:      "Sam",
			Role:             "Scrub Nurse",
			Band:             "Band 5",
			Competencies:     []string{"orthopaedics"},
			HourlyRate:       28.5,
			UnavailableDates: []string{"2025-10-07"},
		},
		{ID: "s1", HospitalID: "rlh", DisplayName: "Alex", Role: "ODP", Status: db.StaffStatusInactive},
	}))

	staff, err := store.GetStaff(ctx, "rlh")
	require.NoError(t, err)

	require.Len(t, staff, 2)
	assert.Equal(t, "s1", staff[0].ID)
	assert.Equal(t, db.StaffStatusInactive, staff[0].Status)
	assert.Equal(t, db.StaffStatusActive, staff[1].Status, "status defaults to active")
	assert.Equal(t, []string{"orthopaedics"}, staff[1].Competencies)
	assert.Equal(t, []string{"2025-10-07"}, staff[1].UnavailableDates)
	assert.Equal(t, 28.5, staff[1].HourlyRate)
}

func TestStaffingRecords_ByDate(t *testing.T) {
	store := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, store.InsertStaffingRecords(ctx, []db.StaffingRecord{
		{Date: "2025-10-06", Unit: "Main", Category: db.StaffingNight, Role: "Night Scrub N/P", Count: 6},
		{Date: "2025-10-06", Unit: "Main", Category: db.StaffingAuxiliary, Role: "Floor Coordinator", Count: 1},
		{Date: "2025-10-07", Unit: "Main", Category: db.StaffingNight, Role: "Night HCA", Count: 2},
	}))

	records, err := store.GetStaffingRecords(ctx, "2025-10-06")
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, db.StaffingAuxiliary, records[0].Category)
	assert.Equal(t, db.StaffingNight, records[1].Category)
	assert.Equal(t, 6, records[1].Count)
	assert.NotEmpty(t, records[1].ID)
}

func TestSaveAutoRosterAllocations_ReplacesDate(t *testing.T) {
	store := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, store.SaveAutoRosterAllocations(ctx, "2025-10-06", []db.AllocationRecord{
		allocation("main-1", "2025-10-06", "s1", "s2"),
		allocation("main-2", "2025-10-06", "s3"),
	}))
	require.NoError(t, store.SaveAutoRosterAllocations(ctx, "2025-10-07", []db.AllocationRecord{
		allocation("main-1", "2025-10-07", "s1"),
	}))

	rerun := allocation("main-1", "2025-10-06", "s4")
	rerun.RunID = "run-2"
	require.NoError(t, store.SaveAutoRosterAllocations(ctx, "2025-10-06", []db.AllocationRecord{rerun}))

	day1, err := store.GetAllocationsByDate(ctx, "2025-10-06")
	require.NoError(t, err)
	require.Len(t, day1, 1, "main-2 from the first run must not survive")
	assert.Equal(t, "main-1-2025-10-06", day1[0].SessionID)
	assert.Equal(t, "run-2", day1[0].RunID)
	require.Len(t, day1[0].Roles, 1)
	assert.Equal(t, []model.AssignedStaff{{StaffID: "s4", DisplayName: "Staff s4", Band: 5}}, day1[0].Roles[0].Assigned)
	assert.False(t, day1[0].CreatedAt.IsZero())

	day2, err := store.GetAllocationsByDate(ctx, "2025-10-07")
	require.NoError(t, err)
	require.Len(t, day2, 1, "other dates are untouched")
}

func TestSaveAutoRosterAllocations_RejectsWrongDate(t *testing.T) {
	store := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, store.SaveAutoRosterAllocations(ctx, "2025-10-06", []db.AllocationRecord{
		allocation("main-1", "2025-10-06", "s1"),
	}))

	err := store.SaveAutoRosterAllocations(ctx, "2025-10-06", []db.AllocationRecord{
		allocation("main-1", "2025-10-07", "s2"),
	})
	assert.ErrorIs(t, err, db.ErrDateMismatch)

	existing, err := store.GetAllocationsByDate(ctx, "2025-10-06")
	require.NoError(t, err)
	require.Len(t, existing, 1, "a rejected save leaves stored allocations unchanged")
	assert.Equal(t, "s1", existing[0].Roles[0].Assigned[0].StaffID)
}

func TestSaveAutoRosterAllocations_EmptyClearsDate(t *testing.T) {
	store := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, store.SaveAutoRosterAllocations(ctx, "2025-10-06", []db.AllocationRecord{
		allocation("main-1", "2025-10-06", "s1"),
	}))
	require.NoError(t, store.SaveAutoRosterAllocations(ctx, "2025-10-06", nil))

	existing, err := store.GetAllocationsByDate(ctx, "2025-10-06")
	require.NoError(t, err)
	assert.Empty(t, existing)
}
