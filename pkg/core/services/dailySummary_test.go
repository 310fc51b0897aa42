package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/theatre-roster/pkg/core/model"
	"github.com/jakechorley/theatre-roster/pkg/core/requirements"
	"github.com/jakechorley/theatre-roster/pkg/core/summary"
	"github.com/jakechorley/theatre-roster/pkg/db"
)

// mockDailySummaryStore implements DailySummaryStore for testing
type mockDailySummaryStore struct {
	allocations       []db.AllocationRecord
	staffing          []db.StaffingRecord
	getAllocationsErr error
	getStaffingErr    error
}

func (m *mockDailySummaryStore) GetAllocationsByDate(ctx context.Context, date string) ([]db.AllocationRecord, error) {
	if m.getAllocationsErr != nil {
		return nil, m.getAllocationsErr
	}
	return m.allocations, nil
}

func (m *mockDailySummaryStore) GetStaffingRecords(ctx context.Context, date string) ([]db.StaffingRecord, error) {
	if m.getStaffingErr != nil {
		return nil, m.getStaffingErr
	}
	return m.staffing, nil
}

func assigned(ids ...string) []model.AssignedStaff {
	result := make([]model.AssignedStaff, len(ids))
	for i, id := range ids {
		result[i] = model.AssignedStaff{StaffID: id}
	}
	return result
}

func TestDailySummary(t *testing.T) {
	store := &mockDailySummaryStore{
		allocations: []db.AllocationRecord{
			{
				SessionID:   "main-1-2025-10-06",
				TheatreID:   "main-1",
				Date:        "2025-10-06",
				SessionType: model.SessionDay,
				Roles: []model.RoleAllocation{
					{Role: model.RoleScrubNP, Requested: 3, Assigned: assigned("s1", "s2")},
					{Role: model.RoleHCA, Requested: 1, Assigned: assigned("h1")},
				},
			},
			{
				SessionID:   "main-2-2025-10-06",
				TheatreID:   "main-2",
				Date:        "2025-10-06",
				SessionType: model.SessionLongDay,
				Roles: []model.RoleAllocation{
					{Role: model.RoleScrubNP, Requested: 2, Assigned: assigned("s3")},
				},
			},
		},
		staffing: []db.StaffingRecord{
			{ID: "n1", Category: db.StaffingNight, Role: "Night Scrub N/P", Count: 6},
			{ID: "x1", Category: db.StaffingAuxiliary, Role: "Floor Coordinator", Count: 1},
			{ID: "u1", Category: "weekend", Role: "HCA", Count: 9},
		},
	}

	result, err := DailySummary(context.Background(), store, zap.NewNop(), "2025-10-06")
	require.NoError(t, err)

	scrub, ok := result.Role(model.RoleScrubNP)
	require.True(t, ok)
	assert.Equal(t, summary.ShiftCounts{Day: 2, LongDay: 1, Night: 6}, scrub.Shifts)
	assert.Equal(t, 9, scrub.Total)

	hca, ok := result.Role(model.RoleHCA)
	require.True(t, ok)
	assert.Equal(t, 1, hca.Total, "records with an unknown category are ignored")

	coordinator, ok := result.Role(model.RoleFloorCoordinator)
	require.True(t, ok)
	assert.Equal(t, summary.ShiftCounts{Day: 1}, coordinator.Shifts)

	assert.Equal(t, 11, result.Total)
}

func TestDailySummary_StoreErrors(t *testing.T) {
	_, err := DailySummary(context.Background(), &mockDailySummaryStore{getAllocationsErr: errors.New("boom")}, zap.NewNop(), "2025-10-06")
	assert.ErrorContains(t, err, "failed to get allocations")

	_, err = DailySummary(context.Background(), &mockDailySummaryStore{getStaffingErr: errors.New("boom")}, zap.NewNop(), "2025-10-06")
	assert.ErrorContains(t, err, "failed to get staffing records")
}

func TestPreviewRequirements(t *testing.T) {
	store := rosterStore()

	locations, err := PreviewRequirements(context.Background(), store, rosterConfig(), zap.NewNop(), "2025-10-06")
	require.NoError(t, err)

	require.Len(t, locations, 2)
	assert.Equal(t, "main-1", locations[0].Theatre.ID)
	assert.Equal(t, "orthopaedics", locations[0].SpecialtyID)
	assert.Equal(t, []string{"Total Hip Replacement"}, locations[0].Procedures)
	assert.False(t, locations[0].Synthetic)

	assert.Equal(t, "emerg", locations[1].Theatre.ID)
	assert.True(t, locations[1].Synthetic)
	assert.Equal(t, requirements.EmergencySpecialtyID, locations[1].SpecialtyID)

	assert.Equal(t, 10, requirements.TotalRequested(locations))
	assert.Empty(t, store.saveCalls)
	assert.Zero(t, store.getStaffCalls)
}

func TestPreviewRequirements_ConfigurationMissing(t *testing.T) {
	cfg := rosterConfig()
	cfg.DefaultRoles = map[string]int{}

	_, err := PreviewRequirements(context.Background(), rosterStore(), cfg, zap.NewNop(), "2025-10-06")
	assert.ErrorIs(t, err, requirements.ErrConfigurationMissing)
}
