package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jakechorley/theatre-roster/pkg/core/model"
)

func TestCheckAllocationDates(t *testing.T) {
	allocations := []AllocationRecord{
		{SessionID: "main-1-2025-10-06", Date: "2025-10-06"},
		{SessionID: "main-2-2025-10-07", Date: "2025-10-07"},
	}

	assert.NoError(t, CheckAllocationDates("2025-10-06", allocations[:1]))

	err := CheckAllocationDates("2025-10-06", allocations)
	assert.ErrorIs(t, err, ErrDateMismatch)
	assert.Contains(t, err.Error(), "main-2-2025-10-07")
}

func TestAllocationRecord_RoundTripsSessionAllocation(t *testing.T) {
	allocation := model.SessionAllocation{
		SessionID:   "main-1-2025-10-06",
		TheatreID:   "main-1",
		Date:        "2025-10-06",
		SessionType: model.SessionDay,
		Roles: []model.RoleAllocation{
			{Role: model.RoleScrubNP, Requested: 2, Assigned: []model.AssignedStaff{{StaffID: "s1", DisplayName: "Sam", Band: 5}}},
		},
	}

	record := NewAllocationRecord(allocation, "run-1", time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC))

	assert.Equal(t, "run-1", record.RunID)
	assert.Equal(t, allocation, record.ToSessionAllocation())
}
