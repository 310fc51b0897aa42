package criteria

import (
	"github.com/jakechorley/theatre-roster/pkg/core/allocator"
	"github.com/jakechorley/theatre-roster/pkg/core/model"
)

// RecentWorkloadCriterion spreads allocations across staff within a batch run.
//
// Validity:
//   - If maxShifts is positive, candidates already allocated maxShifts times in the run are excluded
//
// Affinity:
//   - Minus the number of shifts already allocated to the candidate in this run
type RecentWorkloadCriterion struct {
	maxShifts      int
	affinityWeight float64
}

// NewRecentWorkloadCriterion creates a new RecentWorkloadCriterion.
// A maxShifts of zero means unlimited.
func NewRecentWorkloadCriterion(maxShifts int, affinityWeight float64) *RecentWorkloadCriterion {
	return &RecentWorkloadCriterion{
		maxShifts:      maxShifts,
		affinityWeight: affinityWeight,
	}
}

func (c *RecentWorkloadCriterion) Name() string {
	return "RecentWorkload"
}

func (c *RecentWorkloadCriterion) IsCandidateValid(state *allocator.DayState, candidate *model.StaffCandidate, slot *allocator.Slot) bool {
	if c.maxShifts <= 0 {
		return true
	}
	return state.Workload[candidate.ID] < c.maxShifts
}

func (c *RecentWorkloadCriterion) CalculateAffinity(state *allocator.DayState, candidate *model.StaffCandidate, slot *allocator.Slot) float64 {
	return -float64(state.Workload[candidate.ID])
}

func (c *RecentWorkloadCriterion) AffinityWeight() float64 {
	return c.affinityWeight
}
