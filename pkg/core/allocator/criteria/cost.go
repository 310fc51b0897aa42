package criteria

import (
	"github.com/jakechorley/theatre-roster/pkg/core/allocator"
	"github.com/jakechorley/theatre-roster/pkg/core/model"
)

// DefaultCostScale is the hourly rate that costs one point of affinity
const DefaultCostScale = 50.0

// CostCriterion prefers lower-cost staff when all else is equal.
//
// Affinity:
//   - Minus hourlyRate / scale
type CostCriterion struct {
	scale          float64
	affinityWeight float64
}

// NewCostCriterion creates a new CostCriterion. A scale of zero or less uses DefaultCostScale.
func NewCostCriterion(scale, affinityWeight float64) *CostCriterion {
	if scale <= 0 {
		scale = DefaultCostScale
	}
	return &CostCriterion{
		scale:          scale,
		affinityWeight: affinityWeight,
	}
}

func (c *CostCriterion) Name() string {
	return "Cost"
}

func (c *CostCriterion) IsCandidateValid(state *allocator.DayState, candidate *model.StaffCandidate, slot *allocator.Slot) bool {
	return true
}

func (c *CostCriterion) CalculateAffinity(state *allocator.DayState, candidate *model.StaffCandidate, slot *allocator.Slot) float64 {
	if candidate.HourlyRate <= 0 {
		return 0
	}
	return -candidate.HourlyRate / c.scale
}

func (c *CostCriterion) AffinityWeight() float64 {
	return c.affinityWeight
}
