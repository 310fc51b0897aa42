package criteria

import (
	"math"

	"github.com/jakechorley/theatre-roster/pkg/core/allocator"
	"github.com/jakechorley/theatre-roster/pkg/core/model"
)

// DefaultBandSpan is the band deviation at which suitability reaches zero
const DefaultBandSpan = 4

// BandSuitabilityCriterion prefers candidates whose band is close to the role's expected band.
//
// Validity:
//   - If maxDeviation is positive, candidates further than maxDeviation bands away are excluded
//
// Affinity:
//   - 1 - |band - expected| / span, clamped to [0, 1]
//   - 0 when the role has no expected band or the candidate's band is unknown
type BandSuitabilityCriterion struct {
	expectedBands  map[model.Role]int
	span           int
	maxDeviation   int
	affinityWeight float64
}

// NewBandSuitabilityCriterion creates a new BandSuitabilityCriterion.
// A span of zero or less uses DefaultBandSpan; a maxDeviation of zero disables the veto.
func NewBandSuitabilityCriterion(expectedBands map[model.Role]int, span, maxDeviation int, affinityWeight float64) *BandSuitabilityCriterion {
	if span <= 0 {
		span = DefaultBandSpan
	}
	return &BandSuitabilityCriterion{
		expectedBands:  expectedBands,
		span:           span,
		maxDeviation:   maxDeviation,
		affinityWeight: affinityWeight,
	}
}

func (c *BandSuitabilityCriterion) Name() string {
	return "BandSuitability"
}

func (c *BandSuitabilityCriterion) IsCandidateValid(state *allocator.DayState, candidate *model.StaffCandidate, slot *allocator.Slot) bool {
	if c.maxDeviation <= 0 {
		return true
	}
	deviation, ok := c.deviation(candidate, slot.Role)
	if !ok {
		return true
	}
	return deviation <= c.maxDeviation
}

func (c *BandSuitabilityCriterion) CalculateAffinity(state *allocator.DayState, candidate *model.StaffCandidate, slot *allocator.Slot) float64 {
	deviation, ok := c.deviation(candidate, slot.Role)
	if !ok {
		return 0
	}
	return math.Max(0, 1-float64(deviation)/float64(c.span))
}

func (c *BandSuitabilityCriterion) deviation(candidate *model.StaffCandidate, role model.Role) (int, bool) {
	expected, ok := c.expectedBands[role]
	if !ok || expected <= 0 || candidate.Band <= 0 {
		return 0, false
	}
	deviation := candidate.Band - expected
	if deviation < 0 {
		deviation = -deviation
	}
	return deviation, true
}

func (c *BandSuitabilityCriterion) AffinityWeight() float64 {
	return c.affinityWeight
}
