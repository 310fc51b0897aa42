package criteria

import (
	"strings"

	"github.com/jakechorley/theatre-roster/pkg/core/allocator"
	"github.com/jakechorley/theatre-roster/pkg/core/model"
)

// minCompetencyKeywordLength avoids matching very short tags inside procedure names
const minCompetencyKeywordLength = 3

// SpecialtyMatchCriterion rewards candidates whose competencies fit the session.
//
// Affinity:
//   - 1.0 if the candidate is tagged with the session's specialty
//   - 0.5 if one of the candidate's competency tags appears in a procedure name
//   - 0 otherwise
type SpecialtyMatchCriterion struct {
	affinityWeight float64
}

// NewSpecialtyMatchCriterion creates a new SpecialtyMatchCriterion with the given weight
func NewSpecialtyMatchCriterion(affinityWeight float64) *SpecialtyMatchCriterion {
	return &SpecialtyMatchCriterion{affinityWeight: affinityWeight}
}

func (c *SpecialtyMatchCriterion) Name() string {
	return "SpecialtyMatch"
}

func (c *SpecialtyMatchCriterion) IsCandidateValid(state *allocator.DayState, candidate *model.StaffCandidate, slot *allocator.Slot) bool {
	return true
}

func (c *SpecialtyMatchCriterion) CalculateAffinity(state *allocator.DayState, candidate *model.StaffCandidate, slot *allocator.Slot) float64 {
	specialty := strings.ToLower(slot.Location.SpecialtyID)
	if specialty != "" && candidate.HasCompetency(specialty) {
		return 1.0
	}

	for _, procedure := range slot.Location.Procedures {
		lowerProcedure := strings.ToLower(procedure)
		for _, competency := range candidate.Competencies {
			if len(competency) < minCompetencyKeywordLength {
				continue
			}
			if strings.Contains(lowerProcedure, competency) {
				return 0.5
			}
		}
	}

	return 0
}

func (c *SpecialtyMatchCriterion) AffinityWeight() float64 {
	return c.affinityWeight
}
