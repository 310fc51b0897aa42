package allocator

import (
	"fmt"
	"sort"

	"github.com/jakechorley/theatre-roster/pkg/core/model"
)

// Criterion defines the interface for scoring factors.
// Criteria influence both which candidates are eligible for a slot and how they are ranked.
type Criterion interface {
	// Name returns a human-readable identifier for this criterion
	Name() string

	// IsCandidateValid determines if a candidate may fill a slot
	// This acts as a veto - if ANY criterion returns false, the candidate is excluded
	IsCandidateValid(state *DayState, candidate *model.StaffCandidate, slot *Slot) bool

	// CalculateAffinity returns the criterion's factor value for a candidate and slot.
	// Rewards return values in [0, 1]; penalties return non-positive values proportional
	// to the quantity being penalised. The value is multiplied by AffinityWeight.
	CalculateAffinity(state *DayState, candidate *model.StaffCandidate, slot *Slot) float64

	// AffinityWeight returns the weight applied to this criterion's factor value
	AffinityWeight() float64
}

// Built-in rejection reasons
const (
	rejectUnavailable        = "unavailable"
	rejectAllocatedElsewhere = "allocated elsewhere"
	rejectBooked             = "already booked today"
)

// candidateRejection returns why a candidate is ineligible for a slot, or "" if eligible.
// Role match is a hard filter handled by the pool; availability and the day's bookings
// are checked before any criterion is consulted.
func candidateRejection(state *DayState, candidate *model.StaffCandidate, slot *Slot, criteria []Criterion) string {
	if candidate.Role != slot.Role {
		return fmt.Sprintf("role %s", candidate.Role)
	}

	switch candidate.AvailabilityOn(state.Date) {
	case model.Unavailable:
		return rejectUnavailable
	case model.AllocatedElsewhere:
		return rejectAllocatedElsewhere
	}

	if state.Bookings.IsBooked(candidate.ID) {
		return rejectBooked
	}

	for _, criterion := range criteria {
		if !criterion.IsCandidateValid(state, candidate, slot) {
			return criterion.Name()
		}
	}

	return ""
}

// IsCandidateEligible reports whether a candidate passes every hard filter for a slot
func IsCandidateEligible(state *DayState, candidate *model.StaffCandidate, slot *Slot, criteria []Criterion) bool {
	return candidateRejection(state, candidate, slot, criteria) == ""
}

// ScoreCandidate computes the weighted sum of every criterion's factor value
func ScoreCandidate(state *DayState, candidate *model.StaffCandidate, slot *Slot, criteria []Criterion) model.ScoredCandidate {
	scored := model.ScoredCandidate{
		Candidate: candidate,
		Breakdown: make([]model.FactorScore, 0, len(criteria)),
	}

	for _, criterion := range criteria {
		value := criterion.CalculateAffinity(state, candidate, slot)
		weighted := value * criterion.AffinityWeight()
		scored.Score += weighted
		scored.Breakdown = append(scored.Breakdown, model.FactorScore{
			Criterion: criterion.Name(),
			Value:     value,
			Weighted:  weighted,
		})
	}

	return scored
}

// RankCandidates scores every eligible candidate for a slot and sorts them by score
// descending, breaking ties by candidate id ascending. It also returns a count of
// rejected candidates per reason.
func RankCandidates(state *DayState, pool CandidatePool, slot *Slot, criteria []Criterion) ([]model.ScoredCandidate, map[string]int) {
	candidates := pool.CandidatesForRole(slot.Role)

	ranked := make([]model.ScoredCandidate, 0, len(candidates))
	rejections := make(map[string]int)

	for _, candidate := range candidates {
		if reason := candidateRejection(state, candidate, slot, criteria); reason != "" {
			rejections[reason]++
			continue
		}
		ranked = append(ranked, ScoreCandidate(state, candidate, slot, criteria))
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Candidate.ID < ranked[j].Candidate.ID
	})

	return ranked, rejections
}
