package criteria

import (
	"github.com/jakechorley/theatre-roster/pkg/core/allocator"
	"github.com/jakechorley/theatre-roster/pkg/core/model"
)

// Default factor weights
const (
	WeightSpecialtyMatch  = 3.0
	WeightBandSuitability = 1.0
	WeightRecentWorkload  = 0.5
	WeightCost            = 1.0
	WeightDistance        = 0.5
)

// Settings configures the standard scoring criteria
type Settings struct {
	SpecialtyWeight float64
	BandWeight      float64
	WorkloadWeight  float64
	CostWeight      float64
	DistanceWeight  float64

	ExpectedBands    map[model.Role]int
	BandSpan         int
	MaxBandDeviation int
	MaxShiftsPerRun  int
	CostScale        float64
	DistanceScale    float64
}

// DefaultSettings returns the standard weights with no expected bands or caps
func DefaultSettings() Settings {
	return Settings{
		SpecialtyWeight: WeightSpecialtyMatch,
		BandWeight:      WeightBandSuitability,
		WorkloadWeight:  WeightRecentWorkload,
		CostWeight:      WeightCost,
		DistanceWeight:  WeightDistance,
	}
}

// Standard builds the scoring criteria used for auto-rostering
func Standard(s Settings) []allocator.Criterion {
	return []allocator.Criterion{
		NewSpecialtyMatchCriterion(s.SpecialtyWeight),
		NewBandSuitabilityCriterion(s.ExpectedBands, s.BandSpan, s.MaxBandDeviation, s.BandWeight),
		NewRecentWorkloadCriterion(s.MaxShiftsPerRun, s.WorkloadWeight),
		NewCostCriterion(s.CostScale, s.CostWeight),
		NewDistanceCriterion(s.DistanceScale, s.DistanceWeight),
	}
}
