package criteria

import (
	"math"

	"github.com/jakechorley/theatre-roster/pkg/core/allocator"
	"github.com/jakechorley/theatre-roster/pkg/core/model"
)

// DefaultDistanceScale is the distance in kilometres that costs one point of affinity
const DefaultDistanceScale = 25.0

const earthRadiusKm = 6371.0

// DistanceCriterion prefers staff who live closer to the theatre site.
//
// Affinity:
//   - Minus distanceKm / scale
//   - 0 when either the candidate's home or the theatre's site is unknown
type DistanceCriterion struct {
	scale          float64
	affinityWeight float64
}

// NewDistanceCriterion creates a new DistanceCriterion. A scale of zero or less uses DefaultDistanceScale.
func NewDistanceCriterion(scale, affinityWeight float64) *DistanceCriterion {
	if scale <= 0 {
		scale = DefaultDistanceScale
	}
	return &DistanceCriterion{
		scale:          scale,
		affinityWeight: affinityWeight,
	}
}

func (c *DistanceCriterion) Name() string {
	return "Distance"
}

func (c *DistanceCriterion) IsCandidateValid(state *allocator.DayState, candidate *model.StaffCandidate, slot *allocator.Slot) bool {
	return true
}

func (c *DistanceCriterion) CalculateAffinity(state *allocator.DayState, candidate *model.StaffCandidate, slot *allocator.Slot) float64 {
	site := slot.Location.Theatre.Site
	if candidate.Home == nil || site == nil {
		return 0
	}
	return -HaversineKm(*candidate.Home, *site) / c.scale
}

func (c *DistanceCriterion) AffinityWeight() float64 {
	return c.affinityWeight
}

// HaversineKm returns the great-circle distance between two points in kilometres
func HaversineKm(a, b model.Coordinates) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}
