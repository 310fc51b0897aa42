package model

// Availability is the state of a candidate on a given date
type Availability int

const (
	Available Availability = iota
	Unavailable
	AllocatedElsewhere
)

func (a Availability) String() string {
	switch a {
	case Available:
		return "available"
	case Unavailable:
		return "unavailable"
	case AllocatedElsewhere:
		return "allocated_elsewhere"
	default:
		return "unknown"
	}
}

// StaffCandidate is a staff member eligible for assignment
type StaffCandidate struct {
	ID          string
	DisplayName string
	Role        Role
	Band        int

	// Competencies are lower-cased specialty ids and procedure competency tags
	Competencies []string

	HourlyRate float64
	Home       *Coordinates

	// UnavailableDates and AllocatedDates are keyed by DateLayout dates
	UnavailableDates map[string]bool
	AllocatedDates   map[string]bool
}

// AvailabilityOn returns the candidate's availability for a date
func (c *StaffCandidate) AvailabilityOn(date string) Availability {
	if c.UnavailableDates[date] {
		return Unavailable
	}
	if c.AllocatedDates[date] {
		return AllocatedElsewhere
	}
	return Available
}

// HasCompetency reports whether the candidate is tagged with the given competency
func (c *StaffCandidate) HasCompetency(tag string) bool {
	for _, competency := range c.Competencies {
		if competency == tag {
			return true
		}
	}
	return false
}

// FactorScore is one weighted component of a candidate's score
type FactorScore struct {
	Criterion string
	Value     float64
	Weighted  float64
}

// ScoredCandidate is a candidate ranked against one requirement slot
type ScoredCandidate struct {
	Candidate *StaffCandidate
	Score     float64
	Breakdown []FactorScore
}
