package allocator

import (
	"github.com/jakechorley/theatre-roster/pkg/core/model"
	"github.com/jakechorley/theatre-roster/pkg/core/requirements"
)

// DayState is the solver state for a single date
type DayState struct {
	// Date being solved (DateLayout)
	Date string

	// Bookings holds every staff member reserved on Date.
	// A staff id appears at most once, across all theatres and roles.
	Bookings *BookingSet

	// Workload counts shifts allocated to each staff id within the current batch run.
	// Unlike Bookings it carries over between dates.
	Workload map[string]int
}

// Slot is one unit of demand: a single place for a role at a location
type Slot struct {
	Location *requirements.LocationRequirements

	// Role is the canonical role to fill
	Role model.Role

	// Unit is the zero-based position of this place within the role's quantity
	Unit int
}

// SessionID returns the session the slot belongs to
func (s *Slot) SessionID() string {
	return s.Location.Session.ID
}

// UnfilledSlot records a place that no eligible candidate could fill
type UnfilledSlot struct {
	SessionID string
	Date      string
	Role      model.Role
	Unit      int

	// Reasons summarises why candidates for the role were rejected
	Reasons []string
}

// DayOutcome is the result of solving a single date
type DayOutcome struct {
	Date string

	// Sessions in location input order
	Sessions []model.SessionAllocation

	// Unfilled places; under-fill is data, never an error
	Unfilled []UnfilledSlot

	// ValidationErrors found when re-checking the committed allocations
	ValidationErrors []AllocationValidationError
}

// BySessionID indexes the outcome's allocations by session id
func (o *DayOutcome) BySessionID() map[string]model.SessionAllocation {
	result := make(map[string]model.SessionAllocation, len(o.Sessions))
	for _, session := range o.Sessions {
		result[session.SessionID] = session
	}
	return result
}

// Requested returns the total requested headcount for the date
func (o *DayOutcome) Requested() int {
	total := 0
	for _, session := range o.Sessions {
		total += session.Requested()
	}
	return total
}

// Assigned returns the total number of staff assigned on the date
func (o *DayOutcome) Assigned() int {
	total := 0
	for _, session := range o.Sessions {
		total += session.AssignedCount()
	}
	return total
}

// FillRate returns the fraction of the date's requested headcount that was assigned
func (o *DayOutcome) FillRate() float64 {
	requested := o.Requested()
	if requested == 0 {
		return 1
	}
	return float64(o.Assigned()) / float64(requested)
}

// Complete reports whether every requested place was filled
func (o *DayOutcome) Complete() bool {
	return len(o.Unfilled) == 0
}
