package allocator

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jakechorley/theatre-roster/pkg/core/model"
	"github.com/jakechorley/theatre-roster/pkg/core/requirements"
)

// Allocator assigns staff to role slots one date at a time.
//
// The solve is greedy and requirement-ordered: locations are visited in input order,
// roles in priority order and each unit of quantity separately, and the best eligible
// candidate at that moment wins. An earlier location can consume a candidate that a
// later location needed more; this matches the established behaviour and is kept.
//
// An Allocator is not safe for concurrent use. Each date's BookingSet is written only
// by the goroutine running AllocateDate.
type Allocator struct {
	pool     CandidatePool
	criteria []Criterion

	// workload is shared by every date solved by this allocator
	workload map[string]int
}

// AllocationConfig contains the configuration for creating a new Allocator
type AllocationConfig struct {
	// Pool of staff candidates
	Pool CandidatePool

	// Criteria to apply during scoring (with their weights)
	Criteria []Criterion
}

// NewAllocator creates an Allocator for one batch run
func NewAllocator(config AllocationConfig) (*Allocator, error) {
	if config.Pool == nil {
		return nil, errors.New("candidate pool is required")
	}

	return &Allocator{
		pool:     config.Pool,
		criteria: config.Criteria,
		workload: make(map[string]int),
	}, nil
}

// Workload returns the number of shifts allocated to a staff member in this batch run
func (a *Allocator) Workload(staffID string) int {
	return a.workload[staffID]
}

// AllocateDate solves a single date. Bookings start empty for every date, so staff
// allocated on one date are available again on the next.
func (a *Allocator) AllocateDate(date string, locations []requirements.LocationRequirements) (*DayOutcome, error) {
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	state := &DayState{
		Date:     date,
		Bookings: NewBookingSet(date),
		Workload: a.workload,
	}

	outcome := &DayOutcome{
		Date:             date,
		Sessions:         make([]model.SessionAllocation, 0, len(locations)),
		Unfilled:         []UnfilledSlot{},
		ValidationErrors: []AllocationValidationError{},
	}

	for i := range locations {
		location := &locations[i]
		if location.Session.Date != "" && location.Session.Date != date {
			return nil, fmt.Errorf("location %s is dated %s, expected %s", location.Session.ID, location.Session.Date, date)
		}

		session := model.SessionAllocation{
			SessionID:   location.Session.ID,
			TheatreID:   location.Theatre.ID,
			Date:        date,
			SessionType: location.Session.SessionType,
			Roles:       []model.RoleAllocation{},
		}

		for _, requirement := range orderedRequirements(location.Roles) {
			roleAllocation, err := a.fillRole(state, location, requirement, outcome)
			if err != nil {
				return nil, err
			}
			session.Roles = append(session.Roles, roleAllocation)
		}

		outcome.Sessions = append(outcome.Sessions, session)
	}

	outcome.ValidationErrors = ValidateDayRoster(date, outcome.Sessions)

	return outcome, nil
}

// fillRole fills one role's quantity a unit at a time
func (a *Allocator) fillRole(state *DayState, location *requirements.LocationRequirements, requirement model.RoleRequirement, outcome *DayOutcome) (model.RoleAllocation, error) {
	roleAllocation := model.RoleAllocation{
		Role:      requirement.Role,
		Requested: requirement.Quantity,
		Assigned:  []model.AssignedStaff{},
	}

	for unit := 0; unit < requirement.Quantity; unit++ {
		slot := &Slot{Location: location, Role: requirement.Role, Unit: unit}

		ranked, rejections := RankCandidates(state, a.pool, slot, a.criteria)
		if len(ranked) == 0 {
			outcome.Unfilled = append(outcome.Unfilled, UnfilledSlot{
				SessionID: slot.SessionID(),
				Date:      state.Date,
				Role:      slot.Role,
				Unit:      unit,
				Reasons:   describeRejections(rejections),
			})
			continue
		}

		best := ranked[0].Candidate
		if err := state.Bookings.Reserve(best.ID, slot.SessionID()); err != nil {
			return model.RoleAllocation{}, err
		}
		a.workload[best.ID]++

		roleAllocation.Assigned = append(roleAllocation.Assigned, model.AssignedStaff{
			StaffID:     best.ID,
			DisplayName: best.DisplayName,
			Band:        best.Band,
		})
	}

	return roleAllocation, nil
}

// orderedRequirements merges duplicate roles, drops zero quantities and sorts by role priority
func orderedRequirements(roles []model.RoleRequirement) []model.RoleRequirement {
	merged := make([]model.RoleRequirement, 0, len(roles))
	index := make(map[model.Role]int, len(roles))

	for _, requirement := range roles {
		if requirement.Quantity <= 0 {
			continue
		}
		if i, ok := index[requirement.Role]; ok {
			merged[i].Quantity += requirement.Quantity
			continue
		}
		index[requirement.Role] = len(merged)
		merged = append(merged, requirement)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return model.RoleLess(merged[i].Role, merged[j].Role)
	})

	return merged
}

// describeRejections turns rejection counts into sorted, human-readable reasons
func describeRejections(rejections map[string]int) []string {
	if len(rejections) == 0 {
		return []string{"no staff hold this role"}
	}

	reasons := make([]string, 0, len(rejections))
	for reason, count := range rejections {
		reasons = append(reasons, fmt.Sprintf("%d staff rejected: %s", count, reason))
	}
	sort.Strings(reasons)
	return reasons
}
