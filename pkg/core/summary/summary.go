package summary

import (
	"fmt"

	"github.com/jakechorley/theatre-roster/pkg/core/model"
)

// ShiftCounts breaks a role's headcount down by shift category
type ShiftCounts struct {
	Day     int `json:"day"`
	LongDay int `json:"longDay"`
	Night   int `json:"night"`
}

// Total returns the sum across categories
func (s ShiftCounts) Total() int {
	return s.Day + s.LongDay + s.Night
}

func (s *ShiftCounts) add(category model.ShiftCategory, count int) {
	switch category {
	case model.ShiftLongDay:
		s.LongDay += count
	case model.ShiftNight:
		s.Night += count
	default:
		s.Day += count
	}
}

// RoleSummary is the headcount for one role bucket
type RoleSummary struct {
	Role   model.Role  `json:"role"`
	Total  int         `json:"total"`
	Shifts ShiftCounts `json:"shifts"`
}

// Summary is the staffing total for a single date
type Summary struct {
	Date  string        `json:"date"`
	Total int           `json:"total"`
	Roles []RoleSummary `json:"roles"`
}

// Role looks up the summary for a role bucket
func (s Summary) Role(role model.Role) (RoleSummary, bool) {
	for _, rs := range s.Roles {
		if rs.Role == role {
			return rs, true
		}
	}
	return RoleSummary{}, false
}

// Summarise totals a date's allocations and staffing records.
//
// Allocated staff count under their session's shift category. Auxiliary records
// count under day. Night records are folded into their day-equivalent role (so
// "Night Scrub N/P" lands in "Scrub N/P") and count under night.
func Summarise(date string, allocations []model.SessionAllocation, auxiliary, night []model.StaffingCount) (Summary, error) {
	buckets := make(map[model.Role]*ShiftCounts)
	bucket := func(role model.Role) *ShiftCounts {
		counts, ok := buckets[role]
		if !ok {
			counts = &ShiftCounts{}
			buckets[role] = counts
		}
		return counts
	}

	for _, session := range allocations {
		category := model.CategoryForSessionType(session.SessionType)
		for _, role := range session.Roles {
			if len(role.Assigned) == 0 {
				continue
			}
			bucket(role.Role).add(category, len(role.Assigned))
		}
	}

	for _, record := range auxiliary {
		if record.Count <= 0 {
			continue
		}
		role, err := model.ParseRole(record.Role)
		if err != nil {
			return Summary{}, fmt.Errorf("invalid auxiliary staffing role: %w", err)
		}
		bucket(role).add(model.ShiftDay, record.Count)
	}

	for _, record := range night {
		if record.Count <= 0 {
			continue
		}
		role, err := model.DayEquivalent(record.Role)
		if err != nil {
			return Summary{}, fmt.Errorf("invalid night staffing role: %w", err)
		}
		bucket(role).add(model.ShiftNight, record.Count)
	}

	roles := make([]model.Role, 0, len(buckets))
	for role := range buckets {
		roles = append(roles, role)
	}
	model.SortRoles(roles)

	summary := Summary{
		Date:  date,
		Roles: make([]RoleSummary, 0, len(roles)),
	}
	for _, role := range roles {
		counts := *buckets[role]
		summary.Roles = append(summary.Roles, RoleSummary{
			Role:   role,
			Total:  counts.Total(),
			Shifts: counts,
		})
		summary.Total += counts.Total()
	}

	return summary, nil
}
