package model

// AssignedStaff is a denormalised snapshot of an allocated staff member
type AssignedStaff struct {
	StaffID     string `json:"staffId"`
	DisplayName string `json:"name"`
	Band        int    `json:"band"`
}

// RoleAllocation is one role's fulfilment within a session.
// len(Assigned) never exceeds Requested; under-fill is valid.
type RoleAllocation struct {
	Role      Role            `json:"role"`
	Requested int             `json:"requested"`
	Assigned  []AssignedStaff `json:"assignedStaff"`
}

// FillRate returns the fraction of the requested headcount that was assigned
func (ra RoleAllocation) FillRate() float64 {
	if ra.Requested == 0 {
		return 1
	}
	return float64(len(ra.Assigned)) / float64(ra.Requested)
}

// Unfilled returns the number of requested places left empty
func (ra RoleAllocation) Unfilled() int {
	return max(ra.Requested-len(ra.Assigned), 0)
}

// SessionAllocation is the committed result for one session
type SessionAllocation struct {
	SessionID   string
	TheatreID   string
	Date        string
	SessionType string
	Roles       []RoleAllocation
}

// Requested returns the total requested headcount across roles
func (sa SessionAllocation) Requested() int {
	total := 0
	for _, role := range sa.Roles {
		total += role.Requested
	}
	return total
}

// AssignedCount returns the total number of staff assigned across roles
func (sa SessionAllocation) AssignedCount() int {
	total := 0
	for _, role := range sa.Roles {
		total += len(role.Assigned)
	}
	return total
}

// FillRate returns the fraction of the session's requested headcount assigned
func (sa SessionAllocation) FillRate() float64 {
	requested := sa.Requested()
	if requested == 0 {
		return 1
	}
	return float64(sa.AssignedCount()) / float64(requested)
}

// StaffingCount is an auxiliary (day) or night staffing record for a unit
type StaffingCount struct {
	Role  string
	Count int
}
