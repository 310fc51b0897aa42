package allocator

import (
	"fmt"

	"github.com/jakechorley/theatre-roster/pkg/core/model"
)

// AllocationValidationError represents a validation error for a specific session
type AllocationValidationError struct {
	SessionID   string
	Date        string
	Role        model.Role
	Check       string
	Description string
}

// Validation checks
const (
	CheckDoubleBooking = "NoDoubleBooking"
	CheckQuantity      = "QuantityBound"
)

// ValidateDayRoster checks a date's committed allocations: no staff id may appear
// more than once across the date, and no role may exceed its requested quantity.
func ValidateDayRoster(date string, sessions []model.SessionAllocation) []AllocationValidationError {
	errors := []AllocationValidationError{}
	seen := make(map[string]string)

	for _, session := range sessions {
		for _, role := range session.Roles {
			if len(role.Assigned) > role.Requested {
				errors = append(errors, AllocationValidationError{
					SessionID:   session.SessionID,
					Date:        date,
					Role:        role.Role,
					Check:       CheckQuantity,
					Description: fmt.Sprintf("Role is overfilled: has %d staff but requested %d", len(role.Assigned), role.Requested),
				})
			}

			for _, staff := range role.Assigned {
				if previous, ok := seen[staff.StaffID]; ok {
					errors = append(errors, AllocationValidationError{
						SessionID:   session.SessionID,
						Date:        date,
						Role:        role.Role,
						Check:       CheckDoubleBooking,
						Description: fmt.Sprintf("Staff %s is already allocated to %s", staff.StaffID, previous),
					})
					continue
				}
				seen[staff.StaffID] = session.SessionID
			}
		}
	}

	return errors
}
