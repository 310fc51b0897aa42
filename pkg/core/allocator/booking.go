package allocator

import (
	"errors"
	"fmt"
	"sort"
)

// ErrDoubleBooked is returned when a staff member is reserved twice on one date
var ErrDoubleBooked = errors.New("staff member is already booked on this date")

// BookingSet is the per-date set of reserved staff. The solver is its only writer.
type BookingSet struct {
	date     string
	sessions map[string]string
}

// NewBookingSet creates an empty booking set for a date
func NewBookingSet(date string) *BookingSet {
	return &BookingSet{
		date:     date,
		sessions: make(map[string]string),
	}
}

// Reserve books a staff member into a session
func (b *BookingSet) Reserve(staffID, sessionID string) error {
	if existing, ok := b.sessions[staffID]; ok {
		return fmt.Errorf("%w: %s on %s (session %s)", ErrDoubleBooked, staffID, b.date, existing)
	}
	b.sessions[staffID] = sessionID
	return nil
}

// IsBooked reports whether the staff member has been reserved on this date
func (b *BookingSet) IsBooked(staffID string) bool {
	_, ok := b.sessions[staffID]
	return ok
}

// SessionFor returns the session a staff member is booked into
func (b *BookingSet) SessionFor(staffID string) (string, bool) {
	sessionID, ok := b.sessions[staffID]
	return sessionID, ok
}

// Len returns the number of reserved staff
func (b *BookingSet) Len() int {
	return len(b.sessions)
}

// StaffIDs returns the booked staff ids in ascending order
func (b *BookingSet) StaffIDs() []string {
	ids := make([]string, 0, len(b.sessions))
	for id := range b.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
