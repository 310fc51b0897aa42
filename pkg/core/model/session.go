package model

import "fmt"

// DateLayout is the canonical date format used throughout the roster
const DateLayout = "2006-01-02"

// Session types
const (
	SessionDay     = "day"
	SessionLongDay = "long-day"
	SessionNight   = "night"
	SessionAM      = "am"
	SessionPM      = "pm"
	SessionClosed  = "closed"
)

// Theatre types that change requirement calculation
const (
	TheatreTypeElective  = "elective"
	TheatreTypeEmergency = "emergency"
	TheatreTypeTrauma    = "trauma"
)

// ShiftCategory is the reporting bucket a session falls into
type ShiftCategory string

const (
	ShiftDay     ShiftCategory = "day"
	ShiftLongDay ShiftCategory = "longDay"
	ShiftNight   ShiftCategory = "night"
)

// CategoryForSessionType maps a session type onto its reporting bucket
func CategoryForSessionType(sessionType string) ShiftCategory {
	switch sessionType {
	case SessionLongDay:
		return ShiftLongDay
	case SessionNight:
		return ShiftNight
	default:
		return ShiftDay
	}
}

// Theatre is a staffable location
type Theatre struct {
	ID         string
	Name       string
	HospitalID string
	Type       string
	Site       *Coordinates

	// AlwaysOn theatres (emergency theatre, night pseudo-theatre, satellite sites)
	// are staffed every day even when no list is scheduled
	AlwaysOn bool

	// DefaultSessionType applies when neither the calendar nor a list sets one
	DefaultSessionType string
}

// IsEmergency reports whether the theatre is an emergency or trauma theatre
func (t Theatre) IsEmergency() bool {
	return t.Type == TheatreTypeEmergency || t.Type == TheatreTypeTrauma
}

// TheatreSession is one theatre on one date with a session type
type TheatreSession struct {
	ID          string
	TheatreID   string
	Date        string
	SessionType string
	Specialty   string
	Surgeons    []string
}

// SessionID builds the persistence key for a theatre on a date
func SessionID(theatreID, date string) string {
	return fmt.Sprintf("%s-%s", theatreID, date)
}

// IsClosed reports whether no staff are required for the session
func (s TheatreSession) IsClosed() bool {
	return s.SessionType == SessionClosed
}

// RoleRequirement states how many staff of a role a session needs
type RoleRequirement struct {
	SessionID string
	Role      Role
	Quantity  int
}

// Coordinates is a WGS84 latitude/longitude pair
type Coordinates struct {
	Lat float64
	Lng float64
}
