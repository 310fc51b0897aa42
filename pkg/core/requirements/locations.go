package requirements

import (
	"fmt"
	"strings"
	"time"

	"github.com/jakechorley/theatre-roster/pkg/core/model"
)

// CalendarEntry is a configured session type for a theatre on a date
type CalendarEntry struct {
	Date        string
	TheatreID   string
	SessionType string
}

// TheatreList is a scheduled operating list.
// Lists are joined to theatres by case-insensitive name, which must be unique on the date.
type TheatreList struct {
	TheatreName string
	Date        string
	Specialty   string
	SessionType string
	Surgeons    []string
	Procedures  []string
}

// LocationRequirements is the requirement entry for one staffable location on a date
type LocationRequirements struct {
	Session    model.TheatreSession
	Theatre    model.Theatre
	Procedures []string
	Roles      []model.RoleRequirement

	// SpecialtyID is the canonical specialty the requirements were calculated under
	SpecialtyID string

	// Synthetic is set when the entry was created for an always-on location without a list
	Synthetic bool
}

// BuildLocations builds the ordered requirement entries for every staffable
// location on a date. Entries follow the order of theatres.
func (c *Calculator) BuildLocations(date string, theatres []model.Theatre, calendar []CalendarEntry, lists []TheatreList) ([]LocationRequirements, error) {
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}
	if err := c.CheckConfigured(); err != nil {
		return nil, err
	}

	calendarByTheatre := make(map[string]CalendarEntry)
	for _, entry := range calendar {
		if entry.Date == date {
			calendarByTheatre[entry.TheatreID] = entry
		}
	}

	listsByTheatre := make(map[string][]TheatreList)
	for _, list := range lists {
		if list.Date != date {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(list.TheatreName))
		listsByTheatre[key] = append(listsByTheatre[key], list)
	}

	theatreByName := make(map[string]string, len(theatres))
	for _, theatre := range theatres {
		key := strings.ToLower(strings.TrimSpace(theatre.Name))
		if other, ok := theatreByName[key]; ok && len(listsByTheatre[key]) > 0 {
			return nil, fmt.Errorf("theatre list for %q matches more than one theatre (%s, %s)", theatre.Name, other, theatre.ID)
		}
		theatreByName[key] = theatre.ID
	}

	locations := make([]LocationRequirements, 0, len(theatres))
	for _, theatre := range theatres {
		theatreLists := listsByTheatre[strings.ToLower(strings.TrimSpace(theatre.Name))]
		entry, hasCalendar := calendarByTheatre[theatre.ID]

		if len(theatreLists) == 0 && !hasCalendar && !theatre.AlwaysOn {
			continue
		}

		session := model.TheatreSession{
			ID:        model.SessionID(theatre.ID, date),
			TheatreID: theatre.ID,
			Date:      date,
		}

		var procedures []string
		for _, list := range theatreLists {
			procedures = append(procedures, list.Procedures...)
			session.Surgeons = append(session.Surgeons, list.Surgeons...)
			if session.Specialty == "" {
				session.Specialty = list.Specialty
			}
			if session.SessionType == "" {
				session.SessionType = list.SessionType
			}
		}

		if hasCalendar && entry.SessionType != "" {
			session.SessionType = entry.SessionType
		}
		if session.SessionType == "" {
			session.SessionType = theatre.DefaultSessionType
		}
		if session.SessionType == "" {
			session.SessionType = model.SessionDay
		}

		synthetic := len(theatreLists) == 0 && theatre.AlwaysOn && !session.IsClosed()
		if synthetic {
			session.Specialty = EmergencySpecialtyID
		}

		roles, err := c.CalculateRequirements(session, theatre, procedures)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate requirements for %s: %w", session.ID, err)
		}

		locations = append(locations, LocationRequirements{
			Session:     session,
			Theatre:     theatre,
			Procedures:  procedures,
			Roles:       roles,
			SpecialtyID: c.SpecialtyFor(session, theatre),
			Synthetic:   synthetic,
		})
	}

	return locations, nil
}

// TotalRequested returns the total headcount requested across all locations
func TotalRequested(locations []LocationRequirements) int {
	total := 0
	for _, location := range locations {
		for _, role := range location.Roles {
			total += role.Quantity
		}
	}
	return total
}
