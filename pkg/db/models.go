package db

import (
	"time"

	"github.com/jakechorley/theatre-roster/pkg/core/model"
)

// Theatre represents a database theatre record
type Theatre struct {
	ID                 string `yaml:"id"`
	HospitalID         string `yaml:"hospitalId"`
	Name               string `yaml:"name"`
	Type               string `yaml:"type"`
	AlwaysOn           bool   `yaml:"alwaysOn,omitempty"`
	DefaultSessionType string `yaml:"defaultSessionType,omitempty"`

	// SortOrder fixes the order locations are visited by the solver
	SortOrder int `yaml:"sortOrder"`

	Lat *float64 `yaml:"lat,omitempty"`
	Lng *float64 `yaml:"lng,omitempty"`
}

// DayConfiguration represents a calendar configuration for a theatre on a date
type DayConfiguration struct {
	Date        string `yaml:"date"`
	TheatreID   string `yaml:"theatreId"`
	SessionType string `yaml:"sessionType"`
}

// Case is a single procedure on a theatre list
type Case struct {
	ProcedureName string `json:"procedureName" yaml:"procedureName"`
	Surgeon       string `json:"surgeon,omitempty" yaml:"surgeon,omitempty"`
}

// TheatreList represents a scheduled operating list
type TheatreList struct {
	ID          string   `yaml:"id,omitempty"`
	TheatreName string   `yaml:"theatreName"`
	Date        string   `yaml:"date"`
	Specialty   string   `yaml:"specialty"`
	SessionType string   `yaml:"sessionType,omitempty"`
	Surgeons    []string `yaml:"surgeons,omitempty"`
	Cases       []Case   `yaml:"cases,omitempty"`
}

// Staff statuses
const (
	StaffStatusActive   = "active"
	StaffStatusInactive = "inactive"
)

// Staff represents a database staff record
type Staff struct {
	ID           string   `yaml:"id"`
	HospitalID   string   `yaml:"hospitalId"`
	DisplayName  string   `yaml:"displayName"`
	Role         string   `yaml:"role"`
	Band         string   `yaml:"band"`
	Status       string   `yaml:"status,omitempty"`
	Competencies []string `yaml:"competencies,omitempty"`
	HourlyRate   float64  `yaml:"hourlyRate,omitempty"`
	HomeLat      *float64 `yaml:"homeLat,omitempty"`
	HomeLng      *float64 `yaml:"homeLng,omitempty"`

	// UnavailableDates are leave, sickness and training days
	UnavailableDates []string `yaml:"unavailableDates,omitempty"`

	// AllocatedDates are days already committed outside the auto-roster
	AllocatedDates []string `yaml:"allocatedDates,omitempty"`
}

// Staffing record categories
const (
	StaffingAuxiliary = "auxiliary"
	StaffingNight     = "night"
)

// StaffingRecord is a manually entered headcount for a unit on a date
type StaffingRecord struct {
	ID       string `yaml:"id,omitempty"`
	Date     string `yaml:"date"`
	Unit     string `yaml:"unit"`
	Category string `yaml:"category"`
	Role     string `yaml:"role"`
	Count    int    `yaml:"count"`
}

// AllocationRecord represents a persisted session allocation.
// SessionID is "<theatreID>-<date>" and is unique.
type AllocationRecord struct {
	SessionID   string
	TheatreID   string
	Date        string
	SessionType string
	RunID       string
	Roles       []model.RoleAllocation
	CreatedAt   time.Time
}

// ToSessionAllocation converts the record to its domain form
func (r AllocationRecord) ToSessionAllocation() model.SessionAllocation {
	return model.SessionAllocation{
		SessionID:   r.SessionID,
		TheatreID:   r.TheatreID,
		Date:        r.Date,
		SessionType: r.SessionType,
		Roles:       r.Roles,
	}
}

// NewAllocationRecord builds a record from a session allocation produced by a run
func NewAllocationRecord(allocation model.SessionAllocation, runID string, createdAt time.Time) AllocationRecord {
	return AllocationRecord{
		SessionID:   allocation.SessionID,
		TheatreID:   allocation.TheatreID,
		Date:        allocation.Date,
		SessionType: allocation.SessionType,
		RunID:       runID,
		Roles:       allocation.Roles,
		CreatedAt:   createdAt,
	}
}
