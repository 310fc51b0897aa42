package sqlite

import (
	"time"

	"github.com/jakechorley/theatre-roster/pkg/core/model"
	"github.com/jakechorley/theatre-roster/pkg/db"
)

// theatreRow represents the theatre table
type theatreRow struct {
	ID                 string `gorm:"primaryKey"`
	HospitalID         string `gorm:"index;not null"`
	Name               string `gorm:"not null"`
	Type               string `gorm:"not null;default:elective"`
	AlwaysOn           bool   `gorm:"not null;default:false"`
	DefaultSessionType string
	SortOrder          int `gorm:"not null;default:0"`
	Lat                *float64
	Lng                *float64
}

func (theatreRow) TableName() string { return "theatre" }

// dayConfigurationRow represents the day_configuration table
type dayConfigurationRow struct {
	TheatreID   string `gorm:"primaryKey"`
	Date        string `gorm:"primaryKey"`
	SessionType string `gorm:"not null"`
}

func (dayConfigurationRow) TableName() string { return "day_configuration" }

// theatreListRow represents the theatre_list table
type theatreListRow struct {
	ID          string `gorm:"primaryKey"`
	TheatreName string `gorm:"not null"`
	Date        string `gorm:"index;not null"`
	Specialty   string
	SessionType string
	Surgeons    []string  `gorm:"serializer:json"`
	Cases       []db.Case `gorm:"serializer:json"`
}

func (theatreListRow) TableName() string { return "theatre_list" }

// staffRow represents the staff table
type staffRow struct {
	ID               string `gorm:"primaryKey"`
	HospitalID       string `gorm:"index;not null"`
	DisplayName      string `gorm:"not null"`
	Role             string `gorm:"not null"`
	Band             string
	Status           string   `gorm:"not null;default:active"`
	Competencies     []string `gorm:"serializer:json"`
	HourlyRate       float64
	HomeLat          *float64
	HomeLng          *float64
	UnavailableDates []string `gorm:"serializer:json"`
	AllocatedDates   []string `gorm:"serializer:json"`
}

func (staffRow) TableName() string { return "staff" }

// staffingRecordRow represents the staffing_record table
type staffingRecordRow struct {
	ID       string `gorm:"primaryKey"`
	Date     string `gorm:"index;not null"`
	Unit     string `gorm:"not null"`
	Category string `gorm:"not null"`
	Role     string `gorm:"not null"`
	Count    int    `gorm:"not null"`
}

func (staffingRecordRow) TableName() string { return "staffing_record" }

// allocationRow represents the auto_roster_allocation table
type allocationRow struct {
	SessionID   string                 `gorm:"primaryKey"`
	TheatreID   string                 `gorm:"not null"`
	Date        string                 `gorm:"index;not null"`
	SessionType string                 `gorm:"not null"`
	RunID       string                 `gorm:"not null"`
	Roles       []model.RoleAllocation `gorm:"serializer:json"`
	CreatedAt   time.Time
}

func (allocationRow) TableName() string { return "auto_roster_allocation" }

func allModels() []any {
	return []any{
		&theatreRow{},
		&dayConfigurationRow{},
		&theatreListRow{},
		&staffRow{},
		&staffingRecordRow{},
		&allocationRow{},
	}
}
