package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jakechorley/theatre-roster/pkg/db"
)

// GetStaff retrieves every staff record for a hospital, ordered by id
func (d *DB) GetStaff(ctx context.Context, hospitalID string) ([]db.Staff, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, hospital_id, display_name, role, band, status, competencies, hourly_rate,
		       home_lat, home_lng, unavailable_dates, allocated_dates
		FROM staff
		WHERE hospital_id = $1
		ORDER BY id
	`, hospitalID)
	if err != nil {
		return nil, fmt.Errorf("failed to query staff: %w", err)
	}
	defer rows.Close()

	var staff []db.Staff
	for rows.Next() {
		var s db.Staff
		var unavailable, allocated []time.Time
		if err := rows.Scan(
			&s.ID, &s.HospitalID, &s.DisplayName, &s.Role, &s.Band, &s.Status, &s.Competencies, &s.HourlyRate,
			&s.HomeLat, &s.HomeLng, &unavailable, &allocated,
		); err != nil {
			return nil, fmt.Errorf("failed to scan staff: %w", err)
		}
		s.UnavailableDates = formatDates(unavailable)
		s.AllocatedDates = formatDates(allocated)
		staff = append(staff, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating staff: %w", err)
	}

	return staff, nil
}

// GetStaffingRecords retrieves the auxiliary and night staffing records for a date
func (d *DB) GetStaffingRecords(ctx context.Context, date string) ([]db.StaffingRecord, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, date, unit, category, role, count
		FROM staffing_record
		WHERE date = $1
		ORDER BY category, unit, role
	`, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query staffing records: %w", err)
	}
	defer rows.Close()

	var records []db.StaffingRecord
	for rows.Next() {
		var r db.StaffingRecord
		var recordDate time.Time
		if err := rows.Scan(&r.ID, &recordDate, &r.Unit, &r.Category, &r.Role, &r.Count); err != nil {
			return nil, fmt.Errorf("failed to scan staffing record: %w", err)
		}
		r.Date = recordDate.Format("2006-01-02")
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating staffing records: %w", err)
	}

	return records, nil
}

func formatDates(dates []time.Time) []string {
	formatted := make([]string, len(dates))
	for i, date := range dates {
		formatted[i] = date.Format("2006-01-02")
	}
	return formatted
}
