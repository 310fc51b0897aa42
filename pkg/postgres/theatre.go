package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jakechorley/theatre-roster/pkg/db"
)

// GetTheatres retrieves a hospital's theatres in solver order
func (d *DB) GetTheatres(ctx context.Context, hospitalID string) ([]db.Theatre, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, hospital_id, name, type, always_on, default_session_type, sort_order, lat, lng
		FROM theatre
		WHERE hospital_id = $1
		ORDER BY sort_order, id
	`, hospitalID)
	if err != nil {
		return nil, fmt.Errorf("failed to query theatres: %w", err)
	}
	defer rows.Close()

	var theatres []db.Theatre
	for rows.Next() {
		var t db.Theatre
		if err := rows.Scan(&t.ID, &t.HospitalID, &t.Name, &t.Type, &t.AlwaysOn, &t.DefaultSessionType, &t.SortOrder, &t.Lat, &t.Lng); err != nil {
			return nil, fmt.Errorf("failed to scan theatre: %w", err)
		}
		theatres = append(theatres, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating theatres: %w", err)
	}

	return theatres, nil
}

// LoadCalendarConfigurations retrieves calendar entries for the given theatres within [start, end]
func (d *DB) LoadCalendarConfigurations(ctx context.Context, start, end string, theatreIDs []string) ([]db.DayConfiguration, error) {
	if len(theatreIDs) == 0 {
		return nil, nil
	}

	rows, err := d.pool.Query(ctx, `
		SELECT theatre_id, date, session_type
		FROM day_configuration
		WHERE date BETWEEN $1 AND $2 AND theatre_id = ANY($3)
		ORDER BY date, theatre_id
	`, start, end, theatreIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query day configurations: %w", err)
	}
	defer rows.Close()

	var configurations []db.DayConfiguration
	for rows.Next() {
		var c db.DayConfiguration
		var date time.Time
		if err := rows.Scan(&c.TheatreID, &date, &c.SessionType); err != nil {
			return nil, fmt.Errorf("failed to scan day configuration: %w", err)
		}
		c.Date = date.Format("2006-01-02")
		configurations = append(configurations, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating day configurations: %w", err)
	}

	return configurations, nil
}

// GetTheatreListsByDateRange retrieves operating lists within [start, end]
func (d *DB) GetTheatreListsByDateRange(ctx context.Context, start, end string) ([]db.TheatreList, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, theatre_name, date, specialty, session_type, surgeons, cases
		FROM theatre_list
		WHERE date BETWEEN $1 AND $2
		ORDER BY date, theatre_name, id
	`, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query theatre lists: %w", err)
	}
	defer rows.Close()

	var lists []db.TheatreList
	for rows.Next() {
		var l db.TheatreList
		var date time.Time
		if err := rows.Scan(&l.ID, &l.TheatreName, &date, &l.Specialty, &l.SessionType, &l.Surgeons, &l.Cases); err != nil {
			return nil, fmt.Errorf("failed to scan theatre list: %w", err)
		}
		l.Date = date.Format("2006-01-02")
		lists = append(lists, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating theatre lists: %w", err)
	}

	return lists, nil
}
