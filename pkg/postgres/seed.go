package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/jakechorley/theatre-roster/pkg/db"
)

var _ db.Seeder = (*DB)(nil)

// InsertTheatres upserts theatre records
func (d *DB) InsertTheatres(ctx context.Context, theatres []db.Theatre) error {
	batch := &pgx.Batch{}
	for _, t := range theatres {
		theatreType := t.Type
		if theatreType == "" {
			theatreType = "elective"
		}
		batch.Queue(`
			INSERT INTO theatre (id, hospital_id, name, type, always_on, default_session_type, sort_order, lat, lng)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (id) DO UPDATE SET
				hospital_id = EXCLUDED.hospital_id,
				name = EXCLUDED.name,
				type = EXCLUDED.type,
				always_on = EXCLUDED.always_on,
				default_session_type = EXCLUDED.default_session_type,
				sort_order = EXCLUDED.sort_order,
				lat = EXCLUDED.lat,
				lng = EXCLUDED.lng
		`, t.ID, t.HospitalID, t.Name, theatreType, t.AlwaysOn, t.DefaultSessionType, t.SortOrder, t.Lat, t.Lng)
	}

	return d.sendBatch(ctx, batch, "theatres")
}

// InsertDayConfigurations upserts calendar entries
func (d *DB) InsertDayConfigurations(ctx context.Context, configurations []db.DayConfiguration) error {
	batch := &pgx.Batch{}
	for _, c := range configurations {
		date, err := parseDate(c.Date)
		if err != nil {
			return fmt.Errorf("invalid day configuration for %s: %w", c.TheatreID, err)
		}
		batch.Queue(`
			INSERT INTO day_configuration (theatre_id, date, session_type)
			VALUES ($1, $2, $3)
			ON CONFLICT (theatre_id, date) DO UPDATE SET session_type = EXCLUDED.session_type
		`, c.TheatreID, date, c.SessionType)
	}

	return d.sendBatch(ctx, batch, "day configurations")
}

// InsertTheatreLists upserts operating lists. Lists without an id are given one.
func (d *DB) InsertTheatreLists(ctx context.Context, lists []db.TheatreList) error {
	batch := &pgx.Batch{}
	for _, l := range lists {
		args, err := theatreListArgs(l)
		if err != nil {
			return err
		}
		batch.Queue(`
			INSERT INTO theatre_list (id, theatre_name, date, specialty, session_type, surgeons, cases)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (id) DO UPDATE SET
				theatre_name = EXCLUDED.theatre_name,
				date = EXCLUDED.date,
				specialty = EXCLUDED.specialty,
				session_type = EXCLUDED.session_type,
				surgeons = EXCLUDED.surgeons,
				cases = EXCLUDED.cases
		`, args...)
	}

	return d.sendBatch(ctx, batch, "theatre lists")
}

// InsertStaff upserts staff records
func (d *DB) InsertStaff(ctx context.Context, staff []db.Staff) error {
	batch := &pgx.Batch{}
	for _, s := range staff {
		args, err := staffArgs(s)
		if err != nil {
			return err
		}
		batch.Queue(`
			INSERT INTO staff (id, hospital_id, display_name, role, band, status, competencies, hourly_rate,
			                   home_lat, home_lng, unavailable_dates, allocated_dates)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			ON CONFLICT (id) DO UPDATE SET
				hospital_id = EXCLUDED.hospital_id,
				display_name = EXCLUDED.display_name,
				role = EXCLUDED.role,
				band = EXCLUDED.band,
				status = EXCLUDED.status,
				competencies = EXCLUDED.competencies,
				hourly_rate = EXCLUDED.hourly_rate,
				home_lat = EXCLUDED.home_lat,
				home_lng = EXCLUDED.home_lng,
				unavailable_dates = EXCLUDED.unavailable_dates,
				allocated_dates = EXCLUDED.allocated_dates
		`, args...)
	}

	return d.sendBatch(ctx, batch, "staff")
}

// InsertStaffingRecords inserts manual staffing records. Records without an id are given one.
func (d *DB) InsertStaffingRecords(ctx context.Context, records []db.StaffingRecord) error {
	batch := &pgx.Batch{}
	for _, r := range records {
		id := r.ID
		if id == "" {
			id = uuid.New().String()
		}
		date, err := parseDate(r.Date)
		if err != nil {
			return fmt.Errorf("invalid staffing record %s: %w", id, err)
		}
		batch.Queue(`
			INSERT INTO staffing_record (id, date, unit, category, role, count)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO UPDATE SET
				date = EXCLUDED.date,
				unit = EXCLUDED.unit,
				category = EXCLUDED.category,
				role = EXCLUDED.role,
				count = EXCLUDED.count
		`, id, date, r.Unit, r.Category, r.Role, r.Count)
	}

	return d.sendBatch(ctx, batch, "staffing records")
}

// sendBatch runs the queued statements in one implicit transaction
func (d *DB) sendBatch(ctx context.Context, batch *pgx.Batch, what string) error {
	if batch.Len() == 0 {
		return nil
	}
	if err := d.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert %s: %w", what, err)
	}
	d.logger.Debug("Seeded rows", zap.String("table", what), zap.Int("rows", batch.Len()))
	return nil
}

func theatreListArgs(l db.TheatreList) ([]any, error) {
	id := l.ID
	if id == "" {
		id = uuid.New().String()
	}
	date, err := parseDate(l.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid theatre list %s: %w", id, err)
	}

	surgeons := l.Surgeons
	if surgeons == nil {
		surgeons = []string{}
	}
	cases := l.Cases
	if cases == nil {
		cases = []db.Case{}
	}

	return []any{id, l.TheatreName, date, l.Specialty, l.SessionType, surgeons, cases}, nil
}

func staffArgs(s db.Staff) ([]any, error) {
	status := s.Status
	if status == "" {
		status = db.StaffStatusActive
	}
	competencies := s.Competencies
	if competencies == nil {
		competencies = []string{}
	}
	unavailable, err := parseDates(s.UnavailableDates)
	if err != nil {
		return nil, fmt.Errorf("invalid unavailable dates for staff %s: %w", s.ID, err)
	}
	allocated, err := parseDates(s.AllocatedDates)
	if err != nil {
		return nil, fmt.Errorf("invalid allocated dates for staff %s: %w", s.ID, err)
	}

	return []any{
		s.ID, s.HospitalID, s.DisplayName, s.Role, s.Band, status, competencies, s.HourlyRate,
		s.HomeLat, s.HomeLng, unavailable, allocated,
	}, nil
}

func parseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}

func parseDates(values []string) ([]time.Time, error) {
	dates := make([]time.Time, 0, len(values))
	for _, value := range values {
		date, err := parseDate(value)
		if err != nil {
			return nil, err
		}
		dates = append(dates, date)
	}
	return dates, nil
}
