package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jakechorley/theatre-roster/pkg/db"
)

// GetTheatres retrieves a hospital's theatres in solver order
func (d *DB) GetTheatres(ctx context.Context, hospitalID string) ([]db.Theatre, error) {
	var rows []theatreRow
	if err := d.gorm.WithContext(ctx).
		Where("hospital_id = ?", hospitalID).
		Order("sort_order, id").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query theatres: %w", err)
	}

	theatres := make([]db.Theatre, len(rows))
	for i, r := range rows {
		theatres[i] = db.Theatre{
			ID:                 r.ID,
			HospitalID:         r.HospitalID,
			Name:               r.Name,
			Type:               r.Type,
			AlwaysOn:           r.AlwaysOn,
			DefaultSessionType: r.DefaultSessionType,
			SortOrder:          r.SortOrder,
			Lat:                r.Lat,
			Lng:                r.Lng,
		}
	}
	return theatres, nil
}

// LoadCalendarConfigurations retrieves calendar entries for the given theatres within [start, end]
func (d *DB) LoadCalendarConfigurations(ctx context.Context, start, end string, theatreIDs []string) ([]db.DayConfiguration, error) {
	if len(theatreIDs) == 0 {
		return nil, nil
	}

	var rows []dayConfigurationRow
	if err := d.gorm.WithContext(ctx).
		Where("date BETWEEN ? AND ? AND theatre_id IN ?", start, end, theatreIDs).
		Order("date, theatre_id").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query day configurations: %w", err)
	}

	configurations := make([]db.DayConfiguration, len(rows))
	for i, r := range rows {
		configurations[i] = db.DayConfiguration{Date: r.Date, TheatreID: r.TheatreID, SessionType: r.SessionType}
	}
	return configurations, nil
}

// GetTheatreListsByDateRange retrieves operating lists within [start, end]
func (d *DB) GetTheatreListsByDateRange(ctx context.Context, start, end string) ([]db.TheatreList, error) {
	var rows []theatreListRow
	if err := d.gorm.WithContext(ctx).
		Where("date BETWEEN ? AND ?", start, end).
		Order("date, theatre_name, id").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query theatre lists: %w", err)
	}

	lists := make([]db.TheatreList, len(rows))
	for i, r := range rows {
		lists[i] = db.TheatreList{
			ID:          r.ID,
			TheatreName: r.TheatreName,
			Date:        r.Date,
			Specialty:   r.Specialty,
			SessionType: r.SessionType,
			Surgeons:    r.Surgeons,
			Cases:       r.Cases,
		}
	}
	return lists, nil
}

// GetStaff retrieves every staff record for a hospital, ordered by id
func (d *DB) GetStaff(ctx context.Context, hospitalID string) ([]db.Staff, error) {
	var rows []staffRow
	if err := d.gorm.WithContext(ctx).
		Where("hospital_id = ?", hospitalID).
		Order("id").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query staff: %w", err)
	}

	staff := make([]db.Staff, len(rows))
	for i, r := range rows {
		staff[i] = db.Staff{
			ID:               r.ID,
			HospitalID:       r.HospitalID,
			DisplayName:      r.DisplayName,
			Role:             r.Role,
			Band:             r.Band,
			Status:           r.Status,
			Competencies:     r.Competencies,
			HourlyRate:       r.HourlyRate,
			HomeLat:          r.HomeLat,
			HomeLng:          r.HomeLng,
			UnavailableDates: r.UnavailableDates,
			AllocatedDates:   r.AllocatedDates,
		}
	}
	return staff, nil
}

// GetStaffingRecords retrieves the auxiliary and night staffing records for a date
func (d *DB) GetStaffingRecords(ctx context.Context, date string) ([]db.StaffingRecord, error) {
	var rows []staffingRecordRow
	if err := d.gorm.WithContext(ctx).
		Where("date = ?", date).
		Order("category, unit, role").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query staffing records: %w", err)
	}

	records := make([]db.StaffingRecord, len(rows))
	for i, r := range rows {
		records[i] = db.StaffingRecord{
			ID:       r.ID,
			Date:     r.Date,
			Unit:     r.Unit,
			Category: r.Category,
			Role:     r.Role,
			Count:    r.Count,
		}
	}
	return records, nil
}

// GetAllocationsByDate retrieves the auto-roster allocations stored for a date
func (d *DB) GetAllocationsByDate(ctx context.Context, date string) ([]db.AllocationRecord, error) {
	var rows []allocationRow
	if err := d.gorm.WithContext(ctx).
		Where("date = ?", date).
		Order("session_id").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query allocations: %w", err)
	}

	allocations := make([]db.AllocationRecord, len(rows))
	for i, r := range rows {
		allocations[i] = db.AllocationRecord{
			SessionID:   r.SessionID,
			TheatreID:   r.TheatreID,
			Date:        r.Date,
			SessionType: r.SessionType,
			RunID:       r.RunID,
			Roles:       r.Roles,
			CreatedAt:   r.CreatedAt,
		}
	}
	return allocations, nil
}

// SaveAutoRosterAllocations replaces the allocations stored for a date in a single transaction
func (d *DB) SaveAutoRosterAllocations(ctx context.Context, date string, allocations []db.AllocationRecord) error {
	if err := db.CheckAllocationDates(date, allocations); err != nil {
		return err
	}

	return d.gorm.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("date = ?", date).Delete(&allocationRow{}).Error; err != nil {
			return fmt.Errorf("failed to clear allocations for %s: %w", date, err)
		}

		for _, a := range allocations {
			createdAt := a.CreatedAt
			if createdAt.IsZero() {
				createdAt = time.Now()
			}

			row := allocationRow{
				SessionID:   a.SessionID,
				TheatreID:   a.TheatreID,
				Date:        a.Date,
				SessionType: a.SessionType,
				RunID:       a.RunID,
				Roles:       a.Roles,
				CreatedAt:   createdAt.UTC(),
			}
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error; err != nil {
				return fmt.Errorf("failed to insert allocation %s: %w", a.SessionID, err)
			}
		}

		return nil
	})
}

// InsertTheatres upserts theatre records
func (d *DB) InsertTheatres(ctx context.Context, theatres []db.Theatre) error {
	if len(theatres) == 0 {
		return nil
	}

	rows := make([]theatreRow, len(theatres))
	for i, t := range theatres {
		rows[i] = theatreRow{
			ID:                 t.ID,
			HospitalID:         t.HospitalID,
			Name:               t.Name,
			Type:               t.Type,
			AlwaysOn:           t.AlwaysOn,
			DefaultSessionType: t.DefaultSessionType,
			SortOrder:          t.SortOrder,
			Lat:                t.Lat,
			Lng:                t.Lng,
		}
	}

	if err := d.gorm.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to insert theatres: %w", err)
	}
	return nil
}

// InsertDayConfigurations upserts calendar entries
func (d *DB) InsertDayConfigurations(ctx context.Context, configurations []db.DayConfiguration) error {
	if len(configurations) == 0 {
		return nil
	}

	rows := make([]dayConfigurationRow, len(configurations))
	for i, c := range configurations {
		rows[i] = dayConfigurationRow{TheatreID: c.TheatreID, Date: c.Date, SessionType: c.SessionType}
	}

	if err := d.gorm.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to insert day configurations: %w", err)
	}
	return nil
}

// InsertTheatreLists upserts operating lists. Lists without an id are given one.
func (d *DB) InsertTheatreLists(ctx context.Context, lists []db.TheatreList) error {
	if len(lists) == 0 {
		return nil
	}

	rows := make([]theatreListRow, len(lists))
	for i, l := range lists {
		id := l.ID
		if id == "" {
			id = uuid.New().String()
		}
		rows[i] = theatreListRow{
			ID:          id,
			TheatreName: l.TheatreName,
			Date:        l.Date,
			Specialty:   l.Specialty,
			SessionType: l.SessionType,
			Surgeons:    l.Surgeons,
			Cases:       l.Cases,
		}
	}

	if err := d.gorm.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to insert theatre lists: %w", err)
	}
	return nil
}

// InsertStaff upserts staff records
func (d *DB) InsertStaff(ctx context.Context, staff []db.Staff) error {
	if len(staff) == 0 {
		return nil
	}

	rows := make([]staffRow, len(staff))
	for i, s := range staff {
		status := s.Status
		if status == "" {
			status = db.StaffStatusActive
		}
		rows[i] = staffRow{
			ID:               s.ID,
			HospitalID:       s.HospitalID,
			DisplayName:      s.DisplayName,
			Role:             s.Role,
			Band:             s.Band,
			Status:           status,
			Competencies:     s.Competencies,
			HourlyRate:       s.HourlyRate,
			HomeLat:          s.HomeLat,
			HomeLng:          s.HomeLng,
			UnavailableDates: s.UnavailableDates,
			AllocatedDates:   s.AllocatedDates,
		}
	}

	if err := d.gorm.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to insert staff: %w", err)
	}
	return nil
}

// InsertStaffingRecords inserts manual staffing records. Records without an id are given one.
func (d *DB) InsertStaffingRecords(ctx context.Context, records []db.StaffingRecord) error {
	if len(records) == 0 {
		return nil
	}

	rows := make([]staffingRecordRow, len(records))
	for i, r := range records {
		id := r.ID
		if id == "" {
			id = uuid.New().String()
		}
		rows[i] = staffingRecordRow{
			ID:       id,
			Date:     r.Date,
			Unit:     r.Unit,
			Category: r.Category,
			Role:     r.Role,
			Count:    r.Count,
		}
	}

	if err := d.gorm.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to insert staffing records: %w", err)
	}
	return nil
}
