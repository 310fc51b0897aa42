package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jakechorley/theatre-roster/pkg/db"
)

// GetAllocationsByDate retrieves the auto-roster allocations stored for a date
func (d *DB) GetAllocationsByDate(ctx context.Context, date string) ([]db.AllocationRecord, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT session_id, theatre_id, date, session_type, run_id, roles, created_at
		FROM auto_roster_allocation
		WHERE date = $1
		ORDER BY session_id
	`, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query allocations: %w", err)
	}
	defer rows.Close()

	var allocations []db.AllocationRecord
	for rows.Next() {
		var a db.AllocationRecord
		var allocationDate time.Time
		if err := rows.Scan(&a.SessionID, &a.TheatreID, &allocationDate, &a.SessionType, &a.RunID, &a.Roles, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan allocation: %w", err)
		}
		a.Date = allocationDate.Format("2006-01-02")
		allocations = append(allocations, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating allocations: %w", err)
	}

	return allocations, nil
}

// SaveAutoRosterAllocations replaces the allocations stored for a date in a single transaction
func (d *DB) SaveAutoRosterAllocations(ctx context.Context, date string, allocations []db.AllocationRecord) error {
	if err := db.CheckAllocationDates(date, allocations); err != nil {
		return err
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM auto_roster_allocation WHERE date = $1`, date); err != nil {
		return fmt.Errorf("failed to clear allocations for %s: %w", date, err)
	}

	for _, a := range allocations {
		createdAt := a.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now()
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO auto_roster_allocation (session_id, theatre_id, date, session_type, run_id, roles, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (session_id) DO UPDATE SET
				theatre_id = EXCLUDED.theatre_id,
				date = EXCLUDED.date,
				session_type = EXCLUDED.session_type,
				run_id = EXCLUDED.run_id,
				roles = EXCLUDED.roles,
				created_at = EXCLUDED.created_at
		`, a.SessionID, a.TheatreID, a.Date, a.SessionType, a.RunID, a.Roles, createdAt.UTC())
		if err != nil {
			return fmt.Errorf("failed to insert allocation %s: %w", a.SessionID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
