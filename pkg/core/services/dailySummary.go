package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/theatre-roster/pkg/core/model"
	"github.com/jakechorley/theatre-roster/pkg/core/summary"
	"github.com/jakechorley/theatre-roster/pkg/db"
)

// DailySummaryStore defines the database operations needed for a daily summary
type DailySummaryStore interface {
	GetAllocationsByDate(ctx context.Context, date string) ([]db.AllocationRecord, error)
	GetStaffingRecords(ctx context.Context, date string) ([]db.StaffingRecord, error)
}

// DailySummary totals the stored allocations and manual staffing records for a date
func DailySummary(ctx context.Context, store DailySummaryStore, logger *zap.Logger, date string) (*summary.Summary, error) {
	records, err := store.GetAllocationsByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to get allocations: %w", err)
	}

	allocations := make([]model.SessionAllocation, len(records))
	for i, r := range records {
		allocations[i] = r.ToSessionAllocation()
	}

	staffing, err := store.GetStaffingRecords(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to get staffing records: %w", err)
	}

	var auxiliary, night []model.StaffingCount
	for _, r := range staffing {
		count := model.StaffingCount{Role: r.Role, Count: r.Count}
		switch r.Category {
		case db.StaffingAuxiliary:
			auxiliary = append(auxiliary, count)
		case db.StaffingNight:
			night = append(night, count)
		default:
			logger.Warn("Ignoring staffing record with unknown category",
				zap.String("id", r.ID),
				zap.String("category", r.Category))
		}
	}

	logger.Debug("Summarising date",
		zap.String("date", date),
		zap.Int("sessions", len(allocations)),
		zap.Int("auxiliary", len(auxiliary)),
		zap.Int("night", len(night)))

	result, err := summary.Summarise(date, allocations, auxiliary, night)
	if err != nil {
		return nil, fmt.Errorf("failed to summarise %s: %w", date, err)
	}
	return &result, nil
}
