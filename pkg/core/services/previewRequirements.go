package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/theatre-roster/internal/config"
	"github.com/jakechorley/theatre-roster/pkg/core/model"
	"github.com/jakechorley/theatre-roster/pkg/core/requirements"
	"github.com/jakechorley/theatre-roster/pkg/db"
)

// PreviewRequirements calculates a date's staffing requirements without allocating anyone
func PreviewRequirements(
	ctx context.Context,
	store db.TheatreStore,
	cfg *config.Config,
	logger *zap.Logger,
	date string,
) ([]requirements.LocationRequirements, error) {
	day, err := time.Parse(model.DateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	calculator, err := buildCalculator(cfg, day, day, logger)
	if err != nil {
		return nil, err
	}
	if err := calculator.CheckConfigured(); err != nil {
		return nil, fmt.Errorf("cannot preview requirements: %w", err)
	}

	locations, err := loadLocations(ctx, store, calculator, cfg.HospitalID, date)
	if err != nil {
		return nil, err
	}

	logger.Debug("Previewed requirements",
		zap.String("date", date),
		zap.Int("locations", len(locations)),
		zap.Int("requested", requirements.TotalRequested(locations)))

	return locations, nil
}
