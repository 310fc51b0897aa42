package sqlite

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jakechorley/theatre-roster/pkg/db"
)

var (
	_ db.Database = (*DB)(nil)
	_ db.Seeder   = (*DB)(nil)
)

// DB provides database operations using a local SQLite file
type DB struct {
	gorm   *gorm.DB
	logger *zap.Logger
}

// NewDB opens (or creates) the SQLite database at path
func NewDB(path string, logger *zap.Logger) (*DB, error) {
	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	return &DB{gorm: gdb, logger: logger}, nil
}

// Close closes the underlying connection
func (d *DB) Close() error {
	sqlDB, err := d.gorm.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql handle: %w", err)
	}
	return sqlDB.Close()
}

// RunMigrations creates or updates every table
func (d *DB) RunMigrations(ctx context.Context) error {
	d.logger.Info("Migrating sqlite schema", zap.Int("tables", len(allModels())))
	if err := d.gorm.WithContext(ctx).AutoMigrate(allModels()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
