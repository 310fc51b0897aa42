package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/jakechorley/theatre-roster/internal/config"
	"github.com/jakechorley/theatre-roster/pkg/db"
)

// Migrator is implemented by databases that can create their own schema
type Migrator interface {
	RunMigrations(ctx context.Context) error
}

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	Database db.Database
	Logger   *zap.Logger
	Ctx      context.Context
}
