package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/theatre-roster/cmd/cli/commands"
	"github.com/jakechorley/theatre-roster/internal/config"
	"github.com/jakechorley/theatre-roster/pkg/core/services"
	"github.com/jakechorley/theatre-roster/pkg/db"
	"github.com/jakechorley/theatre-roster/pkg/postgres"
	"github.com/jakechorley/theatre-roster/pkg/sqlite"
	"github.com/jakechorley/theatre-roster/pkg/utils/logging"
)

var (
	env     string
	logsDir string
	verbose bool
	app     = &commands.AppContext{}
	stop    context.CancelFunc
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "theatre-roster",
		Short: "Theatre Roster CLI - Auto-roster staff into operating theatre sessions",
		Long:  `A CLI tool for calculating theatre staffing requirements, allocating staff and reporting daily totals.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			shutdown()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.PersistentFlags().StringVar(&logsDir, "logs-dir", logging.DefaultLogsDir, "Directory for run log files")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show debug logs on the console")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(commands.AllocateCmd(app))
	rootCmd.AddCommand(commands.RequirementsCmd(app))
	rootCmd.AddCommand(commands.SummaryCmd(app))
	rootCmd.AddCommand(commands.MigrateCmd(app))
	rootCmd.AddCommand(commands.SeedCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(os.Stdin))

	if err := rootCmd.Execute(); err != nil {
		shutdown()
		os.Exit(1)
	}
}

// initApp sets up logger, config and database
func initApp() error {
	var err error

	app.Ctx, stop = signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	app.Logger, err = logging.InitLogger(env, logging.Options{LogsDir: logsDir, Verbose: verbose})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	app.Logger.Info("Starting application", zap.String("environment", env))

	// A local .env may hold THEATRE_ROSTER_DATABASE_DSN
	if err := godotenv.Load(); err == nil {
		app.Logger.Debug("Loaded .env file")
	}

	app.Logger.Debug("Loading configuration")
	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := services.ApplyRoleSynonyms(app.Cfg); err != nil {
		return fmt.Errorf("failed to apply role synonyms: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully", zap.String("hospital_id", app.Cfg.HospitalID))

	app.Database, err = openDatabase(app.Ctx, app.Cfg.Database, app.Logger)
	if err != nil {
		return err
	}
	app.Logger.Debug("Database initialized successfully", zap.String("driver", app.Cfg.Database.Driver))

	return nil
}

// openDatabase connects to the configured store
func openDatabase(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (db.Database, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		database, err := postgres.NewDB(ctx, cfg.DSN, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		return database, nil
	case config.DriverSQLite:
		database, err := sqlite.NewDB(cfg.DSN, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		return database, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func shutdown() {
	if app.Database != nil {
		if err := app.Database.Close(); err != nil && app.Logger != nil {
			app.Logger.Warn("Failed to close database", zap.Error(err))
		}
		app.Database = nil
	}
	if app.Logger != nil {
		app.Logger.Sync()
	}
	if stop != nil {
		stop()
	}
}
