package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultLogsDir is where run logs are written when Options.LogsDir is empty
const DefaultLogsDir = "logs"

// Options configures InitLogger
type Options struct {
	// LogsDir holds one JSON log file per run
	LogsDir string

	// Verbose lowers the console level from Info to Debug. The file always logs at Debug.
	Verbose bool

	// Console receives human-readable output; defaults to stderr so command output stays clean
	Console io.Writer
}

// InitLogger initializes a zap logger with console and file outputs.
// The log file is named after the environment and start time, e.g. logs/prod_2025-10-06_07-30-00.log
func InitLogger(env string, opts Options) (*zap.Logger, error) {
	if env == "" {
		env = "default"
	}
	logsDir := opts.LogsDir
	if logsDir == "" {
		logsDir = DefaultLogsDir
	}
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create logs directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	logFileName := filepath.Join(logsDir, fmt.Sprintf("%s_%s.log", env, timestamp))
	logFile, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	consoleEncoderConfig := zap.NewDevelopmentEncoderConfig()
	consoleEncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	consoleEncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	fileEncoderConfig := zap.NewProductionEncoderConfig()
	fileEncoderConfig.TimeKey = "timestamp"
	fileEncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	consoleLevel := zapcore.InfoLevel
	if opts.Verbose {
		consoleLevel = zapcore.DebugLevel
	}

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleEncoderConfig), zapcore.AddSync(console), consoleLevel),
		zapcore.NewCore(zapcore.NewJSONEncoder(fileEncoderConfig), zapcore.AddSync(logFile), zapcore.DebugLevel),
	)

	logger := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)).
		With(zap.String("env", env))

	return logger, nil
}
