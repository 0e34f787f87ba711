// Package logging builds the zap logger used across consolebot and hands out
// per-category child loggers.
// When the text backend runs in demo mode logging is switched off entirely so
// only the conversation reaches the terminal.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"consolebot/internal/config"
)

// Category represents a log category/subsystem
type Category string

const (
	CategoryBoot    Category = "boot"    // Launcher, config loading
	CategoryBackend Category = "backend" // Text backend session loop
	CategoryHost    Category = "host"    // Host framework callbacks and commands
	CategoryRender  Category = "render"  // Markdown converters
	CategoryConsole Category = "console" // Terminal input
)

// New builds a logger from the logging configuration.
func New(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	zc := zap.NewProductionConfig()
	if cfg.Format == "console" {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Encoding = cfg.Format
	zc.DisableStacktrace = level > zapcore.DebugLevel
	zc.OutputPaths = []string{"stderr"}
	if cfg.File != "" {
		zc.OutputPaths = append(zc.OutputPaths, cfg.File)
	}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// ForMode returns a no-op logger in demo mode, otherwise builds one from cfg.
func ForMode(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Text.DemoMode {
		return zap.NewNop(), nil
	}
	return New(cfg.Logging)
}

// Get returns the child logger for a category.
func Get(logger *zap.Logger, category Category) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger.Named(string(category))
}
