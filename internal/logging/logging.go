// Package logging builds the zap loggers used by the CLI, the HTTP server and
// the scenario log.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects level, encoding and an optional output file
type Config struct {
	Level      string `mapstructure:"level" yaml:"level,omitempty"`   // debug, info, warn, error
	Format     string `mapstructure:"format" yaml:"format,omitempty"` // json, console
	OutputFile string `mapstructure:"output_file" yaml:"output_file,omitempty"`
}

// ParseLevel maps a level name to a zap level
func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "", "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("invalid log level: %s", level)
	}
}

// New creates a logger. levelOverride, when set, takes precedence over
// cfg.Level so that a command-line flag can win over the settings file.
func New(cfg Config, levelOverride string) (*zap.Logger, error) {
	level := cfg.Level
	if levelOverride != "" {
		level = levelOverride
	}
	zapLevel, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	format := cfg.Format
	if format == "" {
		format = "console"
	}

	var zc zap.Config
	switch format {
	case "console":
		zc = zap.NewDevelopmentConfig()
		zc.DisableStacktrace = true
	case "json":
		zc = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}
	zc.Level = zap.NewAtomicLevelAt(zapLevel)
	// Diagnostics go to stderr so command output on stdout stays parseable.
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}

	if cfg.OutputFile != "" {
		if dir := filepath.Dir(cfg.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
			}
		}
		zc.OutputPaths = []string{cfg.OutputFile}
		zc.ErrorOutputPaths = []string{cfg.OutputFile}
	}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

// OrNop returns l, or a no-op logger when l is nil
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
