// Package logging builds the zap loggers used across the application and
// adapts them to the logger interfaces of gorm and backlite.
package logging

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"
)

// New creates a logger.
// level: "debug", "info", "warn", "error" (default: "info")
// format: "json" or "console" (default: "json")
func New(level, format string) (*zap.Logger, error) {
	zapLevel, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	var cfg zap.Config
	if format == "console" {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.OutputPaths = []string{"stdout"}
		cfg.ErrorOutputPaths = []string{"stderr"}
	}
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger.With(zap.String("service", "sleeptracker")), nil
}

func parseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(level) {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.DebugLevel, nil
	case "warn":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", level)
	}
}

// NewGormLogger routes gorm's SQL logging through zap. Record-not-found is
// an expected outcome of single-row lookups, so it is never logged.
func NewGormLogger(logger *zap.Logger, level string) gormlogger.Interface {
	return gormlogger.New(
		zap.NewStdLog(logger.Named("gorm")),
		gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormLevel(level),
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

func gormLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return gormlogger.Info
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	default:
		return gormlogger.Warn
	}
}

// TaskLogger implements backlite.Logger on top of zap. backlite passes
// key/value pairs, which map directly onto the sugared *w methods.
type TaskLogger struct {
	s *zap.SugaredLogger
}

func NewTaskLogger(logger *zap.Logger) *TaskLogger {
	return &TaskLogger{s: logger.Named("tasks").Sugar()}
}

func (l *TaskLogger) Info(message string, params ...any)  { l.s.Infow(message, params...) }
func (l *TaskLogger) Error(message string, params ...any) { l.s.Errorw(message, params...) }
