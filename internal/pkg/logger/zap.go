// Package logger builds the process-wide loggers.
//
// zap is the primary logger and is installed as the zap global, so packages
// log with zap.L(). Components that take a *slog.Logger get one that writes
// JSON to the same stream at the same level.
package logger

import (
	"fmt"
	"io"
	"log/slog"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Initialize parses level, builds a production zap logger and replaces the zap globals with it.
func Initialize(level string) (*zap.Logger, error) {
	atomicLevel, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("error while setting atomic level to zap logger: %w", err)
	}

	zapConfig := zap.NewProductionConfig()
	zapConfig.Level = atomicLevel

	log, err := zapConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("error while building zap logger: %w", err)
	}

	zap.ReplaceGlobals(log)

	return log, nil
}

// NewSlog returns a JSON slog logger writing to w at the slog equivalent of the zap level.
func NewSlog(w io.Writer, level string) (*slog.Logger, error) {
	zapLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("error while parsing slog level: %w", err)
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: SlogLevel(zapLevel)})
	return slog.New(handler), nil
}

// SlogLevel maps a zap level onto slog. Levels above error collapse to error.
func SlogLevel(level zapcore.Level) slog.Level {
	switch {
	case level <= zapcore.DebugLevel:
		return slog.LevelDebug
	case level == zapcore.InfoLevel:
		return slog.LevelInfo
	case level == zapcore.WarnLevel:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
