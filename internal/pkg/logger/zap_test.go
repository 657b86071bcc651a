package logger_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"foodify/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestInitialize(t *testing.T) {
	t.Run("should install global logger at requested level", func(t *testing.T) {
		previous := zap.L()
		t.Cleanup(func() { zap.ReplaceGlobals(previous) })

		log, err := logger.Initialize("warn")

		require.NoError(t, err)
		assert.Same(t, log, zap.L())
		assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
		assert.True(t, log.Core().Enabled(zapcore.WarnLevel))
	})

	t.Run("should reject unknown level", func(t *testing.T) {
		log, err := logger.Initialize("loud")

		require.Error(t, err)
		assert.Nil(t, log)
	})
}

func TestNewSlog(t *testing.T) {
	var buf bytes.Buffer
	log, err := logger.NewSlog(&buf, "warn")
	require.NoError(t, err)

	log.Info("dropped")
	log.Warn("kept", "component", "test")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "test", entry["component"])

	_, err = logger.NewSlog(&buf, "loud")
	require.Error(t, err)
}

func TestSlogLevel(t *testing.T) {
	testCases := []struct {
		in   zapcore.Level
		want slog.Level
	}{
		{zapcore.DebugLevel, slog.LevelDebug},
		{zapcore.InfoLevel, slog.LevelInfo},
		{zapcore.WarnLevel, slog.LevelWarn},
		{zapcore.ErrorLevel, slog.LevelError},
		{zapcore.FatalLevel, slog.LevelError},
	}

	for _, tc := range testCases {
		t.Run(tc.in.String(), func(t *testing.T) {
			assert.Equal(t, tc.want, logger.SlogLevel(tc.in))
		})
	}
}
